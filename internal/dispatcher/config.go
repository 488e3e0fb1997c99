package dispatcher

// DefaultPromptCommand is the confirmation helper started by If actions
// carrying a message.prompt. %m is replaced by the quoted message, %y and
// %n by the quoted button labels.
const DefaultPromptCommand = "driftwm-prompt --message %m --yes %y --no %n"

// Config holds dispatcher configuration options.
type Config struct {
	// EnableMetrics enables dispatch timing and statistics collection.
	EnableMetrics bool

	// RecoverFromPanic wraps handler execution in panic recovery.
	RecoverFromPanic bool

	// MaxDepth bounds nesting of If and ForEach lists.
	MaxDepth int

	// PromptCommand is the command template for confirmation prompts.
	PromptCommand string
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		EnableMetrics:    false,
		RecoverFromPanic: true,
		MaxDepth:         16,
		PromptCommand:    DefaultPromptCommand,
	}
}

// WithMetrics returns a copy of the config with metrics enabled.
func (c Config) WithMetrics() Config {
	c.EnableMetrics = true
	return c
}

// WithPanicRecovery returns a copy of the config with panic recovery set.
func (c Config) WithPanicRecovery(recover bool) Config {
	c.RecoverFromPanic = recover
	return c
}

// WithPromptCommand returns a copy of the config with the prompt command set.
func (c Config) WithPromptCommand(cmd string) Config {
	if cmd != "" {
		c.PromptCommand = cmd
	}
	return c
}
