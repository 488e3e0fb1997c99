package action

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/dshills/driftwm/internal/wm"
)

// Parse errors.
var (
	// ErrUnknownAction is returned for an unrecognized action name.
	ErrUnknownAction = errors.New("action: unknown action")

	// ErrMissingName is returned for an action table without a name.
	ErrMissingName = errors.New("action: missing name")

	// ErrMalformed is returned for values of an unexpected shape.
	ErrMalformed = errors.New("action: malformed value")
)

// ArgError reports a missing or invalid argument.
type ArgError struct {
	Action Kind
	Arg    string
	Reason string
}

func (e *ArgError) Error() string {
	return fmt.Sprintf("action %s: argument %q %s", e.Action, e.Arg, e.Reason)
}

// Nested list argument keys.
const (
	KeyThen  = "then"
	KeyElse  = "else"
	KeyNone  = "none"
	KeyQuery = "query"

	// KeyPrompt is the flattened message.prompt argument of If.
	KeyPrompt = "message.prompt"
)

// Parser builds validated actions from decoded configuration values.
// Invalid nested actions are dropped and their errors collected.
type Parser struct {
	Errors []error
}

// ParseList parses a list of action tables, dropping invalid entries. A
// single table is accepted as a one-element list.
func (p *Parser) ParseList(v any) []Action {
	var items []any
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		items = t
	case []map[string]any:
		for _, m := range t {
			items = append(items, m)
		}
	case map[string]any:
		items = []any{t}
	default:
		p.Errors = append(p.Errors, fmt.Errorf("%w: action list of %T", ErrMalformed, v))
		return nil
	}
	out := make([]Action, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			p.Errors = append(p.Errors, fmt.Errorf("%w: action of %T", ErrMalformed, it))
			continue
		}
		a, err := p.Parse(m)
		if err != nil {
			p.Errors = append(p.Errors, err)
			continue
		}
		out = append(out, a)
	}
	return out
}

// Parse builds one action from a table with a "name" key and its
// arguments. Nested tables are flattened with dotted keys, except the
// then/else/none action lists and the query list.
func (p *Parser) Parse(m map[string]any) (Action, error) {
	name, _ := m["name"].(string)
	if name == "" {
		return Action{}, ErrMissingName
	}
	kind, ok := ParseKind(name)
	if !ok {
		return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	a := Action{Kind: kind}

	keys := make([]string, 0, len(m))
	for k := range m {
		if k != "name" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := m[k]
		lk := strings.ToLower(k)
		switch lk {
		case KeyThen, KeyElse, KeyNone:
			a.Args = append(a.Args, ActionsArg(lk, p.ParseList(v)...))
			continue
		case KeyQuery:
			qs, err := parseQueries(v)
			if err != nil {
				return Action{}, err
			}
			a.Args = append(a.Args, QueriesArg(lk, qs...))
			continue
		}
		if err := flatten(&a.Args, lk, v); err != nil {
			return Action{}, err
		}
	}
	if err := Validate(a); err != nil {
		return Action{}, err
	}
	return a, nil
}

func flatten(args *Args, key string, v any) error {
	switch t := v.(type) {
	case string:
		*args = append(*args, StringArg(key, t))
	case bool:
		*args = append(*args, BoolArg(key, t))
	case int:
		*args = append(*args, IntArg(key, t))
	case int64:
		*args = append(*args, IntArg(key, int(t)))
	case float64:
		if t != math.Trunc(t) {
			return fmt.Errorf("%w: %s=%v is not an integer", ErrMalformed, key, t)
		}
		*args = append(*args, IntArg(key, int(t)))
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := flatten(args, key+"."+strings.ToLower(k), t[k]); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: %s of %T", ErrMalformed, key, v)
	}
	return nil
}

func parseQueries(v any) ([]Query, error) {
	var items []any
	switch t := v.(type) {
	case []any:
		items = t
	case []map[string]any:
		for _, m := range t {
			items = append(items, m)
		}
	case map[string]any:
		items = []any{t}
	default:
		return nil, fmt.Errorf("%w: query of %T", ErrMalformed, v)
	}
	out := make([]Query, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: query of %T", ErrMalformed, it)
		}
		q, err := parseQuery(m)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

func parseQuery(m map[string]any) (Query, error) {
	var q Query
	str := func(k string) string {
		switch v := m[k].(type) {
		case string:
			return v
		case bool:
			if v {
				return "yes"
			}
			return "no"
		}
		return ""
	}
	tri := func(k string, dst *Tristate) error {
		t, ok := ParseTristate(str(k))
		if !ok {
			return fmt.Errorf("%w: query %s=%v", ErrMalformed, k, m[k])
		}
		*dst = t
		return nil
	}
	for k := range m {
		switch k {
		case "identifier", "title", "focused", "iconified", "fullscreen", "shaded",
			"omnipresent", "always_on_top", "maximized", "tiled", "decoration",
			"workspace", "desktop", "output", "monitor":
		default:
			return Query{}, fmt.Errorf("%w: unknown query field %q", ErrMalformed, k)
		}
	}
	q.Identifier = str("identifier")
	q.Title = str("title")
	for k, dst := range map[string]*Tristate{
		"focused":       &q.Focused,
		"iconified":     &q.Iconified,
		"fullscreen":    &q.Fullscreen,
		"shaded":        &q.Shaded,
		"omnipresent":   &q.Omnipresent,
		"always_on_top": &q.AlwaysOnTop,
	} {
		if err := tri(k, dst); err != nil {
			return Query{}, err
		}
	}
	q.Maximized = strings.ToLower(str("maximized"))
	switch q.Maximized {
	case "", "none", "both", "horizontal", "vertical":
	case "yes":
		q.Maximized = "both"
	case "no":
		q.Maximized = "none"
	default:
		return Query{}, fmt.Errorf("%w: query maximized=%q", ErrMalformed, q.Maximized)
	}
	q.Tiled = strings.ToLower(str("tiled"))
	q.Decoration = strings.ToLower(str("decoration"))
	q.Workspace = str("workspace")
	if q.Workspace == "" {
		q.Workspace = str("desktop")
	}
	q.Output = str("output")
	if q.Output == "" {
		q.Output = str("monitor")
	}
	return q, nil
}

var edgeDirections = []string{"left", "right", "up", "down"}

// Validate checks that an action carries its required arguments.
func Validate(a Action) error {
	need := func(key string) error {
		if a.Args.GetString(key, "") == "" {
			return &ArgError{Action: a.Kind, Arg: key, Reason: "is required"}
		}
		return nil
	}
	oneOf := func(key string, allowed ...string) error {
		v := strings.ToLower(a.Args.GetString(key, ""))
		for _, s := range allowed {
			if v == s {
				return nil
			}
		}
		return &ArgError{Action: a.Kind, Arg: key,
			Reason: fmt.Sprintf("must be one of %s", strings.Join(allowed, ", "))}
	}
	switch a.Kind {
	case Invalid:
		return fmt.Errorf("%w: invalid kind", ErrUnknownAction)
	case Execute:
		return need("command")
	case ShowMenu:
		return need("menu")
	case MoveToEdge, GrowToEdge, ShrinkToEdge:
		return oneOf("direction", edgeDirections...)
	case SnapToEdge, ToggleSnapToEdge:
		return oneOf("direction", append(edgeDirections, "center")...)
	case GoToDesktop, SendToDesktop:
		return need("to")
	case SnapToRegion, ToggleSnapToRegion:
		return need("region")
	case MoveToOutput, FocusOutput:
		if a.Args.Has("direction") {
			return oneOf("direction", edgeDirections...)
		}
		if a.Args.GetString("output", "") == "" {
			return &ArgError{Action: a.Kind, Arg: "output", Reason: "or direction is required"}
		}
	case SetDecorations:
		return oneOf("decorations", "full", "border", "none")
	case Maximize, UnMaximize, ToggleMaximize:
		if a.Args.Has("direction") {
			return oneOf("direction", "both", "horizontal", "vertical")
		}
	case ResizeRelative:
		for _, k := range []string{"left", "right", "top", "bottom"} {
			if a.Args.Has(k) {
				return nil
			}
		}
		return &ArgError{Action: a.Kind, Arg: "left", Reason: "or right/top/bottom is required"}
	case If, ForEach:
		if len(a.Args.GetQueries(KeyQuery)) == 0 && a.Args.GetString(KeyPrompt, "") == "" {
			return &ArgError{Action: a.Kind, Arg: KeyQuery, Reason: "or message.prompt is required"}
		}
	}
	return nil
}

// Axis returns the maximize axis argument, defaulting to both.
func (a Action) Axis() wm.Axis {
	axis, ok := wm.ParseAxis(strings.ToLower(a.Args.GetString("direction", "")))
	if !ok {
		return wm.AxisBoth
	}
	return axis
}

// Direction returns the direction argument.
func (a Action) Direction() wm.Direction {
	d, _ := wm.ParseDirection(strings.ToLower(a.Args.GetString("direction", "")))
	return d
}
