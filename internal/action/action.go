// Package action defines configured actions: the action taxonomy, typed
// arguments, action trees and window queries.
package action

import (
	"fmt"
	"strconv"
	"strings"
)

// Arg is a named action argument. Value is one of string, bool, int,
// []Action or []Query.
type Arg struct {
	Key   string
	Value any
}

// StringArg creates a string argument.
func StringArg(key, v string) Arg { return Arg{Key: key, Value: v} }

// BoolArg creates a bool argument.
func BoolArg(key string, v bool) Arg { return Arg{Key: key, Value: v} }

// IntArg creates an int argument.
func IntArg(key string, v int) Arg { return Arg{Key: key, Value: v} }

// ActionsArg creates a nested action list argument.
func ActionsArg(key string, v ...Action) Arg { return Arg{Key: key, Value: v} }

// QueriesArg creates a query list argument.
func QueriesArg(key string, v ...Query) Arg { return Arg{Key: key, Value: v} }

// Args is an ordered argument list looked up by key.
type Args []Arg

// Get returns the raw value for key.
func (a Args) Get(key string) (any, bool) {
	for _, arg := range a {
		if arg.Key == key {
			return arg.Value, true
		}
	}
	return nil, false
}

// Has reports whether key is present.
func (a Args) Has(key string) bool {
	_, ok := a.Get(key)
	return ok
}

// GetString returns a string argument, or def when absent.
func (a Args) GetString(key, def string) string {
	v, ok := a.Get(key)
	if !ok {
		return def
	}
	switch s := v.(type) {
	case string:
		return s
	case int:
		return strconv.Itoa(s)
	case bool:
		return strconv.FormatBool(s)
	}
	return def
}

// GetBool returns a bool argument, or def when absent or unparsable.
// Strings "yes", "true", "on" and their negations are accepted.
func (a Args) GetBool(key string, def bool) bool {
	v, ok := a.Get(key)
	if !ok {
		return def
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		if r, ok := parseBool(b); ok {
			return r
		}
	}
	return def
}

// GetInt returns an int argument, or def when absent or unparsable.
func (a Args) GetInt(key string, def int) int {
	v, ok := a.Get(key)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
	}
	return def
}

// GetActions returns a nested action list.
func (a Args) GetActions(key string) []Action {
	v, _ := a.Get(key)
	l, _ := v.([]Action)
	return l
}

// GetQueries returns a query list.
func (a Args) GetQueries(key string) []Query {
	v, _ := a.Get(key)
	l, _ := v.([]Query)
	return l
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "on", "1":
		return true, true
	case "no", "false", "off", "0":
		return false, true
	}
	return false, false
}

// Action is a configured action node. Nested lists make an action tree
// that runs depth first in declaration order.
type Action struct {
	Kind Kind
	Args Args
}

// New creates an action.
func New(kind Kind, args ...Arg) Action {
	return Action{Kind: kind, Args: args}
}

// String returns a compact description for logs.
func (a Action) String() string {
	if len(a.Args) == 0 {
		return a.Kind.String()
	}
	parts := make([]string, 0, len(a.Args))
	for _, arg := range a.Args {
		switch v := arg.Value.(type) {
		case []Action:
			parts = append(parts, fmt.Sprintf("%s=[%d actions]", arg.Key, len(v)))
		case []Query:
			parts = append(parts, fmt.Sprintf("%s=[%d queries]", arg.Key, len(v)))
		default:
			parts = append(parts, fmt.Sprintf("%s=%v", arg.Key, v))
		}
	}
	return a.Kind.String() + "(" + strings.Join(parts, " ") + ")"
}
