package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dshills/driftwm/internal/action"
	"github.com/dshills/driftwm/internal/cursor"
	"github.com/dshills/driftwm/internal/input/key"
	"github.com/dshills/driftwm/internal/input/keybind"
	"github.com/dshills/driftwm/internal/input/mousebind"
	"github.com/dshills/driftwm/internal/menu"
	"github.com/dshills/driftwm/internal/wm"
)

func (b *builder) fail(kind string, i int, err error) {
	b.errs = append(b.errs, &BindingError{Kind: kind, Index: i, Err: err})
}

// entries splits an array of tables. Malformed entries are reported and
// come back as nil so indexes stay aligned with the file.
func (b *builder) entries(kind string, v any) []map[string]any {
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
		b.errs = append(b.errs, &ValidationError{
			Path: kind, Message: "expected array of tables, got " + typeName(v), Value: v, Code: ErrCodeTypeMismatch,
		})
		return nil
	}
	out := make([]map[string]any, len(items))
	for i, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			b.fail(kind, i, fmt.Errorf("%w: expected table, got %s", ErrTypeMismatch, typeName(it)))
			continue
		}
		out[i] = m
	}
	return out
}

// extraKeys reports keys of an entry outside known. The entry is kept.
func (b *builder) extraKeys(kind string, i int, m map[string]any, known ...string) {
	for _, k := range sortedKeys(m) {
		if !slices.Contains(known, k) {
			b.fail(kind, i, fmt.Errorf("unknown key %q", k))
		}
	}
}

func (b *builder) str(kind string, i int, m map[string]any, k string) (string, bool) {
	v, ok := m[k]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		b.fail(kind, i, fmt.Errorf("%w: %s must be a string, got %s", ErrTypeMismatch, k, typeName(v)))
		return "", false
	}
	return s, true
}

func (b *builder) flag(kind string, i int, m map[string]any, k string) bool {
	v, ok := m[k]
	if !ok {
		return false
	}
	f, ok := v.(bool)
	if !ok {
		b.fail(kind, i, fmt.Errorf("%w: %s must be a bool, got %s", ErrTypeMismatch, k, typeName(v)))
	}
	return f
}

// actions parses the action list of an entry. Invalid actions are
// dropped and reported; ok is false when none survive.
func (b *builder) actions(kind string, i int, m map[string]any) ([]action.Action, bool) {
	v, present := m["action"]
	if !present {
		b.fail(kind, i, fmt.Errorf("%w: missing action", ErrNoActions))
		return nil, false
	}
	var p action.Parser
	acts := p.ParseList(v)
	for _, err := range p.Errors {
		b.fail(kind, i, err)
	}
	if len(acts) == 0 {
		b.fail(kind, i, ErrNoActions)
		return nil, false
	}
	return acts, true
}

func (b *builder) keybinds(v any) []keybind.Binding {
	const kind = "keybind"
	var out []keybind.Binding
	for i, m := range b.entries(kind, v) {
		if m == nil {
			continue
		}
		spec, _ := b.str(kind, i, m, "key")
		combo, err := key.Parse(spec)
		if err != nil {
			b.fail(kind, i, err)
			continue
		}
		acts, ok := b.actions(kind, i, m)
		if !ok {
			continue
		}
		b.extraKeys(kind, i, m, "key", "on_release", "allow_when_locked", "action")
		out = append(out, keybind.Binding{
			Combo:           combo,
			OnRelease:       b.flag(kind, i, m, "on_release"),
			AllowWhenLocked: b.flag(kind, i, m, "allow_when_locked"),
			Actions:         acts,
		})
	}
	return out
}

// splitButton splits "A-Left" into modifiers and button name.
func splitButton(spec string) (key.Modifier, string, error) {
	idx := strings.LastIndex(spec, "-")
	if idx < 0 {
		return key.ModNone, spec, nil
	}
	mods, err := key.ParseModifiers(spec[:idx])
	return mods, spec[idx+1:], err
}

func (b *builder) mousebinds(v any) []mousebind.Binding {
	const kind = "mousebind"
	var out []mousebind.Binding
	for i, m := range b.entries(kind, v) {
		if m == nil {
			continue
		}
		bind, ok := b.mousebind(i, m)
		if !ok {
			continue
		}
		acts, ok := b.actions(kind, i, m)
		if !ok {
			continue
		}
		bind.Actions = acts
		b.extraKeys(kind, i, m, "context", "button", "direction", "event", "mods", "action")
		out = append(out, bind)
	}
	return out
}

func (b *builder) mousebind(i int, m map[string]any) (mousebind.Binding, bool) {
	const kind = "mousebind"
	var bind mousebind.Binding

	ctx, _ := b.str(kind, i, m, "context")
	elem, ok := cursor.ParseElement(ctx)
	if !ok || ctx == "" {
		b.fail(kind, i, fmt.Errorf("unknown context %q", ctx))
		return bind, false
	}
	bind.Context = elem

	ev, _ := b.str(kind, i, m, "event")
	bind.Event, ok = mousebind.ParseEventKind(ev)
	if !ok {
		b.fail(kind, i, fmt.Errorf("unknown event %q", ev))
		return bind, false
	}

	if mods, present := b.str(kind, i, m, "mods"); present {
		parsed, err := key.ParseModifiers(mods)
		if err != nil {
			b.fail(kind, i, err)
			return bind, false
		}
		bind.Mods = parsed
	}

	if bind.Event == mousebind.EventScroll {
		dir, _ := b.str(kind, i, m, "direction")
		if bind.Direction, ok = mousebind.ParseDirection(dir); !ok {
			b.fail(kind, i, fmt.Errorf("scroll needs a direction, got %q", dir))
			return bind, false
		}
		return bind, true
	}

	spec, _ := b.str(kind, i, m, "button")
	mods, name, err := splitButton(spec)
	if err != nil {
		b.fail(kind, i, err)
		return bind, false
	}
	if bind.Button, ok = mousebind.ParseButton(name); !ok {
		b.fail(kind, i, fmt.Errorf("unknown button %q", spec))
		return bind, false
	}
	bind.Mods |= mods
	return bind, true
}

func (b *builder) menus(v any) []*menu.Menu {
	const kind = "menu"
	var out []*menu.Menu
	for i, m := range b.entries(kind, v) {
		if m == nil {
			continue
		}
		id, _ := b.str(kind, i, m, "id")
		if id == "" {
			b.fail(kind, i, menu.ErrInvalidMenu)
			continue
		}
		label, _ := b.str(kind, i, m, "label")
		def := &menu.Menu{ID: id, Label: label}
		for j, it := range b.entries(kind, m["item"]) {
			if it == nil {
				continue
			}
			if item, ok := b.menuItem(i, j, it); ok {
				def.Items = append(def.Items, item)
			}
		}
		b.extraKeys(kind, i, m, "id", "label", "item")
		out = append(out, def)
	}
	return out
}

func (b *builder) menuItem(i, j int, m map[string]any) (menu.Item, bool) {
	kind := fmt.Sprintf("menu[%d].item", i)
	if b.flag(kind, j, m, "separator") {
		return menu.Item{Separator: true}, true
	}
	label, _ := b.str(kind, j, m, "label")
	item := menu.Item{Label: label}
	if sub, ok := b.str(kind, j, m, "submenu"); ok {
		item.Submenu = sub
	}
	if _, ok := m["action"]; ok {
		acts, ok := b.actions(kind, j, m)
		if !ok {
			return item, false
		}
		item.Actions = acts
	}
	if label == "" {
		b.fail(kind, j, fmt.Errorf("item needs a label"))
		return item, false
	}
	b.extraKeys(kind, j, m, "label", "submenu", "separator", "action")
	return item, true
}

// regions parses snap regions. Coordinates are percentages of the
// output's usable area.
func (b *builder) regions(v any) []wm.Region {
	const kind = "region"
	var out []wm.Region
	seen := make(map[string]bool)
	for i, m := range b.entries(kind, v) {
		if m == nil {
			continue
		}
		name, _ := b.str(kind, i, m, "name")
		if name == "" {
			b.fail(kind, i, fmt.Errorf("region needs a name"))
			continue
		}
		if seen[name] {
			b.fail(kind, i, fmt.Errorf("duplicate region %q", name))
			continue
		}
		var vals [4]int
		ok := true
		for k, field := range []string{"x", "y", "width", "height"} {
			n, valid := toInt(m[field])
			if !valid || n < 0 || n > 100 {
				b.fail(kind, i, fmt.Errorf("%s must be a percentage, got %v", field, m[field]))
				ok = false
				break
			}
			vals[k] = n
		}
		if !ok {
			continue
		}
		if vals[2] == 0 || vals[3] == 0 || vals[0]+vals[2] > 100 || vals[1]+vals[3] > 100 {
			b.fail(kind, i, fmt.Errorf("region %q does not fit the output", name))
			continue
		}
		b.extraKeys(kind, i, m, "name", "x", "y", "width", "height")
		seen[name] = true
		out = append(out, wm.Region{Name: name, X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]})
	}
	return out
}
