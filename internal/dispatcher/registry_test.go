package dispatcher

import (
	"testing"

	"github.com/dshills/driftwm/internal/action"
	"github.com/dshills/driftwm/internal/dispatcher/execctx"
	"github.com/dshills/driftwm/internal/dispatcher/handler"
	"github.com/dshills/driftwm/internal/dispatcher/handlers/window"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	if r.Count() != 0 || r.Get(action.Raise) != nil {
		t.Fatal("new registry should be empty")
	}

	r.RegisterFunc(action.Raise, func(action.Action, *execctx.ExecutionContext) handler.Result {
		return handler.Success()
	})
	if !r.Has(action.Raise) || r.Count() != 1 {
		t.Errorf("Has/Count after RegisterFunc: %v %d", r.Has(action.Raise), r.Count())
	}

	r.Unregister(action.Raise)
	if r.Has(action.Raise) {
		t.Error("Unregister left the handler")
	}

	h := window.NewHandler()
	r.RegisterKinds(h)
	if r.Count() != len(h.Kinds()) {
		t.Errorf("Count = %d, want %d", r.Count(), len(h.Kinds()))
	}
	kinds := r.List()
	for i := 1; i < len(kinds); i++ {
		if kinds[i-1] >= kinds[i] {
			t.Fatalf("List not ordered: %v", kinds)
		}
	}

	r.Clear()
	if r.Count() != 0 {
		t.Error("Clear left handlers")
	}
}

func TestDefaultHandlersCoverEveryKind(t *testing.T) {
	d := New(DefaultConfig(), nil, nil)
	for _, k := range action.Kinds() {
		if k == action.If || k == action.ForEach {
			continue
		}
		if !d.Registry().Has(k) {
			t.Errorf("no default handler for %s", k)
		}
	}
}
