package dialogue_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/f3rmion/parley/internal/dialogue"
)

type world struct {
	background string
	calls      []string
}

func TestRegistryDispatch(t *testing.T) {
	t.Parallel()

	reg := dialogue.NewRegistry[*world]()
	reg.Register("background", func(w *world, arg string) error {
		w.background = arg
		return nil
	})
	reg.Register("change_background", func(w *world, _ string) error {
		w.background = "#572268"
		return nil
	})
	reg.Register("fail", func(*world, string) error {
		return errors.New("boom")
	})

	tests := []struct {
		id      dialogue.ActionID
		want    string
		wantErr error
	}{
		{"change_background", "#572268", nil},
		{"background:#ff0000", "#ff0000", nil},
		{"background:", "", nil},
		{"nope", "", dialogue.ErrUnknownAction},
		{"nope:arg", "", dialogue.ErrUnknownAction},
	}
	for _, tt := range tests {
		w := &world{}
		err := reg.Dispatch(w, tt.id)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Dispatch(%q) error = %v, want %v", tt.id, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("Dispatch(%q) error = %v", tt.id, err)
			continue
		}
		if w.background != tt.want {
			t.Errorf("Dispatch(%q) background = %q, want %q", tt.id, w.background, tt.want)
		}
	}

	err := reg.Dispatch(&world{}, "fail")
	if err == nil || errors.Is(err, dialogue.ErrUnknownAction) {
		t.Errorf("Dispatch(fail) error = %v, want handler error", err)
	}
}

func TestRegistryNamesAndHas(t *testing.T) {
	t.Parallel()

	reg := dialogue.NewRegistry[*world]()
	for _, name := range []string{"quit", "bell", "open"} {
		reg.Register(name, func(w *world, arg string) error {
			w.calls = append(w.calls, arg)
			return nil
		})
	}

	if got, want := reg.Names(), []string{"bell", "open", "quit"}; !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if !reg.Has("open:side") {
		t.Error("Has(open:side) should be true")
	}
	if reg.Has("close") {
		t.Error("Has(close) should be false")
	}

	w := &world{}
	d := reg.Bind(w)
	if err := d.Dispatch("open:side"); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if !slices.Equal(w.calls, []string{"side"}) {
		t.Errorf("calls = %v", w.calls)
	}
}
