package dialogue

import (
	"testing"
	"unicode/utf8"
)

func TestSentenceDefaults(t *testing.T) {
	t.Parallel()

	s := NewSentence("hello")
	if s.FontSize() != 32 {
		t.Errorf("font size = %v, want 32", s.FontSize())
	}
	if s.Color() != DefaultColor {
		t.Errorf("color = %q, want %q", s.Color(), DefaultColor)
	}
	if s.Font() != "" {
		t.Errorf("font = %q, want empty", s.Font())
	}
	if _, ok := s.Action(); ok {
		t.Error("new sentence should have no action")
	}
	if s.TypeWriter().Active() {
		t.Error("new sentence should have its typewriter disabled")
	}
	if got := s.VisibleText(); got != "hello" {
		t.Errorf("VisibleText() = %q, want %q", got, "hello")
	}
}

// "Hi!" at speed 1 and half a second per frame.
func TestSentenceRevealHi(t *testing.T) {
	t.Parallel()

	s := NewSentence("Hi!").WithTypeWriter(NewTypeWriter().WithSpeed(1))
	if got := s.VisibleText(); got != "" {
		t.Errorf("before any frame: %q, want empty", got)
	}

	s.TypeWriter().Advance(0.5)
	if s.TypeWriter().Elapsed() != 0.5 {
		t.Errorf("elapsed = %v, want 0.5", s.TypeWriter().Elapsed())
	}
	if got := s.VisibleText(); got != "H" {
		t.Errorf("after 1 frame: %q, want %q", got, "H")
	}

	s.TypeWriter().Advance(0.5)
	if s.TypeWriter().Elapsed() != 1 {
		t.Errorf("elapsed = %v, want 1", s.TypeWriter().Elapsed())
	}
	if got := s.VisibleText(); got != "Hi!" {
		t.Errorf("after 2 frames: %q, want %q", got, "Hi!")
	}
	if !s.Revealed() {
		t.Error("sentence should be revealed")
	}
}

func TestSentenceVisibleTextUnicode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		elapsed float64
		want    string
	}{
		{"cjk half", "日本語", 0.5, "日"},
		{"cjk full", "日本語", 1, "日本語"},
		{"emoji modifier kept whole", "a👍🏽b", 0.7, "a👍🏽"},
		{"combining mark kept whole", "e\u0301tude", 0.2, "e\u0301"},
		{"empty", "", 0.5, ""},
		{"nothing yet", "héllo", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSentence(tt.text).WithTypeWriter(NewTypeWriter().WithElapsed(tt.elapsed))
			got := s.VisibleText()
			if got != tt.want {
				t.Errorf("VisibleText() = %q, want %q", got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("VisibleText() returned invalid UTF-8: %q", got)
			}
		})
	}
}

func TestSentenceVisibleLen(t *testing.T) {
	t.Parallel()

	s := NewSentence("abcd").Typed()
	s.TypeWriter().SetElapsed(0.99)
	if got := s.VisibleLen(); got != 3 {
		t.Errorf("VisibleLen() = %d, want 3", got)
	}
	s.TypeWriter().Deactivate()
	if got := s.VisibleLen(); got != 4 {
		t.Errorf("inactive VisibleLen() = %d, want 4", got)
	}
}

func TestSentenceRunCarriesStyle(t *testing.T) {
	t.Parallel()

	s := NewSentence("boom").
		WithFont("fonts/dyslexic.otf").
		WithFontSize(64).
		WithColor("#ff0000").
		WithAction("change_background")

	r := s.Run()
	want := Style{Font: "fonts/dyslexic.otf", Size: 64, Color: "#ff0000"}
	if r.Style != want {
		t.Errorf("Run().Style = %+v, want %+v", r.Style, want)
	}
	if r.Text != "boom" {
		t.Errorf("Run().Text = %q, want %q", r.Text, "boom")
	}
	if id, ok := s.Action(); !ok || id != "change_background" {
		t.Errorf("Action() = %q, %v", id, ok)
	}

	s.ClearAction()
	if _, ok := s.Action(); ok {
		t.Error("ClearAction should remove the action")
	}
}
