package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestMultiChoice_NumberKeyChooses(t *testing.T) {
	mc := NewMultiChoice([]string{"H2O", "CO2", "NaCl", "O2"})
	if _, ok := mc.Chosen(); ok {
		t.Fatal("nothing should be chosen yet")
	}

	mc, _ = mc.Update(key('3'))
	got, ok := mc.Chosen()
	if !ok || got != "NaCl" {
		t.Fatalf("Chosen() = %q, %v; want NaCl, true", got, ok)
	}

	// Further keys are ignored once chosen.
	mc, _ = mc.Update(key('1'))
	if got, _ := mc.Chosen(); got != "NaCl" {
		t.Fatalf("choice changed to %q", got)
	}
}

func TestMultiChoice_ArrowsAndEnter(t *testing.T) {
	mc := NewMultiChoice([]string{"a", "b", "c", "d"})
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if got, _ := mc.Chosen(); got != "b" {
		t.Fatalf("expected b, got %q", got)
	}
}

func TestMultiChoice_OutOfRangeDigitIgnored(t *testing.T) {
	mc := NewMultiChoice([]string{"a", "b", "c", "d"})
	mc, _ = mc.Update(key('9'))
	if _, ok := mc.Chosen(); ok {
		t.Fatal("digit 9 should not choose anything")
	}
}

func TestMultiChoice_UnchooseAndReveal(t *testing.T) {
	mc := NewMultiChoice([]string{"a", "b", "c", "d"})
	mc, _ = mc.Update(key('1'))
	mc.Unchoose()
	if _, ok := mc.Chosen(); ok {
		t.Fatal("expected choice cleared")
	}

	mc, _ = mc.Update(key('2'))
	mc.Reveal("d")
	view := mc.View()
	for _, want := range []string{"A)  a", "B)  b", "D)  d"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestProgressBar_Fraction(t *testing.T) {
	tests := []struct {
		done, total int
		want        float64
	}{
		{0, 10, 0},
		{5, 10, 0.5},
		{12, 10, 1},
		{3, 0, 0},
	}
	for _, tt := range tests {
		if got := NewProgressBar("", tt.done, tt.total, 40).Fraction(); got != tt.want {
			t.Errorf("Fraction(%d/%d) = %v, want %v", tt.done, tt.total, got, tt.want)
		}
	}
}

func TestProgressBar_ViewShowsCount(t *testing.T) {
	view := NewProgressBar("Progress", 3, 10, 40).View()
	if !strings.Contains(view, "3/10") {
		t.Errorf("expected count in view, got %q", view)
	}
}
