package asm

import "testing"

func TestSymbolResolve(t *testing.T) {
	sec := NewSection("main", nil)
	sec.Offset = 10

	t.Run("Label", func(t *testing.T) {
		if got := newLabel(sec, "loop", 3).Resolve(); got != "13" {
			t.Errorf("expected 13, got %s", got)
		}
	})

	t.Run("Constants", func(t *testing.T) {
		tests := map[string]string{
			"0x10":        "16",
			"$ff":         "255",
			"1.5":         "1.5",
			"-4":          "-4",
			"Average":     "Average",
			`HASH("abc")`: `HASH("abc")`,
			"0xZZ":        "0xZZ",
		}
		for text, want := range tests {
			if got := newConstant(sec, "c", text).Resolve(); got != want {
				t.Errorf("constant %q resolved to %q; want %q", text, got, want)
			}
		}
	})
}

func TestSectionIsEmpty(t *testing.T) {
	sec := NewSection("s", nil)
	if !sec.IsEmpty() {
		t.Fatalf("new section should be empty")
	}
	sec.Aliases["a"] = "r0"
	if sec.IsEmpty() {
		t.Errorf("section with an alias should not be empty")
	}
	if sec.Size() != 0 {
		t.Errorf("expected size 0, got %d", sec.Size())
	}
}
