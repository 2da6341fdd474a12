package core

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		name     string
		expected Color
	}{
		{"lime", ColorLime},
		{"Bright_Green", ColorBrightGreen},
		{"bright-red", ColorBrightRed},
		{" pink ", ColorPink},
		{"default", ColorDefault},
	}

	for _, tt := range tests {
		got, err := ParseColor(tt.name)
		if err != nil {
			t.Errorf("ParseColor(%q) returned error: %v", tt.name, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseColor(%q) = %v, expected %v", tt.name, got, tt.expected)
		}
	}

	if _, err := ParseColor("chartreuse-ish"); err == nil {
		t.Error("ParseColor should reject unknown names")
	}
}

func TestColorRoundTrip(t *testing.T) {
	for _, name := range ColorNames() {
		c, err := ParseColor(name)
		if err != nil {
			t.Fatalf("ParseColor(%q) failed: %v", name, err)
		}
		if c.String() != name {
			t.Errorf("Color %d String() = %q, expected %q", c, c.String(), name)
		}
	}
}

func TestColorANSI(t *testing.T) {
	if _, ok := ColorDefault.ANSI(); ok {
		t.Error("ColorDefault should not have an ANSI code")
	}
	code, ok := ColorLime.ANSI()
	if !ok || code != 77 {
		t.Errorf("ColorLime.ANSI() = (%d, %v), expected (77, true)", code, ok)
	}
}
