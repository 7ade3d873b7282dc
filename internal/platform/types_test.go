package platform

import "testing"

func TestParseVKey_Valid(t *testing.T) {
	tests := []struct {
		input string
		want  VKey
	}{
		{"enter", VKeyEnter},
		{"Enter", VKeyEnter},
		{"0", VKeyEnter},
		{"back", VKeyBack},
		{"F3", VKeyBack},
		{"execute", VKeyExecute},
		{"8", VKeyExecute},
		{" save ", VKeySave},
		{"cancel", VKeyCancel},
		{"exit", VKeyExit},
		{"99", VKey(99)},
	}
	for _, tt := range tests {
		got, err := ParseVKey(tt.input)
		if err != nil {
			t.Errorf("ParseVKey(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseVKey(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestParseVKey_Invalid(t *testing.T) {
	for _, s := range []string{"", "-1", "100", "escape", "1.5"} {
		if _, err := ParseVKey(s); err == nil {
			t.Errorf("ParseVKey(%q) should fail", s)
		}
	}
}
