package model

import "testing"

func sampleFlat() []FlatNode {
	return []FlatNode{
		{ID: "wnd[0]/usr", Type: "usr"},
		{ID: "wnd[0]/usr/lblUser", Type: "lbl", Text: "User"},
		{ID: "wnd[0]/usr/txtUser", Type: "txt", Text: "DEVELOPER"},
		{ID: "wnd[0]/usr/btnOK", Type: "btn", Text: "Continue"},
		{ID: "wnd[0]/usr/cmbLANG", Type: "cmb", Text: "EN"},
	}
}

func TestFilterByTypes_NoFilter(t *testing.T) {
	nodes := sampleFlat()
	if got := FilterByTypes(nodes, nil); len(got) != len(nodes) {
		t.Errorf("expected %d nodes, got %d", len(nodes), len(got))
	}
}

func TestFilterByTypes_Codes(t *testing.T) {
	got := FilterByTypes(sampleFlat(), []string{"btn", "lbl"})
	if len(got) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(got))
	}
	if got[0].Type != "lbl" || got[1].Type != "btn" {
		t.Errorf("unexpected types: %s, %s", got[0].Type, got[1].Type)
	}
}

func TestFilterByTypes_Group(t *testing.T) {
	got := FilterByTypes(sampleFlat(), []string{"input"})
	if len(got) != 2 {
		t.Fatalf("expected txt and cmb, got %+v", got)
	}
}

func TestFilterByText(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 5},
		{"user", 1},
		{"CONT", 1},
		{"e", 4},
		{"missing", 0},
	}
	for _, tt := range tests {
		got := FilterByText(sampleFlat(), tt.text)
		if len(got) != tt.want {
			t.Errorf("FilterByText(%q) returned %d nodes, want %d", tt.text, len(got), tt.want)
		}
	}
}

func TestPruneEmpty(t *testing.T) {
	got := PruneEmpty(sampleFlat())
	if len(got) != 4 {
		t.Fatalf("expected the empty usr container to be pruned, got %d nodes", len(got))
	}
	for _, n := range got {
		if n.Type == "usr" {
			t.Error("usr container without text should be pruned")
		}
	}
}

func TestPruneEmpty_KeepsLabelledContainers(t *testing.T) {
	got := PruneEmpty([]FlatNode{{ID: "wnd[0]/usr/subA", Type: "sub", Text: "Header"}})
	if len(got) != 1 {
		t.Error("container with text should be kept")
	}
}
