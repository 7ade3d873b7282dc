package model

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func fixtureIDs() ([]NodeID, []string) {
	ids := []NodeID{"wnd[0]/a", "wnd[0]/b", "wnd[0]/c", "wnd[0]/d"}
	texts := []string{"Directory", "File Name", "Save As", "As Needed"}
	return ids, texts
}

func TestResolve_Single(t *testing.T) {
	ids, texts := fixtureIDs()
	r := Resolve(ids, texts, "Name", false)
	if r.Kind() != Single {
		t.Fatalf("expected Single, got %v", r.Kind())
	}
	if r.ID() != "wnd[0]/b" {
		t.Errorf("ID() = %q, want wnd[0]/b", r.ID())
	}
}

func TestResolve_NotFound(t *testing.T) {
	ids, texts := fixtureIDs()
	r := Resolve(ids, texts, "xyz", false)
	if r.Found() || r.Kind() != NotFound {
		t.Fatalf("expected NotFound, got %v", r)
	}
	if r.String() != NotFoundText {
		t.Errorf("String() = %q, want %q", r.String(), NotFoundText)
	}
	if r.ID() != "" {
		t.Errorf("ID() of NotFound should be empty, got %q", r.ID())
	}
}

func TestResolve_MultipleInTreeOrder(t *testing.T) {
	ids, texts := fixtureIDs()
	r := Resolve(ids, texts, "as", false)
	if r.Kind() != Multiple {
		t.Fatalf("expected Multiple, got %v", r.Kind())
	}
	want := []NodeID{"wnd[0]/c", "wnd[0]/d"}
	if diff := cmp.Diff(want, r.IDs()); diff != "" {
		t.Errorf("IDs mismatch (-want +got):\n%s", diff)
	}
	if r.ID() != "" {
		t.Errorf("ID() of Multiple should be empty, got %q", r.ID())
	}
}

func TestResolve_CaseInsensitiveByDefault(t *testing.T) {
	ids, texts := fixtureIDs()
	upper := Resolve(ids, texts, "DIRECTORY", false)
	lower := Resolve(ids, texts, "directory", false)
	if diff := cmp.Diff(upper.IDs(), lower.IDs()); diff != "" {
		t.Errorf("case should not matter (-upper +lower):\n%s", diff)
	}
	if upper.ID() != "wnd[0]/a" {
		t.Errorf("expected wnd[0]/a, got %v", upper)
	}
}

func TestResolve_CaseSensitive(t *testing.T) {
	ids, texts := fixtureIDs()
	if r := Resolve(ids, texts, "directory", true); r.Found() {
		t.Errorf("case-sensitive lookup should not match, got %v", r)
	}
	if r := Resolve(ids, texts, "As", true); r.Kind() != Multiple {
		t.Errorf("expected both 'Save As' and 'As Needed', got %v", r)
	}
}

func TestResolve_EmptyQueryMatchesEverything(t *testing.T) {
	ids, texts := fixtureIDs()
	r := Resolve(ids, texts, "", false)
	if len(r.IDs()) != len(ids) {
		t.Errorf("expected %d matches, got %d", len(ids), len(r.IDs()))
	}
}

func TestResolve_SubstringNotPrefix(t *testing.T) {
	r := Resolve([]NodeID{"x"}, []string{"Exit without saving?"}, "saving", false)
	if r.ID() != "x" {
		t.Errorf("expected substring match, got %v", r)
	}
}

func TestResolve_MismatchedLengthsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic when ids and texts differ in length")
		}
	}()
	Resolve([]NodeID{"a", "b"}, []string{"only one"}, "one", false)
}

func TestResolution_WireForms(t *testing.T) {
	tests := []struct {
		name     string
		r        Resolution
		wantJSON string
	}{
		{"not found", NewResolution(nil), `"Not found"`},
		{"single", NewResolution([]NodeID{"wnd[0]/b"}), `"wnd[0]/b"`},
		{"multiple", NewResolution([]NodeID{"a", "b"}), `["a","b"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.r)
			if err != nil {
				t.Fatal(err)
			}
			if string(b) != tt.wantJSON {
				t.Errorf("json = %s, want %s", b, tt.wantJSON)
			}
			y, err := yaml.Marshal(map[string]Resolution{"match": tt.r})
			if err != nil {
				t.Fatal(err)
			}
			var decoded map[string]interface{}
			if err := yaml.Unmarshal(y, &decoded); err != nil {
				t.Fatal(err)
			}
			if _, ok := decoded["match"]; !ok {
				t.Errorf("yaml output missing match: %s", y)
			}
		})
	}
}
