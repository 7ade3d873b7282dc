package model

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFlatten_NestedMappingsAndSequences(t *testing.T) {
	payload := `{
		"children": [
			{"Id": "wnd[0]", "Text": "Main", "children": [
				{"Id": "wnd[0]/usr", "children": [
					{"Id": "wnd[0]/usr/lblA", "Text": "Directory"},
					{"props": {"deep": [{"Id": "wnd[0]/usr/txtB"}]}}
				]}
			]},
			{"Id": "wnd[0]/tbar[0]"}
		]
	}`
	v, err := ParseObjectTree(payload)
	if err != nil {
		t.Fatal(err)
	}
	got := Flatten(v)
	want := []NodeID{"wnd[0]", "wnd[0]/usr", "wnd[0]/usr/lblA", "wnd[0]/usr/txtB", "wnd[0]/tbar[0]"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Flatten mismatch (-want +got):\n%s", diff)
	}
}

func TestFlatten_StructuredIDValueIsWalked(t *testing.T) {
	v, err := ParseObjectTree(`{"Id": {"Id": "inner"}, "next": {"Id": "outer"}}`)
	if err != nil {
		t.Fatal(err)
	}
	got := Flatten(v)
	want := []NodeID{"inner", "outer"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Flatten mismatch (-want +got):\n%s", diff)
	}
}

func TestFlatten_KeepsPayloadKeyOrder(t *testing.T) {
	v, err := ParseObjectTree(`{"z": {"Id": "b"}, "Id": "a", "a": {"Id": "c"}}`)
	if err != nil {
		t.Fatal(err)
	}
	got := Flatten(v)
	want := []NodeID{"b", "a", "c"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Flatten mismatch (-want +got):\n%s", diff)
	}
}

func TestFlatten_KeepsDuplicates(t *testing.T) {
	v, err := ParseObjectTree(`[{"Id": "x"}, {"Id": "x"}]`)
	if err != nil {
		t.Fatal(err)
	}
	got := Flatten(v)
	if len(got) != 2 {
		t.Fatalf("expected duplicates to be kept, got %v", got)
	}
}

func TestFlatten_TopLevelScalar(t *testing.T) {
	v, err := ParseObjectTree(`"wnd[0]"`)
	if err != nil {
		t.Fatal(err)
	}
	if got := Flatten(v); len(got) != 0 {
		t.Errorf("expected no ids, got %v", got)
	}
}

func TestFlatten_EmptyContainers(t *testing.T) {
	for _, payload := range []string{`{}`, `[]`, `{"children": []}`} {
		v, err := ParseObjectTree(payload)
		if err != nil {
			t.Fatalf("ParseObjectTree(%q): %v", payload, err)
		}
		if got := Flatten(v); len(got) != 0 {
			t.Errorf("Flatten(%q) = %v, want none", payload, got)
		}
	}
}

func TestParseObjectTree_Scalars(t *testing.T) {
	v, err := ParseObjectTree(`{"Id": "a\"b", "n": 3, "ok": true, "nil": null}`)
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind != KindMapping || len(v.Fields) != 4 {
		t.Fatalf("unexpected value: %+v", v)
	}
	want := []string{`a"b`, "3", "true", "null"}
	for i, f := range v.Fields {
		if f.Value.Kind != KindScalar || f.Value.Scalar != want[i] {
			t.Errorf("field %s = %+v, want scalar %q", f.Key, f.Value, want[i])
		}
	}
}

func TestParseObjectTree_Malformed(t *testing.T) {
	tests := []string{
		"",
		"{",
		`{"Id": }`,
		`[{"Id": "a"},]`,
		"not json",
	}
	for _, payload := range tests {
		_, err := ParseObjectTree(payload)
		if err == nil {
			t.Errorf("ParseObjectTree(%q) should fail", payload)
			continue
		}
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("ParseObjectTree(%q): expected *ParseError, got %T", payload, err)
		}
	}
}

func TestObjectTree_RoundTripsThroughFlatten(t *testing.T) {
	nodes := []Node{
		{ID: "wnd[0]", Type: "GuiMainWindow", Text: "SAP Easy Access", Children: []Node{
			{ID: "wnd[0]/usr", Type: "GuiUserArea", Children: []Node{
				{ID: "wnd[0]/usr/lblA", Type: "GuiLabel", Text: "Name"},
				{ID: "wnd[0]/usr/txtA", Type: "GuiTextField"},
			}},
			{ID: "wnd[0]/sbar", Type: "GuiStatusbar"},
		}},
	}
	payload, err := ObjectTree(nodes)
	if err != nil {
		t.Fatal(err)
	}
	v, err := ParseObjectTree(payload)
	if err != nil {
		t.Fatal(err)
	}
	var want []NodeID
	for _, n := range FlattenNodes(nodes) {
		want = append(want, n.ID)
	}
	if diff := cmp.Diff(want, Flatten(v)); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}
