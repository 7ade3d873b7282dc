package model

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestNodeID_Helpers(t *testing.T) {
	if got := WindowID(1); got != "wnd[1]" {
		t.Errorf("WindowID(1) = %q", got)
	}
	if got := NodeID("wnd[1]/usr/btnOK").Window(); got != "wnd[1]" {
		t.Errorf("Window = %q", got)
	}
	if got := NodeID("/app/con[0]/ses[0]/wnd[2]/usr").Window(); got != "wnd[2]" {
		t.Errorf("Window of absolute id = %q", got)
	}
	if got := NodeID("usr/btnOK").Window(); got != "" {
		t.Errorf("Window without window segment = %q", got)
	}
	if got := NodeID("wnd[0]/tbar[0]/btn[3]").Last(); got != "btn[3]" {
		t.Errorf("Last = %q", got)
	}
}

func TestCredentials_PasswordNeverSerialized(t *testing.T) {
	c := Credentials{System: "DEV", User: "ME", Password: "secret", Language: "EN"}
	j, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	y, err := yaml.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	for _, out := range []string{string(j), string(y)} {
		if strings.Contains(out, "secret") {
			t.Errorf("password leaked into %q", out)
		}
	}
}

func TestTextTree_Shapes(t *testing.T) {
	tree := Branch(Leaf("a"), Branch(Leaf("b"), Leaf("c")))
	got := tree.Strings()
	if len(got) != 3 || got[0] != "a" || got[2] != "c" {
		t.Errorf("Strings() = %v", got)
	}
	j, err := json.Marshal(tree)
	if err != nil {
		t.Fatal(err)
	}
	if string(j) != `["a",["b","c"]]` {
		t.Errorf("json = %s", j)
	}
	j, _ = json.Marshal(Leaf("x"))
	if string(j) != `"x"` {
		t.Errorf("leaf json = %s", j)
	}
}

func TestTarget_Many(t *testing.T) {
	target := Many([]NodeID{"a", "b"})
	if !target.IsGroup() || len(target.Items) != 2 {
		t.Fatalf("unexpected target: %+v", target)
	}
	if target.Items[0].IsGroup() || target.Items[0].ID != "a" {
		t.Errorf("unexpected first item: %+v", target.Items[0])
	}
}
