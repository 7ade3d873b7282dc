package model

import "strings"

// TypeMap maps SAP GUI scripting component types to the id prefix the host
// uses for them in widget paths (the "txt" of "usr/txtRSYST-BNAME").
var TypeMap = map[string]string{
	"GuiMainWindow":      "wnd",
	"GuiModalWindow":     "wnd",
	"GuiUserArea":        "usr",
	"GuiToolbar":         "tbar",
	"GuiTitlebar":        "titl",
	"GuiMenubar":         "mbar",
	"GuiMenu":            "menu",
	"GuiStatusbar":       "sbar",
	"GuiOkCodeField":     "okcd",
	"GuiButton":          "btn",
	"GuiLabel":           "lbl",
	"GuiTextField":       "txt",
	"GuiCTextField":      "ctxt",
	"GuiPasswordField":   "pwd",
	"GuiComboBox":        "cmb",
	"GuiCheckBox":        "chk",
	"GuiRadioButton":     "rad",
	"GuiTabStrip":        "tabs",
	"GuiTab":             "tabp",
	"GuiTableControl":    "tbl",
	"GuiShell":           "shell",
	"GuiContainerShell":  "shellcont",
	"GuiCustomControl":   "cntl",
	"GuiSimpleContainer": "sub",
	"GuiBox":             "box",
}

// TypeGroups maps group names to the type codes they expand to.
var TypeGroups = map[string][]string{
	"input":  {"txt", "ctxt", "pwd", "cmb", "chk", "rad", "okcd"},
	"action": {"btn", "tabp", "menu"},
}

// ExpandTypes expands any group names in the given list to their type codes.
// Other codes are passed through unchanged. Duplicates are removed.
func ExpandTypes(types []string) []string {
	seen := make(map[string]bool, len(types))
	var expanded []string
	for _, t := range types {
		if concrete, ok := TypeGroups[t]; ok {
			for _, c := range concrete {
				if !seen[c] {
					seen[c] = true
					expanded = append(expanded, c)
				}
			}
		} else if !seen[t] {
			seen[t] = true
			expanded = append(expanded, t)
		}
	}
	return expanded
}

// MapType converts a host component type to its compact code.
func MapType(hostType string) string {
	if short, ok := TypeMap[hostType]; ok {
		return short
	}
	return "other"
}

// TypeCode derives the compact code from the last segment of an id: the
// leading lowercase letters, "wnd" for "wnd[1]", "btn" for "btn[3]" or
// "btnBUTTON_YES".
func TypeCode(id NodeID) string {
	last := id.Last()
	end := 0
	for end < len(last) && last[end] >= 'a' && last[end] <= 'z' {
		end++
	}
	if end == 0 {
		return "other"
	}
	return strings.ToLower(last[:end])
}
