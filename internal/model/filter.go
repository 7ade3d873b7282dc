package model

import "strings"

// FilterByTypes returns only nodes whose type code is in types. Group names
// such as "input" are expanded first. An empty list keeps everything.
func FilterByTypes(nodes []FlatNode, types []string) []FlatNode {
	if len(types) == 0 {
		return nodes
	}
	typeSet := make(map[string]bool)
	for _, t := range ExpandTypes(types) {
		typeSet[t] = true
	}
	var result []FlatNode
	for _, n := range nodes {
		if typeSet[n.Type] {
			result = append(result, n)
		}
	}
	return result
}

// FilterByText keeps nodes whose text contains text (case-insensitive).
func FilterByText(nodes []FlatNode, text string) []FlatNode {
	if text == "" {
		return nodes
	}
	textLower := strings.ToLower(text)
	var result []FlatNode
	for _, n := range nodes {
		if strings.Contains(strings.ToLower(n.Text), textLower) {
			result = append(result, n)
		}
	}
	return result
}

// structuralTypes carry no information for a caller unless they have text.
var structuralTypes = map[string]bool{
	"usr":       true,
	"sub":       true,
	"box":       true,
	"cntl":      true,
	"shellcont": true,
	"other":     true,
}

// PruneEmpty removes structural container nodes without text.
func PruneEmpty(nodes []FlatNode) []FlatNode {
	var result []FlatNode
	for _, n := range nodes {
		if structuralTypes[n.Type] && n.Text == "" {
			continue
		}
		result = append(result, n)
	}
	return result
}
