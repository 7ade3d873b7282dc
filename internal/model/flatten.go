package model

// FlatNode is a node with a path breadcrumb instead of children.
type FlatNode struct {
	ID   NodeID `yaml:"id"             json:"id"`
	Type string `yaml:"type"           json:"type"`
	Text string `yaml:"text,omitempty" json:"text,omitempty"`
	Path string `yaml:"path,omitempty" json:"path,omitempty"`
}

// FlattenNodes converts a tree of nodes into a flat list in depth-first
// order. Each node gets a path string showing its location in the tree
// using type codes joined with " > ".
func FlattenNodes(nodes []Node) []FlatNode {
	var result []FlatNode
	for _, n := range nodes {
		flattenRecursive(n, "", &result)
	}
	return result
}

func flattenRecursive(n Node, parentPath string, result *[]FlatNode) {
	code := CodeOf(n.Type, n.ID)
	currentPath := code
	if parentPath != "" {
		currentPath = parentPath + " > " + code
	}

	*result = append(*result, FlatNode{
		ID:   n.ID,
		Type: code,
		Text: n.Text,
		Path: currentPath,
	})

	for _, child := range n.Children {
		flattenRecursive(child, currentPath, result)
	}
}

// CodeOf returns the compact code for a node, preferring its host type and
// falling back to the id prefix.
func CodeOf(hostType string, id NodeID) string {
	if hostType != "" {
		if code := MapType(hostType); code != "other" {
			return code
		}
	}
	return TypeCode(id)
}

// FlatNodesFromIDs pairs flattened ids with their fetched texts. Types are
// derived from the ids.
func FlatNodesFromIDs(ids []NodeID, texts []string) []FlatNode {
	result := make([]FlatNode, 0, len(ids))
	for i, id := range ids {
		n := FlatNode{ID: id, Type: TypeCode(id)}
		if i < len(texts) {
			n.Text = texts[i]
		}
		result = append(result, n)
	}
	return result
}

// FindNode returns the node with the given id, or nil.
func FindNode(nodes []Node, id NodeID) *Node {
	for i := range nodes {
		if nodes[i].ID == id {
			return &nodes[i]
		}
		if found := FindNode(nodes[i].Children, id); found != nil {
			return found
		}
	}
	return nil
}
