package graph

import (
	"fmt"
	"slices"
)

// DefaultNodeType is the renderer node type the editor assigns to every node.
const DefaultNodeType = "custom"

// Category classifies a node's role in the workflow.
type Category string

// Node categories.
const (
	CategoryInput   Category = "input"
	CategoryProcess Category = "process"
	CategoryOutput  Category = "output"
)

var categories = []Category{CategoryInput, CategoryProcess, CategoryOutput}

// Categories returns the fixed set of node categories in display order.
func Categories() []Category { return slices.Clone(categories) }

// ParseCategory validates s as a node category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !slices.Contains(categories, c) {
		return "", fmt.Errorf("unknown node category %q (want one of %v)", s, categories)
	}
	return c, nil
}

// Status is the optional runtime state badge shown on a node.
type Status string

// Node statuses.
const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusError    Status = "error"
)

// Position is a node's canvas coordinate. It never affects validation.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeData is the display payload of a node.
type NodeData struct {
	Label    string   `json:"label"`
	Category Category `json:"type,omitempty"`
	Status   Status   `json:"status,omitempty"`
}

// Node is a graph vertex as produced by the editing surface.
type Node struct {
	ID       string   `json:"id"`
	Type     string   `json:"type,omitempty"`
	Data     NodeData `json:"data"`
	Position Position `json:"position"`
}

// Edge is a directed connection from Source to Target.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// IsSelfLoop reports whether the edge starts and ends at the same node.
func (e Edge) IsSelfLoop() bool { return e.Source == e.Target }

// Graph is a snapshot of the editor's node and edge collections.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Clone returns a deep copy of g. Nil collections become empty slices so the
// JSON form is always `[]` rather than `null`.
func (g Graph) Clone() Graph {
	out := Graph{
		Nodes: make([]Node, len(g.Nodes)),
		Edges: make([]Edge, len(g.Edges)),
	}
	copy(out.Nodes, g.Nodes)
	copy(out.Edges, g.Edges)
	return out
}

// NodeIDs returns the ids of g's nodes in order.
func (g Graph) NodeIDs() []string {
	ids := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		ids[i] = n.ID
	}
	return ids
}

// HasNode reports whether a node with the given id exists.
func (g Graph) HasNode(id string) bool {
	return slices.ContainsFunc(g.Nodes, func(n Node) bool { return n.ID == id })
}

// HasEdge reports whether an edge from source to target exists.
func (g Graph) HasEdge(source, target string) bool {
	return slices.ContainsFunc(g.Edges, func(e Edge) bool {
		return e.Source == source && e.Target == target
	})
}
