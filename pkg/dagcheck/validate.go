package dagcheck

import (
	"github.com/matzehuels/dagcheck/pkg/errors"
	"github.com/matzehuels/dagcheck/pkg/graph"
)

// Validate reports whether nodes and edges form a valid DAG.
//
// It never fails: malformed edges are skipped and the result itself carries
// the verdict. See the package documentation for the rule order.
func Validate(nodes []graph.Node, edges []graph.Edge) Result {
	if len(nodes) < MinNodes {
		return newResult(ReasonTooFewNodes)
	}

	known := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		known[n.ID] = struct{}{}
	}

	connected := make(map[string]struct{}, len(nodes))
	children := make(map[string][]string, len(nodes))
	for _, e := range edges {
		_, okS := known[e.Source]
		_, okT := known[e.Target]
		if !okS || !okT {
			continue
		}
		connected[e.Source] = struct{}{}
		connected[e.Target] = struct{}{}
		children[e.Source] = append(children[e.Source], e.Target)
	}

	// Compared by count: a repeated node id counts once in connected but
	// every time in nodes, so duplicates fail this rule.
	if len(connected) < len(nodes) {
		return newResult(ReasonDisconnected)
	}

	if hasCycle(nodes, children) {
		return newResult(ReasonCycle)
	}
	return newResult(ReasonOK)
}

// Check validates a whole graph snapshot.
func Check(g graph.Graph) Result {
	return Validate(g.Nodes, g.Edges)
}

// ValidateStrict is Validate with input checking. It returns an
// INVALID_INPUT error for an unusable node id, DUPLICATE_NODE_ID when two
// nodes share an id, and INVALID_EDGE_ENDPOINT for an edge that references
// an unknown node. No rule runs when an error is returned.
func ValidateStrict(nodes []graph.Node, edges []graph.Edge) (Result, error) {
	seen := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		if err := errors.ValidateNodeID(n.ID); err != nil {
			return Result{}, err
		}
		if _, dup := seen[n.ID]; dup {
			return Result{}, errors.New(errors.ErrCodeDuplicateNodeID, "duplicate node id %q", n.ID)
		}
		seen[n.ID] = struct{}{}
	}

	for _, e := range edges {
		if _, ok := seen[e.Source]; !ok {
			return Result{}, errors.New(errors.ErrCodeInvalidEdgeEndpoint,
				"edge %q references unknown source node %q", e.ID, e.Source)
		}
		if _, ok := seen[e.Target]; !ok {
			return Result{}, errors.New(errors.ErrCodeInvalidEdgeEndpoint,
				"edge %q references unknown target node %q", e.ID, e.Target)
		}
	}

	return Validate(nodes, edges), nil
}

// frame is one level of the explicit DFS stack: a node and the index of the
// next child to visit.
type frame struct {
	id   string
	next int
}

// hasCycle runs a white/gray/black depth-first search rooted at each
// unvisited node in input order. Children are visited in edge order.
func hasCycle(nodes []graph.Node, children map[string][]string) bool {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(nodes))
	var stack []frame

	for _, n := range nodes {
		if color[n.ID] != white {
			continue
		}
		color[n.ID] = gray
		stack = append(stack[:0], frame{id: n.ID})

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			next := children[top.id]
			if top.next == len(next) {
				color[top.id] = black
				stack = stack[:len(stack)-1]
				continue
			}
			child := next[top.next]
			top.next++

			switch color[child] {
			case gray:
				return true
			case white:
				color[child] = gray
				stack = append(stack, frame{id: child})
			}
		}
	}
	return false
}
