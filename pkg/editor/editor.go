// Package editor holds the structural state of one DAG editing session.
//
// An [Editor] applies the operations the browser canvas performs (add a
// node, connect two nodes, delete a selection, clear) and re-validates the
// graph after every structural change, so [Editor.Status] always reflects
// the current snapshot. Moving a node is not structural and leaves the
// status untouched.
//
// Editors are safe for concurrent use; the API shares one per session.
package editor

import (
	"context"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/dagcheck/pkg/dagcheck"
	"github.com/matzehuels/dagcheck/pkg/errors"
	"github.com/matzehuels/dagcheck/pkg/graph"
	"github.com/matzehuels/dagcheck/pkg/observability"
)

// Canvas bounds for randomly placed new nodes.
const (
	canvasWidth  = 500
	canvasHeight = 300
)

// InitialGraph returns the two nodes a fresh editor starts with.
func InitialGraph() graph.Graph {
	return graph.Graph{
		Nodes: []graph.Node{
			{
				ID:       "input-1",
				Type:     graph.DefaultNodeType,
				Data:     graph.NodeData{Label: "Input Node", Category: graph.CategoryInput},
				Position: graph.Position{X: 100, Y: 100},
			},
			{
				ID:       "process-1",
				Type:     graph.DefaultNodeType,
				Data:     graph.NodeData{Label: "Process Node", Category: graph.CategoryProcess},
				Position: graph.Position{X: 300, Y: 100},
			},
		},
		Edges: []graph.Edge{},
	}
}

// Editor is a mutable graph document with a cached validation status.
type Editor struct {
	mu     sync.RWMutex
	g      graph.Graph
	status dagcheck.Result
	rng    *rand.Rand
	newID  func() string
}

// Option configures an Editor.
type Option func(*Editor)

// WithEmpty starts the editor with no nodes.
func WithEmpty() Option {
	return func(e *Editor) { e.g = graph.Graph{Nodes: []graph.Node{}, Edges: []graph.Edge{}} }
}

// WithGraph starts the editor from an existing snapshot, e.g. an import.
func WithGraph(g graph.Graph) Option {
	return func(e *Editor) { e.g = g.Clone() }
}

// WithRand sets the source used for random categories and positions.
func WithRand(r *rand.Rand) Option {
	return func(e *Editor) { e.rng = r }
}

// WithIDFunc replaces uuid-based id generation, mainly for tests.
func WithIDFunc(fn func() string) Option {
	return func(e *Editor) { e.newID = fn }
}

// New creates an editor seeded with InitialGraph unless an option replaces it.
func New(opts ...Option) *Editor {
	e := &Editor{
		g:     InitialGraph(),
		rng:   rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		newID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(e)
	}
	e.revalidate(context.Background())
	return e
}

// Graph returns a deep copy of the current snapshot.
func (e *Editor) Graph() graph.Graph {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.g.Clone()
}

// Status returns the validation result for the current snapshot.
func (e *Editor) Status() dagcheck.Result {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.status
}

// AddNode appends a node with the given label. An empty category picks one
// at random; the node is placed at a random canvas position.
func (e *Editor) AddNode(ctx context.Context, label string, cat graph.Category) (graph.Node, error) {
	if err := errors.ValidateLabel(label); err != nil {
		return graph.Node{}, err
	}
	if cat != "" {
		if _, err := graph.ParseCategory(string(cat)); err != nil {
			return graph.Node{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "add node")
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if cat == "" {
		all := graph.Categories()
		cat = all[e.rng.IntN(len(all))]
	}
	n := graph.Node{
		ID:   "node_" + e.newID(),
		Type: graph.DefaultNodeType,
		Data: graph.NodeData{Label: label, Category: cat},
		Position: graph.Position{
			X: e.rng.Float64() * canvasWidth,
			Y: e.rng.Float64() * canvasHeight,
		},
	}
	e.g.Nodes = append(e.g.Nodes, n)
	e.revalidate(ctx)
	return n, nil
}

// Connect adds an edge from source to target. Self-loops, unknown endpoints
// and repeated connections are rejected and leave the graph unchanged.
func (e *Editor) Connect(ctx context.Context, source, target string) (graph.Edge, error) {
	if source == target {
		return graph.Edge{}, errors.New(errors.ErrCodeSelfLoop, "cannot connect node %q to itself", source)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.g.HasNode(source) {
		return graph.Edge{}, errors.New(errors.ErrCodeNotFound, "source node %q not found", source)
	}
	if !e.g.HasNode(target) {
		return graph.Edge{}, errors.New(errors.ErrCodeNotFound, "target node %q not found", target)
	}
	if e.g.HasEdge(source, target) {
		return graph.Edge{}, errors.New(errors.ErrCodeDuplicateEdge, "edge %s -> %s already exists", source, target)
	}

	edge := graph.Edge{ID: "edge_" + e.newID(), Source: source, Target: target}
	e.g.Edges = append(e.g.Edges, edge)
	e.revalidate(ctx)
	return edge, nil
}

// Delete removes the nodes and edges with the given ids. Edges attached to a
// deleted node go with it. It returns how many elements were removed.
func (e *Editor) Delete(ctx context.Context, ids ...string) int {
	if len(ids) == 0 {
		return 0
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	before := len(e.g.Nodes) + len(e.g.Edges)
	gone := make(map[string]struct{})
	e.g.Nodes = slices.DeleteFunc(e.g.Nodes, func(n graph.Node) bool {
		_, ok := drop[n.ID]
		if ok {
			gone[n.ID] = struct{}{}
		}
		return ok
	})
	e.g.Edges = slices.DeleteFunc(e.g.Edges, func(ed graph.Edge) bool {
		if _, ok := drop[ed.ID]; ok {
			return true
		}
		_, src := gone[ed.Source]
		_, dst := gone[ed.Target]
		return src || dst
	})

	removed := before - len(e.g.Nodes) - len(e.g.Edges)
	if removed > 0 {
		e.revalidate(ctx)
	}
	return removed
}

// Clear removes every node and edge.
func (e *Editor) Clear(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.g = graph.Graph{Nodes: []graph.Node{}, Edges: []graph.Edge{}}
	e.revalidate(ctx)
}

// Move updates a node's position.
func (e *Editor) Move(id string, pos graph.Position) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := slices.IndexFunc(e.g.Nodes, func(n graph.Node) bool { return n.ID == id })
	if i < 0 {
		return errors.New(errors.ErrCodeNotFound, "node %q not found", id)
	}
	e.g.Nodes[i].Position = pos
	return nil
}

// revalidate must be called with e.mu held for writing.
func (e *Editor) revalidate(ctx context.Context) {
	start := time.Now()
	e.status = dagcheck.Check(e.g)
	observability.Validation().OnValidate(ctx, len(e.g.Nodes), len(e.g.Edges),
		e.status.Valid, string(e.status.Reason), time.Since(start))
}
