// Package dagcheck decides whether an editor's node/edge snapshot forms a
// valid directed acyclic graph.
//
// # Rules
//
// [Validate] applies four rules in order and stops at the first failure:
//
//  1. At least [MinNodes] nodes must exist.
//  2. The set of node ids touched by an edge must be as large as the
//     node list, so every node is the source or target of some edge.
//  3. The directed graph must contain no cycle.
//  4. Otherwise the graph is valid.
//
// Rule 2 checks edge coverage only. A graph made of two separate chains
// passes it, because every node still touches an edge. Callers that need a
// single connected component must check that themselves.
//
// # Malformed Input
//
// Edges whose source or target is not among the supplied nodes are ignored
// by both the coverage check and the cycle search. Duplicate edges are
// harmless. A self-loop on a known node is reported as a cycle. A repeated
// node id fails rule 2, since the id is covered once but listed twice.
// [ValidateStrict] rejects dangling edges and duplicate node ids with a
// coded error instead of ignoring them.
//
// # Complexity
//
// Each call builds its own adjacency map and runs an iterative depth-first
// search with an explicit frame stack, so validation is O(V+E) and deep
// chains cannot overflow the goroutine stack. Nothing is retained between
// calls and inputs are never modified; concurrent calls are safe.
package dagcheck
