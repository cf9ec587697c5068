// Package graph defines the node/edge model shared by the editing surface,
// the validator and the HTTP API.
//
// # Wire Format
//
// The types serialize to the same shape the browser editor exports, so a
// graph dumped from the editor can be posted or validated as-is:
//
//	{
//	  "nodes": [
//	    {"id": "input-1", "type": "custom",
//	     "data": {"label": "Input Node", "type": "input"},
//	     "position": {"x": 100, "y": 100}}
//	  ],
//	  "edges": [
//	    {"id": "edge_1", "source": "input-1", "target": "process-1"}
//	  ]
//	}
//
// Only node ids and edge endpoints matter structurally. Labels, categories,
// statuses and positions are carried through untouched.
//
// # Import
//
// Use [ReadJSON] for any io.Reader or [ImportJSON] for a file path. Decoding
// does not check structure: dangling edges and duplicate ids are left for
// the validator to judge.
//
// # Keys
//
// [Key] hashes the structural content of a graph. Two graphs with the same
// node ids and edge endpoints, in the same order, share a key regardless of
// labels or positions.
package graph
