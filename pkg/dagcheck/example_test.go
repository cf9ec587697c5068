package dagcheck_test

import (
	"fmt"

	"github.com/matzehuels/dagcheck/pkg/dagcheck"
	"github.com/matzehuels/dagcheck/pkg/graph"
)

func ExampleValidate() {
	nodes := []graph.Node{{ID: "A"}, {ID: "B"}}

	fmt.Println(dagcheck.Validate(nodes, nil))
	fmt.Println(dagcheck.Validate(nodes, []graph.Edge{{Source: "A", Target: "B"}}))
	fmt.Println(dagcheck.Validate(nodes[:1], nil))
	// Output:
	// invalid: All nodes must be connected.
	// valid: Valid DAG structure.
	// invalid: At least 2 nodes are required.
}

func ExampleValidate_cycle() {
	nodes := []graph.Node{{ID: "A"}, {ID: "B"}, {ID: "C"}}
	edges := []graph.Edge{
		{Source: "A", Target: "B"},
		{Source: "B", Target: "C"},
		{Source: "C", Target: "A"},
	}

	res := dagcheck.Validate(nodes, edges)
	fmt.Println(res.Valid, res.Reason)
	fmt.Println(res.Message)
	// Output:
	// false cycle
	// Cycle detected in the graph.
}

func ExampleValidate_disjointComponents() {
	// Coverage, not single-component connectivity, is what gets checked.
	nodes := []graph.Node{{ID: "A"}, {ID: "B"}, {ID: "C"}, {ID: "D"}}
	edges := []graph.Edge{{Source: "A", Target: "B"}, {Source: "C", Target: "D"}}

	fmt.Println(dagcheck.Validate(nodes, edges).Message)
	// Output:
	// Valid DAG structure.
}
