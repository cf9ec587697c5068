package graph

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/dagcheck/pkg/errors"
)

const editorExport = `{
  "nodes": [
    {
      "id": "input-1",
      "type": "custom",
      "data": {"label": "Input Node", "type": "input"},
      "position": {"x": 100, "y": 100},
      "selected": false
    },
    {
      "id": "process-1",
      "type": "custom",
      "data": {"label": "Process Node", "type": "process", "status": "active"},
      "position": {"x": 300, "y": 100}
    }
  ],
  "edges": [
    {
      "id": "reactflow__edge-input-1-process-1",
      "source": "input-1",
      "target": "process-1",
      "animated": true
    }
  ]
}`

func TestReadJSON(t *testing.T) {
	g, err := ReadJSON(strings.NewReader(editorExport))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}

	if len(g.Nodes) != 2 {
		t.Fatalf("nodes = %d, want 2", len(g.Nodes))
	}
	if len(g.Edges) != 1 {
		t.Fatalf("edges = %d, want 1", len(g.Edges))
	}

	n := g.Nodes[1]
	if n.ID != "process-1" || n.Type != DefaultNodeType {
		t.Errorf("node = %+v", n)
	}
	if n.Data.Label != "Process Node" || n.Data.Category != CategoryProcess || n.Data.Status != StatusActive {
		t.Errorf("data = %+v", n.Data)
	}
	if n.Position != (Position{X: 300, Y: 100}) {
		t.Errorf("position = %+v", n.Position)
	}

	e := g.Edges[0]
	if e.Source != "input-1" || e.Target != "process-1" {
		t.Errorf("edge = %+v", e)
	}
}

func TestReadJSONMissingArrays(t *testing.T) {
	g, err := ReadJSON(strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if g.Nodes == nil || g.Edges == nil {
		t.Error("missing arrays should decode as empty slices")
	}

	out, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != `{"nodes":[],"edges":[]}` {
		t.Errorf("Marshal = %s", out)
	}
}

func TestReadJSONMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"truncated", `{"nodes": [`},
		{"wrong type", `{"nodes": {"id": "a"}}`},
		{"not json", `nodes: []`},
		{"trailing object", `{"nodes":[]}{"garbage"`},
		{"second graph", `{"nodes":[]} {"nodes":[]}`},
		{"trailing bracket", `{"nodes":[]}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("err = %v, want %s", err, errors.ErrCodeInvalidFormat)
			}
		})
	}
}

func TestReadJSONTrailingWhitespace(t *testing.T) {
	g, err := ReadJSON(strings.NewReader("{\"nodes\":[{\"id\":\"a\"}]}\n\t \n"))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if len(g.Nodes) != 1 {
		t.Errorf("nodes = %d, want 1", len(g.Nodes))
	}
}

func TestReadJSONKeepsDanglingEdges(t *testing.T) {
	input := `{"nodes":[{"id":"a"}],"edges":[{"id":"e","source":"a","target":"ghost"}]}`
	g, err := ReadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if len(g.Edges) != 1 {
		t.Errorf("dangling edge should survive decoding, got %d edges", len(g.Edges))
	}
}

func TestImportJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.json")
	if err := os.WriteFile(path, []byte(editorExport), 0o644); err != nil {
		t.Fatal(err)
	}

	g, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if len(g.Nodes) != 2 {
		t.Errorf("nodes = %d, want 2", len(g.Nodes))
	}

	_, err = ImportJSON(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file err = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		got, err := ParseCategory(string(c))
		if err != nil || got != c {
			t.Errorf("ParseCategory(%q) = %q, %v", c, got, err)
		}
	}
	if _, err := ParseCategory("sink"); err == nil {
		t.Error("ParseCategory(sink) should fail")
	}
	if _, err := ParseCategory(""); err == nil {
		t.Error("ParseCategory(\"\") should fail")
	}
}

func TestCategoriesIsCopy(t *testing.T) {
	c := Categories()
	c[0] = "mutated"
	if Categories()[0] != CategoryInput {
		t.Error("Categories() must not expose internal slice")
	}
}

func TestCloneIsDeep(t *testing.T) {
	g := Graph{
		Nodes: []Node{{ID: "a"}, {ID: "b"}},
		Edges: []Edge{{ID: "e", Source: "a", Target: "b"}},
	}
	c := g.Clone()
	c.Nodes[0].ID = "x"
	c.Edges[0].Target = "x"

	if g.Nodes[0].ID != "a" || g.Edges[0].Target != "b" {
		t.Error("Clone shares backing arrays with the original")
	}
}

func TestLookups(t *testing.T) {
	g := Graph{
		Nodes: []Node{{ID: "a"}, {ID: "b"}},
		Edges: []Edge{{Source: "a", Target: "b"}},
	}
	if !g.HasNode("a") || g.HasNode("c") {
		t.Error("HasNode mismatch")
	}
	if !g.HasEdge("a", "b") || g.HasEdge("b", "a") {
		t.Error("HasEdge mismatch")
	}
	if ids := g.NodeIDs(); len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("NodeIDs = %v", ids)
	}
	if (Edge{Source: "a", Target: "a"}).IsSelfLoop() != true {
		t.Error("IsSelfLoop should be true for a->a")
	}
}

func TestKey(t *testing.T) {
	base := Graph{
		Nodes: []Node{{ID: "a"}, {ID: "b"}},
		Edges: []Edge{{ID: "e1", Source: "a", Target: "b"}},
	}

	relabeled := base.Clone()
	relabeled.Nodes[0].Data.Label = "renamed"
	relabeled.Nodes[0].Position = Position{X: 42}
	relabeled.Edges[0].ID = "other"

	reversed := base.Clone()
	reversed.Edges[0] = Edge{Source: "b", Target: "a"}

	if Key(base) != Key(base) {
		t.Error("Key should be deterministic")
	}
	if Key(base) != Key(relabeled) {
		t.Error("labels, positions and edge ids must not change the key")
	}
	if Key(base) == Key(reversed) {
		t.Error("edge direction must change the key")
	}
	if len(Key(base)) != 64 {
		t.Errorf("Key length = %d, want 64", len(Key(base)))
	}
}

func TestKeyNoSectionCollision(t *testing.T) {
	a := Graph{Nodes: []Node{{ID: "x"}, {ID: "y"}}}
	b := Graph{Edges: []Edge{{Source: "x", Target: "y"}}}
	if Key(a) == Key(b) {
		t.Error("node ids and edge endpoints must hash differently")
	}
}
