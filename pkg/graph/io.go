package graph

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/dagcheck/pkg/errors"
)

// ReadJSON decodes an editor export from r.
//
// Unknown fields (edge styling, selection flags, handles) are ignored.
// Missing "nodes" or "edges" arrays decode as empty collections. Anything
// but whitespace after the graph object is an error. ReadJSON does not
// close r.
func ReadJSON(r io.Reader) (Graph, error) {
	var g Graph
	dec := json.NewDecoder(r)
	if err := dec.Decode(&g); err != nil {
		return Graph{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode graph")
	}
	if _, err := dec.Token(); err != io.EOF {
		return Graph{}, errors.New(errors.ErrCodeInvalidFormat, "decode graph: unexpected data after the graph object")
	}
	return g.Clone(), nil
}

// ImportJSON reads the editor export stored at path.
func ImportJSON(path string) (Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Graph{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Graph{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}
