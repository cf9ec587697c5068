package graph

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Key returns a stable SHA-256 hex digest of g's structure.
//
// Node ids and edge endpoints are hashed in input order, since traversal
// order is part of what makes a validation result reproducible. Counts and
// field lengths are written ahead of the data so distinct graphs cannot
// produce the same byte stream.
func Key(g Graph) string {
	h := sha256.New()
	var buf [8]byte
	writeLen := func(n int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(n))
		h.Write(buf[:])
	}
	writeField := func(s string) {
		writeLen(len(s))
		h.Write([]byte(s))
	}

	writeLen(len(g.Nodes))
	for _, n := range g.Nodes {
		writeField(n.ID)
	}
	writeLen(len(g.Edges))
	for _, e := range g.Edges {
		writeField(e.Source)
		writeField(e.Target)
	}
	return hex.EncodeToString(h.Sum(nil))
}
