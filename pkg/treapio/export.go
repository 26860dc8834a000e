package treapio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sphaso/treap/pkg/treap"
)

type document struct {
	Seed  uint64 `json:"seed"`
	Nodes []node `json:"nodes"`
}

type node struct {
	Key      string `json:"key"`
	Priority int    `json:"priority"`
	Value    string `json:"value"`
}

// toDocument flattens a treap into its interchange form, nodes in ascending
// key order.
func toDocument(t *treap.Treap[string, string]) document {
	doc := document{
		Seed:  t.Seed(),
		Nodes: make([]node, 0, t.Len()),
	}
	t.Walk(func(key string, priority int, value string) bool {
		doc.Nodes = append(doc.Nodes, node{Key: key, Priority: priority, Value: value})
		return true
	})
	return doc
}

// Marshal encodes a treap as a compact JSON document. The document records
// every node's priority, so [Unmarshal] reproduces the tree shape exactly.
func Marshal(t *treap.Treap[string, string]) ([]byte, error) {
	data, err := json.Marshal(toDocument(t))
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return data, nil
}

// WriteJSON encodes a treap as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(t *treap.Treap[string, string], w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toDocument(t)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a treap to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(t *treap.Treap[string, string], path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(t, f)
}
