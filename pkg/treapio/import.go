package treapio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sphaso/treap/pkg/treap"
)

// fromDocument rebuilds a treap from its interchange form by replaying the
// recorded priorities.
func fromDocument(doc document) (*treap.Treap[string, string], error) {
	t := treap.New[string, string](treap.WithSeed(doc.Seed))
	for _, n := range doc.Nodes {
		if n.Priority < 0 {
			return nil, fmt.Errorf("node %s: negative priority %d", n.Key, n.Priority)
		}
		if t.Has(n.Key) {
			return nil, fmt.Errorf("node %s: duplicate key", n.Key)
		}
		t.InsertWithPriority(n.Key, n.Priority, n.Value)
	}
	return t, nil
}

// ReadJSON decodes a JSON document from r into a treap.
//
// The input must be a JSON object with a "seed" and a "nodes" array:
//
//	{
//	  "seed": 7,
//	  "nodes": [
//	    {"key": "a", "priority": 4, "value": "one"},
//	    {"key": "b", "priority": 9, "value": "two"}
//	  ]
//	}
//
// Each node must have a unique key and a non-negative priority. Because the
// recorded priorities are replayed verbatim, the rebuilt tree has exactly
// the shape the exported tree had, no matter what order the nodes appear in.
//
// ReadJSON returns an error if the JSON is malformed, a key appears twice,
// or a priority is negative. Errors are wrapped with the offending key for
// context. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*treap.Treap[string, string], error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return fromDocument(doc)
}

// Unmarshal decodes a compact JSON document produced by [Marshal].
// It accepts the same format and returns the same validation errors
// as [ReadJSON].
func Unmarshal(data []byte) (*treap.Treap[string, string], error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return fromDocument(doc)
}

// ImportJSON reads a JSON file at path and returns the decoded treap.
//
// ImportJSON opens the file, decodes it using [ReadJSON], and closes the
// file. If the file cannot be opened, or if decoding fails, ImportJSON
// returns an error describing the failure. The error wraps the underlying
// cause with the file path for context.
func ImportJSON(path string) (*treap.Treap[string, string], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
