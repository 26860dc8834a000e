// Package treapio provides JSON import and export for treaps.
//
// # Overview
//
// This package serializes treaps to and from a small JSON format. The
// format is designed for:
//
//   - Persisting named trees in the store backends
//   - Caching built trees for faster re-rendering
//   - Round-trip preservation: export and re-import an identical shape
//
// # JSON Format
//
//	{
//	  "seed": 7,
//	  "nodes": [
//	    {"key": "a", "priority": 4, "value": "one"},
//	    {"key": "b", "priority": 9, "value": "two"}
//	  ]
//	}
//
// Nodes are listed in ascending key order. Each node records its priority,
// and import replays those priorities, so the rebuilt tree always has the
// exact shape of the exported one. The seed is provenance: it identifies
// the priority source the tree was built with and seeds the source of the
// rebuilt tree for any later random inserts.
//
// # Import and Export
//
// [ImportJSON] and [ExportJSON] work on file paths; [ReadJSON] and
// [WriteJSON] on streams; [Marshal] and [Unmarshal] on byte slices:
//
//	t, err := treapio.ImportJSON("tree.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = treapio.ExportJSON(t, "copy.json")
//
// Import validates the document: keys must be unique and priorities
// non-negative. Errors are wrapped with the offending key.
//
// The interchange type is fixed at Treap[string, string], matching what
// the CLI and HTTP surfaces work with.
package treapio
