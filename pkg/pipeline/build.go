package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/sphaso/treap/pkg/cache"
	"github.com/sphaso/treap/pkg/errors"
	"github.com/sphaso/treap/pkg/treap"
)

// Build constructs a treap from the options' keys and values.
//
// Priorities are drawn from a PRNG seeded with opts.Seed as keys are
// inserted, so the same key order and seed always reproduce the same
// tree. When Values is empty each key doubles as its own value.
// Duplicate keys follow insert semantics: the last value wins.
func Build(opts Options) (*treap.Treap[string, string], error) {
	if err := opts.ValidateForBuild(); err != nil {
		return nil, err
	}

	for i, key := range opts.Keys {
		if err := errors.ValidateKey(key); err != nil {
			return nil, fmt.Errorf("key %d: %w", i, err)
		}
		if len(opts.Values) != 0 {
			if err := errors.ValidateValue(opts.Values[i]); err != nil {
				return nil, fmt.Errorf("value %d: %w", i, err)
			}
		}
	}

	t := treap.New[string, string](treap.WithSeed(opts.Seed))
	for i, key := range opts.Keys {
		value := key
		if len(opts.Values) != 0 {
			value = opts.Values[i]
		}
		t.Insert(key, value)
	}
	return t, nil
}

// buildDigest returns a content digest of the build input. The seed is
// excluded here because TreeKeyOpts carries it into the cache key.
func buildDigest(opts Options) string {
	data, _ := json.Marshal(struct {
		Keys   []string `json:"keys"`
		Values []string `json:"values"`
	}{opts.Keys, opts.Values})
	return cache.Hash(data)
}
