package treap_test

import (
	"fmt"

	"github.com/sphaso/treap/pkg/treap"
)

func ExampleTreap_basic() {
	t := treap.New[string, string](treap.WithSeed(42))
	t.Insert("b", "two")
	t.Insert("a", "one")
	t.Insert("c", "three")

	fmt.Println("Len:", t.Len())
	fmt.Println("Keys:", t.Keys())
	v, _ := t.Get("b")
	fmt.Println("b:", v)
	// Output:
	// Len: 3
	// Keys: [a b c]
	// b: two
}

func ExampleTreap_Art() {
	// Explicit priorities pin the shape; random priorities would draw a
	// different picture per seed.
	t := treap.New[string, string]()
	t.InsertWithPriority("e", 84, "x")
	t.InsertWithPriority("c", 51, "y")
	t.InsertWithPriority("a", 3, "w")
	t.InsertWithPriority("f", 12, "z")

	fmt.Println(t.Art(treap.CompactLabel))
	// Output:
	//    e,84:x
	//      ╱╲
	//     ╱  ╲
	//    ╱    ╲
	// c,51:y f,12:z
	//   ╱
	// a,3:w
}

func ExampleTreap_Art_verbose() {
	t := treap.New[string, string]()
	t.InsertWithPriority("b", 9, "two")
	t.InsertWithPriority("a", 4, "one")

	fmt.Println(t.Art(treap.VerboseLabel))
	// Output:
	//  (k: b, p: 9) -> two
	//          ╱
	// (k: a, p: 4) -> one
}

func ExampleMerge() {
	lo := treap.New[int, string](treap.WithSeed(1))
	hi := treap.New[int, string](treap.WithSeed(2))
	lo.Insert(1, "one")
	lo.Insert(2, "two")
	hi.Insert(3, "three")

	merged := treap.Merge(lo, hi)
	fmt.Println(merged.Keys())
	// Output:
	// [1 2 3]
}
