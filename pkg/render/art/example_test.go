package art_test

import (
	"fmt"

	"github.com/sphaso/treap/pkg/render/art"
)

func ExampleRender() {
	// A root with two leaf children, labeled the way the treap package does.
	t := art.Branch{
		Label: "b,2:two",
		Left:  art.Leaf("a,1:one"),
		Right: art.Leaf("c,3:three"),
	}
	fmt.Println(art.Render(t))
	// Output:
	//     b,2:two
	//       ╱╲
	//      ╱  ╲
	//     ╱    ╲
	//    ╱      ╲
	// a,1:one c,3:three
}

func ExampleRender_singleChild() {
	// A lone child hangs from a single stroke instead of a wedge.
	t := art.Branch{
		Label: "b,2:two",
		Left:  art.Leaf("a,1:one"),
		Right: art.Empty{},
	}
	fmt.Println(art.Render(t))
	// Output:
	//  b,2:two
	//    ╱
	// a,1:one
}

func ExampleRender_empty() {
	fmt.Printf("%q\n", art.Render(art.Empty{}))
	// Output:
	// ""
}
