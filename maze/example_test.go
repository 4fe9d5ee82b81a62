package maze_test

import (
	"fmt"

	"github.com/schlac/mazepath/maze"
)

// ExampleParse shows the basic queries on a parsed maze.
func ExampleParse() {
	g, err := maze.Parse("####\n#.E#\n#S.#\n####")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(g.Width(), g.Height(), g.Start(), g.End())
	fmt.Println(g.KindAt(maze.Cell{X: -1, Y: -1}))
	// Output:
	// 4 4 (1,2) (2,1)
	// wall
}
