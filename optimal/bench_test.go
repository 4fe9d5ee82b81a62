package optimal_test

import (
	"strings"
	"testing"

	"github.com/schlac/mazepath/maze"
	"github.com/schlac/mazepath/optimal"
)

// serpentine builds an n×n maze whose corridors zig-zag from the bottom
// left to the top right, forcing a turn at every row end.
func serpentine(n int) string {
	rows := make([][]byte, n)
	for y := range rows {
		rows[y] = []byte(strings.Repeat("#", n))
	}
	for y := 1; y < n-1; y += 2 {
		for x := 1; x < n-1; x++ {
			rows[y][x] = '.'
		}
		if y+2 < n-1 {
			gap := n - 2
			if (y/2)%2 == 1 {
				gap = 1
			}
			rows[y+1][gap] = '.'
		}
	}
	last := (n - 2) - (n-2+1)%2
	rows[last][1] = 'S'
	rows[1][n-2] = 'E'

	lines := make([]string, n)
	for i, r := range rows {
		lines[i] = string(r)
	}

	return strings.Join(lines, "\n")
}

func BenchmarkSolve_Test(b *testing.B) {
	g := maze.MustParse(mazeTest)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := optimal.Solve(g); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSolve_Serpentine141(b *testing.B) {
	g := maze.MustParse(serpentine(141))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := optimal.Solve(g); err != nil {
			b.Fatal(err)
		}
	}
}
