// Command mazepath solves one maze and prints "<min_cost> / <tile_count>".
//
// Usage:
//
//	mazepath [-file input.txt] [-heading E] [-render] [-path] [-v level]
//
// The maze is read from -file or standard input. Blank lines and trailing
// whitespace are ignored.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/schlac/mazepath/logging"
	"github.com/schlac/mazepath/maze"
	"github.com/schlac/mazepath/optimal"
	"github.com/schlac/mazepath/statespace"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
	exitNoRoute = 3
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("mazepath", flag.ContinueOnError)
	fs.SetOutput(stderr)
	file := fs.String("file", "", "The file to read the maze from (default stdin)")
	heading := fs.String("heading", "E", "The initial heading: N, E, S or W")
	render := fs.Bool("render", false, "Print the maze with optimal tiles marked O")
	path := fs.Bool("path", false, "Print one best route as a sequence of moves")
	level := fs.String("v", "warn", "Log level")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	log, err := logging.NewWithOutput(stderr, *level, logging.FormatText)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	h, err := statespace.ParseHeading(*heading)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	in := stdin
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			fmt.Fprintln(stderr, "Error opening maze:", err)
			return exitFailure
		}
		defer f.Close()
		in = f
	}

	g, err := maze.Load(in)
	if err != nil {
		fmt.Fprintln(stderr, "Error reading maze:", err)
		return exitFailure
	}
	log.WithFields(logrus.Fields{"width": g.Width(), "height": g.Height(), "open": g.OpenCells()}).Debug("maze loaded")

	start := time.Now()
	res, err := optimal.Solve(g, optimal.WithStartHeading(h))
	if errors.Is(err, optimal.ErrNoRoute) {
		fmt.Fprintln(stdout, "no route")
		return exitNoRoute
	}
	if err != nil {
		fmt.Fprintln(stderr, "Error solving maze:", err)
		return exitFailure
	}
	log.WithFields(logrus.Fields{
		"min_cost": res.MinCost,
		"tiles":    res.TileCount,
		"settled":  res.Settled,
		"elapsed":  time.Since(start),
	}).Info("solved")

	fmt.Fprintf(stdout, "%d / %d\n", res.MinCost, res.TileCount)

	if *render {
		marks := make(map[maze.Cell]rune, res.TileCount)
		res.Tiles.Each(func(c maze.Cell) { marks[c] = 'O' })
		fmt.Fprintln(stdout, g.Render(marks))
	}
	if *path {
		states, err := res.BestPath()
		if err != nil {
			fmt.Fprintln(stderr, "Error rebuilding route:", err)
			return exitFailure
		}
		fmt.Fprintln(stdout, moves(states))
	}

	return exitOK
}

// moves renders a state sequence as one heading arrow per advance, with
// the route cost appended.
func moves(states []statespace.State) string {
	var b strings.Builder
	var cost int64
	for i := 1; i < len(states); i++ {
		prev, cur := states[i-1], states[i]
		if prev.Cell == cur.Cell {
			cost += statespace.RotateCost
			continue
		}
		cost += statespace.StepCost
		b.WriteRune(cur.Heading.Rune())
	}
	fmt.Fprintf(&b, " cost: %d", cost)

	return b.String()
}
