// Package mazepath finds the cheapest routes through a directional maze.
//
// A maze is a rectangular block of '#' walls, '.' floor, one 'S' start and
// one 'E' end. A walker starts on S facing East. Moving forward one cell
// costs 1 and turning 90° in place costs 1000. The walker's heading is part
// of the search state, so the engine searches over (cell, heading) pairs.
//
// Two questions are answered per maze:
//
//  1. The minimum route cost from S to E, arriving in any heading.
//  2. How many cells lie on at least one minimum-cost route.
//
// Layout:
//
//	maze/        Grid parsing, validation, rendering, connectivity
//	statespace/  headings, states and the implicit (cell, heading) graph
//	dijkstra/    Dijkstra over implicit int-indexed graphs, multi-source
//	optimal/     forward + backward pass join, optimal tile set
//	service/     cached, locked, recorded solves for the HTTP API
//	api/         gin router and controllers
//	cache/       in-memory and Redis (redsync-locked) solution caches
//	repo/        solve history in memory or MongoDB
//	config/      environment and .env settings
//	logging/     logrus construction
//	cmd/         mazepath (CLI) and mazepathd (HTTP server)
//
// Quick start:
//
//	res, err := optimal.SolveText(text)
//	if err != nil { ... }
//	fmt.Println(res.MinCost, res.TileCount)
package mazepath
