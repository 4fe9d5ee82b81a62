package optimal_test

// Mazes with known answers. Costs are the minimum route cost from S facing
// East; tiles are the number of cells on any minimum-cost route.
const (
	mazeSmallest = `###
#E#
#S#
###`

	mazeSmallestPlus = `###
#E#
#.#
#S#
###`

	mazeOptions = `#####
#..E#
#S..#
#####`

	mazeBox = `#####
#...#
#.#E#
#S..#
#####`

	mazeSmallAlt = `########
#....#E#
#.#..#.#
#.#..#.#
#S#....#
########`

	mazeLoop = `#############
#..........E#
###.#.#####.#
#...#.....#.#
#.#.#.###.#.#
#.....#...#.#
#.###.#.#.#.#
#S..#.....#.#
#############`

	mazeTest = `###############
#.......#....E#
#.#.###.#.###.#
#.....#.#...#.#
#.###.#####.#.#
#.#.#.......#.#
#.#.#####.###.#
#...........#.#
###.#.#####.#.#
#...#.....#.#.#
#.#.#.###.#.#.#
#.....#...#.#.#
#.###.#.#.#.#.#
#S..#.....#...#
###############`

	mazeBigger = `#################
#...#...#...#..E#
#.#.#.#.#.#.#.#.#
#.#.#.#...#...#.#
#.#.#.#.###.#.#.#
#...#.#.#.....#.#
#.#.#.#.#.#####.#
#.#...#.#.#.....#
#.#.#####.#.###.#
#.#.#.......#...#
#.#.###.#####.###
#.#.#...#.....#.#
#.#.#.#####.###.#
#.#.#.........#.#
#.#.#.#########.#
#S#.............#
#################`

	mazeWalledOff = `#####
#S#E#
#####`

	mazeRoom = `######
#...E#
#....#
#....#
#S...#
######`
)

type scenario struct {
	name  string
	text  string
	cost  int64
	tiles int
}

var scenarios = []scenario{
	{"Smallest", mazeSmallest, 1001, 2},
	{"SmallestPlus", mazeSmallestPlus, 1002, 3},
	{"Options", mazeOptions, 1003, 4},
	{"Box", mazeBox, 1003, 4},
	{"SmallAlt", mazeSmallAlt, 5014, 18},
	{"Loop", mazeLoop, 4016, 25},
	{"Test", mazeTest, 7036, 45},
	{"Bigger", mazeBigger, 11048, 64},
}
