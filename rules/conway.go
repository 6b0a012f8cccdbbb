package rules

const (
	// underpopulation: fewer live neighbors than this and a cell dies
	minNeighbors = 2
	// overpopulation: more live neighbors than this and a cell dies
	maxNeighbors = 3
	// a cell with exactly this many live neighbors is alive next generation
	birthNeighbors = 3
)

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

	neighbors < 2  -> dead
	neighbors > 3  -> dead
	neighbors == 3 -> alive (birth or survival)
	neighbors == 2 -> unchanged
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	switch {
	case neighbors < minNeighbors || neighbors > maxNeighbors:
		return false
	case neighbors == birthNeighbors:
		return true
	default:
		return alive
	}
}
