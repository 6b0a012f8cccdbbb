package model

import "math/rand/v2"

// RandomMatrix builds a rows x columns matrix where each entry is alive with
// probability density.
func RandomMatrix(rng *rand.Rand, rows, columns int, density float64) [][]bool {
	matrix := make([][]bool, rows)
	for i := range matrix {
		matrix[i] = make([]bool, columns)
		for j := range matrix[i] {
			matrix[i][j] = rng.Float64() < density
		}
	}
	return matrix
}

// AddInterestingPatterns stamps a glider near the top-left corner and a
// blinker in the middle. Grids smaller than 10x10 are left untouched.
func (g *Grid) AddInterestingPatterns() {
	if g.rows < 10 || g.columns < 10 {
		return
	}
	g.AddGlider(1, 1)
	g.AddOscillator(g.rows/2, g.columns/2)
	if g.rows >= 15 && g.columns >= 20 {
		g.AddGlider(1, g.columns-8)
	}
}

// AddGlider stamps a glider with its top-left corner at (row, col)
func (g *Grid) AddGlider(row, col int) {
	g.stamp(row, col, [][]bool{
		{false, true, false},
		{false, false, true},
		{true, true, true},
	})
}

// AddOscillator stamps a horizontal blinker starting at (row, col)
func (g *Grid) AddOscillator(row, col int) {
	g.stamp(row, col, [][]bool{
		{true, true, true},
	})
}

// stamp writes pattern onto the grid, wrapping around the edges
func (g *Grid) stamp(row, col int, pattern [][]bool) {
	for i, line := range pattern {
		for j, alive := range line {
			g.Set(row+i, col+j, alive)
		}
	}
}
