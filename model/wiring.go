package model

// wrap maps v onto [0, n) so that -1 becomes n-1 and n becomes 0.
func wrap(v, n int) int {
	return ((v % n) + n) % n
}

// wireNeighbors connects every cell to the 8 cells around it, wrapping
// edges to the opposite side. On grids narrower than 3 in either direction
// several of those positions name the same cell, or the cell itself, and
// AddNeighbor collapses them.
func (g *Grid) wireNeighbors() {
	for i := range g.rows {
		top := wrap(i-1, g.rows)
		bottom := wrap(i+1, g.rows)
		for j := range g.columns {
			left := wrap(j-1, g.columns)
			right := wrap(j+1, g.columns)

			g.cellAt(i, j).AddMultipleNeighbors(
				g.cellAt(top, left),
				g.cellAt(top, j),
				g.cellAt(top, right),
				g.cellAt(i, left),
				g.cellAt(i, right),
				g.cellAt(bottom, left),
				g.cellAt(bottom, j),
				g.cellAt(bottom, right),
			)
		}
	}
}
