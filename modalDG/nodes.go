package modalDG

import "gonum.org/v1/gonum/floats"

// ReferenceNodes returns order+1 cell-centered points in (-1,1), spaced dx = 2/(order+1)
// and offset half a step from the cell boundaries
func ReferenceNodes(polyOrder int) (nodes []float64) {
	var (
		Np = polyOrder + 1
		dx = 2. / float64(Np)
	)
	nodes = make([]float64, Np)
	for i := range nodes {
		nodes[i] = -1 + 0.5*dx + float64(i)*dx
	}
	return
}

// PhysicalGrid subdivides every cell into numNodes sub-cells and returns the
// numCells[d]*numNodes+1 sub-cell edges of each axis
func PhysicalGrid(lower, upper []float64, numCells []int, numNodes int) (grid [][]float64) {
	grid = make([][]float64, len(numCells))
	for d, nc := range numCells {
		grid[d] = Linspace(lower[d], upper[d], nc*numNodes+1)
	}
	return
}

// Linspace returns N evenly spaced points from xmin to xmax inclusive
func Linspace(xmin, xmax float64, N int) (x []float64) {
	x = make([]float64, N)
	if N == 1 {
		x[0] = xmin
		return
	}
	floats.Span(x, xmin, xmax)
	x[N-1] = xmax
	return
}
