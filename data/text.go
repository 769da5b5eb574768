package data

import (
	"bufio"
	"fmt"
	"io"

	"github.com/notargets/pgkyl/modalDG"
)

// WriteText writes one row per point: the coordinates followed by every
// component. Grids of edges are converted to centers.
func WriteText(w io.Writer, grid [][]float64, a *Array) (err error) {
	if a == nil || len(a.Shape) < 2 {
		return fmt.Errorf("%w: values need spatial axes and a component axis", ErrEmptyStack)
	}
	var (
		NDim   = len(a.Shape) - 1
		coords [][]float64
		bw     = bufio.NewWriter(w)
	)
	if len(grid) != NDim {
		return fmt.Errorf("%w: grid has %d axes, values have %d",
			modalDG.ErrGridDimensionMismatch, len(grid), NDim)
	}
	coords = make([][]float64, NDim)
	for d, g := range grid {
		switch len(g) {
		case a.Shape[d]:
			coords[d] = g
		case a.Shape[d] + 1:
			coords[d] = make([]float64, a.Shape[d])
			for i := range coords[d] {
				coords[d][i] = 0.5 * (g[i] + g[i+1])
			}
		default:
			return fmt.Errorf("%w: axis %d has %d grid points for %d values",
				modalDG.ErrGridDimensionMismatch, d, len(g), a.Shape[d])
		}
	}
	var (
		Nc = a.Shape[NDim]
		mi = modalDG.NewMultiIndex(a.Shape[:NDim])
	)
	for n := 0; n < mi.Size(); n++ {
		for d, i := range mi.Idx {
			fmt.Fprintf(bw, "%.15e ", coords[d][i])
		}
		for c := 0; c < Nc; c++ {
			if c > 0 {
				bw.WriteByte(' ')
			}
			fmt.Fprintf(bw, "%.15e", a.Data[n*Nc+c])
		}
		bw.WriteByte('\n')
		mi.Next()
	}
	return bw.Flush()
}
