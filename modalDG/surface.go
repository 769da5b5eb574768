package modalDG

import "fmt"

// DataSurface is the data set an interpolation reads from and pushes its
// result onto. How pushes interact with earlier entries is up to the implementation.
type DataSurface interface {
	NumDims() int
	Bounds() (lower, upper []float64)
	NumCells() []int
	Values() []float64
	PolyOrder() (polyOrder int, ok bool)
	BasisType() BasisType
	PushGrid(grid [][]float64)
	PushValues(values []float64, shape []int)
}

// ModalFieldFrom reads a ModalField view of the surface's current values
func ModalFieldFrom(ds DataSurface) (mf *ModalField) {
	lower, upper := ds.Bounds()
	mf = &ModalField{
		NumCells: ds.NumCells(),
		Lower:    lower,
		Upper:    upper,
		Basis:    ds.BasisType(),
		Values:   ds.Values(),
	}
	if p, ok := ds.PolyOrder(); ok {
		mf.PolyOrder = &p
	}
	return
}

// InterpolateData interpolates the surface's values and pushes the grid and the
// nodal values back. Validation is that of Interpolate, nothing is pushed on failure.
func (ip *Interpolator) InterpolateData(ds DataSurface, p Params) (err error) {
	var (
		grid [][]float64
		nf   *NodalField
	)
	if grid, nf, err = ip.Interpolate(ModalFieldFrom(ds), p); err != nil {
		return
	}
	ds.PushGrid(grid)
	ds.PushValues(nf.Data, nf.Shape)
	return
}

// InterpolateData uses the shared kernel table of the surface's basis family
func InterpolateData(ds DataSurface, p Params) error {
	bt := ds.BasisType()
	if !bt.Valid() {
		return fmt.Errorf("%w: %v", ErrUnknownBasis, bt)
	}
	return NewInterpolator(DefaultKernelTable(bt), 0).InterpolateData(ds, p)
}
