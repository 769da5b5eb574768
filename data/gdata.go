package data

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/notargets/pgkyl/modalDG"
)

var (
	ErrEmptyStack        = errors.New("data stack has no entry to pop")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrBadFile           = errors.New("malformed data file")
	ErrBadSelection      = errors.New("component selection out of range")
)

// Array is one stack entry of values, row-major with the given shape
type Array struct {
	Shape []int
	Data  []float64
}

func (a *Array) Min() (v float64) {
	v = math.Inf(1)
	for _, x := range a.Data {
		v = math.Min(v, x)
	}
	return
}

func (a *Array) Max() (v float64) {
	v = math.Inf(-1)
	for _, x := range a.Data {
		v = math.Max(v, x)
	}
	return
}

// GData is one loaded data set. Grids and values form a LIFO stack; with
// Stack disabled a push replaces the top entry instead of adding one.
type GData struct {
	FileName                 string
	LowerBounds, UpperBounds []float64
	Cells                    []int
	Time                     float64
	Basis                    modalDG.BasisType
	Stack                    bool
	polyOrder                *int
	grids                    [][][]float64
	values                   []*Array
}

// NewGData builds a data set whose base entry is values on the cell-edge grid
func NewGData(lower, upper []float64, numCells []int, values []float64, shape []int) (gd *GData) {
	gd = &GData{
		LowerBounds: append([]float64{}, lower...),
		UpperBounds: append([]float64{}, upper...),
		Cells:       append([]int{}, numCells...),
	}
	gd.grids = append(gd.grids, modalDG.PhysicalGrid(lower, upper, numCells, 1))
	gd.values = append(gd.values, &Array{Shape: append([]int{}, shape...), Data: values})
	return
}

// FromModalField wraps modal coefficients, shaped numCells plus the coefficient axis
func FromModalField(mf *modalDG.ModalField) (gd *GData) {
	var (
		Nb    = len(mf.Values) / max(mf.TotalCells(), 1)
		shape = append(append([]int{}, mf.NumCells...), Nb)
	)
	gd = NewGData(mf.Lower, mf.Upper, mf.NumCells, mf.Values, shape)
	gd.Basis = mf.Basis
	if mf.PolyOrder != nil {
		gd.SetPolyOrder(*mf.PolyOrder)
	}
	return
}

var _ modalDG.DataSurface = (*GData)(nil)

func (gd *GData) NumDims() int { return len(gd.Cells) }
func (gd *GData) Bounds() (lower, upper []float64) { return gd.LowerBounds, gd.UpperBounds }
func (gd *GData) NumCells() []int { return gd.Cells }
func (gd *GData) BasisType() modalDG.BasisType { return gd.Basis }
func (gd *GData) SetPolyOrder(p int) { gd.polyOrder = &p }
func (gd *GData) ClearPolyOrder() { gd.polyOrder = nil }

func (gd *GData) PolyOrder() (polyOrder int, ok bool) {
	if gd.polyOrder == nil {
		return 0, false
	}
	return *gd.polyOrder, true
}

func (gd *GData) Values() []float64 {
	if len(gd.values) == 0 {
		return nil
	}
	return gd.PeekValues().Data
}

func (gd *GData) PushGrid(grid [][]float64) {
	if !gd.Stack && len(gd.grids) != 0 {
		gd.grids[len(gd.grids)-1] = grid
		return
	}
	gd.grids = append(gd.grids, grid)
}

func (gd *GData) PushValues(values []float64, shape []int) {
	a := &Array{Shape: append([]int{}, shape...), Data: values}
	if !gd.Stack && len(gd.values) != 0 {
		gd.values[len(gd.values)-1] = a
		return
	}
	gd.values = append(gd.values, a)
}

// PopGrid removes the top grid, the base entry can not be popped
func (gd *GData) PopGrid() (grid [][]float64, err error) {
	if len(gd.grids) < 2 {
		return nil, ErrEmptyStack
	}
	grid = gd.grids[len(gd.grids)-1]
	gd.grids = gd.grids[:len(gd.grids)-1]
	return
}

func (gd *GData) PopValues() (a *Array, err error) {
	if len(gd.values) < 2 {
		return nil, ErrEmptyStack
	}
	a = gd.values[len(gd.values)-1]
	gd.values = gd.values[:len(gd.values)-1]
	return
}

func (gd *GData) PeekGrid() [][]float64 {
	if len(gd.grids) == 0 {
		return nil
	}
	return gd.grids[len(gd.grids)-1]
}

func (gd *GData) PeekValues() *Array {
	if len(gd.values) == 0 {
		return nil
	}
	return gd.values[len(gd.values)-1]
}

func (gd *GData) StackDepth() int { return len(gd.values) }

// NumComps is the length of the trailing component axis of the top values
func (gd *GData) NumComps() int {
	a := gd.PeekValues()
	if a == nil || len(a.Shape) <= gd.NumDims() {
		return 1
	}
	return a.Shape[len(a.Shape)-1]
}

// SelectComponents keeps components [lo,hi) of the top values. A component is a
// block of blockSize entries of the trailing axis: the basis size for modal data,
// 1 for nodal data.
func (gd *GData) SelectComponents(lo, hi, blockSize int) (err error) {
	var (
		a = gd.PeekValues()
	)
	if a == nil {
		return ErrEmptyStack
	}
	if len(a.Shape) <= gd.NumDims() || blockSize < 1 {
		return fmt.Errorf("%w: values of shape %v have no component axis", modalDG.ErrShapeMismatch, a.Shape)
	}
	var (
		Nt    = a.Shape[len(a.Shape)-1]
		NComp = Nt / blockSize
	)
	if Nt%blockSize != 0 {
		return fmt.Errorf("%w: trailing axis of %d is not a multiple of %d",
			modalDG.ErrShapeMismatch, Nt, blockSize)
	}
	if lo < 0 || hi > NComp || lo >= hi {
		return fmt.Errorf("%w: components [%d,%d) of %d", ErrBadSelection, lo, hi, NComp)
	}
	var (
		width = (hi - lo) * blockSize
		npts  = len(a.Data) / Nt
		sel   = make([]float64, 0, npts*width)
	)
	for n := 0; n < npts; n++ {
		sel = append(sel, a.Data[n*Nt+lo*blockSize:n*Nt+hi*blockSize]...)
	}
	shape := append([]int{}, a.Shape...)
	shape[len(shape)-1] = width
	gd.values[len(gd.values)-1] = &Array{Shape: shape, Data: sel}
	return
}

func (gd *GData) Info() string {
	var (
		sb strings.Builder
	)
	if len(gd.FileName) != 0 {
		fmt.Fprintf(&sb, "%s\n", gd.FileName)
	}
	fmt.Fprintf(&sb, "├─ Time: %e\n", gd.Time)
	fmt.Fprintf(&sb, "├─ Number of components: %d\n", gd.NumComps())
	fmt.Fprintf(&sb, "├─ Number of dimensions: %d\n", gd.NumDims())
	if p, ok := gd.PolyOrder(); ok {
		fmt.Fprintf(&sb, "├─ DG info: %s basis, polynomial order %d\n", gd.Basis, p)
	}
	fmt.Fprintf(&sb, "├─ Stack depth: %d\n", gd.StackDepth())
	if a := gd.PeekValues(); a != nil && len(a.Data) != 0 {
		fmt.Fprintf(&sb, "├─ Shape: %v\n", a.Shape)
		fmt.Fprintf(&sb, "├─ Minimum: %e\n", a.Min())
		fmt.Fprintf(&sb, "├─ Maximum: %e\n", a.Max())
	}
	fmt.Fprintf(&sb, "└─ Grid:\n")
	for d := 0; d < gd.NumDims(); d++ {
		fmt.Fprintf(&sb, "   ├─ Dim %d: Num. cells: %d; Lower: %e; Upper: %e\n",
			d, gd.Cells[d], gd.LowerBounds[d], gd.UpperBounds[d])
	}
	return sb.String()
}
