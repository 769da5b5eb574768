package modalDG

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constantField(bt BasisType, numCells []int, order int, v float64) (mf *ModalField) {
	var (
		NDim = len(numCells)
		Nb   = NumBasisFuncs(bt, order, NDim)
	)
	mf = &ModalField{
		NumCells:  numCells,
		Lower:     make([]float64, NDim),
		Upper:     make([]float64, NDim),
		PolyOrder: Order(order),
		Basis:     bt,
	}
	for d := range mf.Upper {
		mf.Upper[d] = 1
	}
	mf.Values = make([]float64, mf.TotalCells()*Nb)
	for k := 0; k < mf.TotalCells(); k++ {
		mf.Values[k*Nb] = v
	}
	return
}

func TestInterpolateShapeAndConstant(t *testing.T) {
	cellSets := [][]int{{3}, {2, 3}, {2, 1, 2}, {1, 2, 1, 2}, {2, 1, 1, 1, 2}, {1, 2, 1, 1, 1, 2}}
	for _, bt := range []BasisType{Serendipity, MaximalOrder} {
		for _, key := range DefaultKernelTable(bt).Keys() {
			var (
				numCells = cellSets[key.NumDims-1]
				v        = 1.7
				mf       = constantField(bt, numCells, key.PolyOrder, v)
				Nn       = key.PolyOrder + 1
				norm     = math.Pow(2, -0.5*float64(key.NumDims))
			)
			grid, nf, err := Interpolate(mf, Params{})
			require.NoError(t, err)
			require.Equal(t, key.NumDims+1, len(nf.Shape))
			for d, nc := range numCells {
				assert.Equal(t, nc*Nn, nf.Shape[d])
				assert.Equal(t, nc*Nn+1, len(grid[d]))
			}
			assert.Equal(t, 1, nf.Shape[key.NumDims])
			for _, val := range nf.Data {
				if !assert.InDelta(t, v*norm, val, 1.e-12, "%v %v", bt, key) {
					break
				}
			}
		}
	}
}

func TestInterpolate1DLinear(t *testing.T) {
	var (
		c0  = []float64{1, 2, -1, 0.5}
		c1  = []float64{0.2, -0.4, 1, 0}
		mf  = &ModalField{NumCells: []int{4}, Lower: []float64{0}, Upper: []float64{4}}
		s32 = math.Sqrt(1.5)
	)
	for k := range c0 {
		mf.Values = append(mf.Values, c0[k], c1[k])
	}
	grid, nf, err := Interpolate(mf, Params{PolyOrder: Order(1)})
	require.NoError(t, err)
	assert.Equal(t, []int{8, 1}, nf.Shape)
	assert.Equal(t, 9, len(grid[0]))
	kernel, err := DefaultKernelTable(Serendipity).Get(1, 1)
	require.NoError(t, err)
	for k := range c0 {
		left := c0[k]/math.Sqrt2 - 0.5*s32*c1[k]
		right := c0[k]/math.Sqrt2 + 0.5*s32*c1[k]
		assert.InDelta(t, left, nf.At(2*k, 0), 1.e-14)
		assert.InDelta(t, right, nf.At(2*k+1, 0), 1.e-14)
		assert.InDelta(t, kernel.Eval([]float64{c0[k], c1[k]}, -0.5), nf.At(2*k, 0), 1.e-14)
		// Linear within the cell: the cell average sits midway
		assert.InDelta(t, c0[k]/math.Sqrt2, 0.5*(left+right), 1.e-14)
	}
}

// Sub-cell centers of the default grid coincide with the default nodes
func subCellCenters(grid [][]float64) (centers [][]float64) {
	centers = make([][]float64, len(grid))
	for d, g := range grid {
		centers[d] = make([]float64, len(g)-1)
		for i := range centers[d] {
			centers[d][i] = 0.5 * (g[i] + g[i+1])
		}
	}
	return
}

func TestInterpolateExactness(t *testing.T) {
	type testCase struct {
		numCells     []int
		lower, upper []float64
		order        int
		bt           BasisType
		f            Function
	}
	cases := []testCase{
		{[]int{5}, []float64{-1}, []float64{2}, 3, Serendipity,
			func(x []float64) float64 { return 1 - 2*x[0] + 0.5*x[0]*x[0] - 0.1*x[0]*x[0]*x[0] }},
		{[]int{3, 4}, []float64{0, -1}, []float64{1, 1}, 2, Serendipity,
			func(x []float64) float64 { return 1 + x[0] - x[1] + 2*x[0]*x[1] + x[1]*x[1] }},
		{[]int{2, 2, 3}, []float64{0, 0, 0}, []float64{1, 2, 3}, 1, Serendipity,
			func(x []float64) float64 { return 0.5 + x[0] - 2*x[1] + 3*x[2] + x[0]*x[1]*x[2] }},
		{[]int{2, 2, 2, 2}, []float64{0, 0, 0, 0}, []float64{1, 1, 1, 1}, 2, MaximalOrder,
			func(x []float64) float64 { return x[0]*x[3] - x[1]*x[1] + x[2] }},
		{[]int{2, 3}, []float64{-1, -1}, []float64{1, 1}, 2, Tensor,
			func(x []float64) float64 { return x[0] * x[0] * x[1] * x[1] }},
	}
	for _, tc := range cases {
		mf, err := Project(tc.f, tc.lower, tc.upper, tc.numCells, tc.order, tc.bt)
		require.NoError(t, err)
		grid, nf, err := Interpolate(mf, Params{})
		require.NoError(t, err)
		centers := subCellCenters(grid)
		outDims := nf.Shape[:len(nf.Shape)-1]
		mi := NewMultiIndex(outDims)
		x := make([]float64, len(outDims))
		for n := 0; n < mi.Size(); n++ {
			for d, i := range mi.Idx {
				x[d] = centers[d][i]
			}
			if !assert.InDelta(t, tc.f(x), nf.Data[n], 1.e-11, "%v at %v", tc.numCells, x) {
				break
			}
			mi.Next()
		}
	}
}

func TestInterpolateErrors(t *testing.T) {
	{ // Dimensionality outside [1,6]
		for _, nc := range [][]int{{}, {1, 1, 1, 1, 1, 1, 1}} {
			mf := &ModalField{NumCells: nc, Lower: make([]float64, len(nc)),
				Upper: make([]float64, len(nc)), PolyOrder: Order(1)}
			_, _, err := Interpolate(mf, Params{})
			assert.True(t, errors.Is(err, ErrUnsupportedDimension))
		}
	}
	{ // No order as argument nor attribute
		mf := constantField(Serendipity, []int{2}, 1, 1)
		mf.PolyOrder = nil
		grid, nf, err := Interpolate(mf, Params{})
		assert.True(t, errors.Is(err, ErrMissingPolyOrder))
		assert.Nil(t, grid)
		assert.Nil(t, nf)
		// The argument alone is enough
		_, _, err = Interpolate(mf, Params{PolyOrder: Order(1)})
		assert.NoError(t, err)
	}
	{ // Explicit order wins over the attribute
		mf := constantField(Serendipity, []int{2}, 2, 1)
		_, _, err := Interpolate(mf, Params{PolyOrder: Order(7)})
		assert.True(t, errors.Is(err, ErrUnsupportedOrder))
	}
	{ // External grid with the wrong axis count
		mf := constantField(Serendipity, []int{2, 2}, 1, 1)
		_, nf, err := Interpolate(mf, Params{Grid: [][]float64{{0, 1, 2}}})
		assert.True(t, errors.Is(err, ErrGridDimensionMismatch))
		assert.Nil(t, nf)
	}
	{ // Coefficient buffer inconsistent with the basis
		mf := constantField(Serendipity, []int{2, 2}, 1, 1)
		mf.Values = mf.Values[:len(mf.Values)-1]
		_, _, err := Interpolate(mf, Params{})
		assert.True(t, errors.Is(err, ErrShapeMismatch))
	}
}

func TestInterpolateOptions(t *testing.T) {
	mf, err := Project(func(x []float64) float64 { return x[0] - x[1] },
		[]float64{0, 0}, []float64{1, 1}, []int{3, 2}, 1, Serendipity)
	require.NoError(t, err)
	{ // Super-sampling with caller supplied nodes
		_, nf, err := Interpolate(mf, Params{Nodes: ReferenceNodes(4)})
		require.NoError(t, err)
		assert.Equal(t, []int{15, 10, 1}, nf.Shape)
	}
	{ // External grid passed through verbatim
		ext := [][]float64{{0, 1}, {5, 6, 7}}
		grid, _, err := Interpolate(mf, Params{Grid: ext})
		require.NoError(t, err)
		assert.Equal(t, ext, grid)
	}
	{ // Serial and parallel evaluation agree exactly
		_, serial, err := NewInterpolator(DefaultKernelTable(Serendipity), 1).Interpolate(mf, Params{})
		require.NoError(t, err)
		for _, np := range []int{2, 3, 16} {
			_, par, err := NewInterpolator(DefaultKernelTable(Serendipity), np).Interpolate(mf, Params{})
			require.NoError(t, err)
			assert.Equal(t, serial.Data, par.Data)
		}
	}
	{ // Kernels without modes are evaluated cell by cell
		kt, err := NewKernelTable(Serendipity, 1)
		require.NoError(t, err)
		generated, err := kt.Get(2, 1)
		require.NoError(t, err)
		require.NoError(t, kt.Register(&Kernel{NumDims: 2, PolyOrder: 1, NumBasis: 4, Eval: generated.Eval}))
		_, opaque, err := NewInterpolator(kt, 2).Interpolate(mf, Params{})
		require.NoError(t, err)
		_, reference, err := Interpolate(mf, Params{})
		require.NoError(t, err)
		assert.InDeltaSlice(t, reference.Data, opaque.Data, 1.e-14)
	}
}
