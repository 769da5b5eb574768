package modalDG

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasisCounts(t *testing.T) {
	{ // Serendipity
		assert.Equal(t, 2, NumBasisFuncs(Serendipity, 1, 1))
		assert.Equal(t, 4, NumBasisFuncs(Serendipity, 3, 1))
		assert.Equal(t, 4, NumBasisFuncs(Serendipity, 1, 2))
		assert.Equal(t, 8, NumBasisFuncs(Serendipity, 2, 2))
		assert.Equal(t, 12, NumBasisFuncs(Serendipity, 3, 2))
		assert.Equal(t, 8, NumBasisFuncs(Serendipity, 1, 3))
		assert.Equal(t, 20, NumBasisFuncs(Serendipity, 2, 3))
		assert.Equal(t, 64, NumBasisFuncs(Serendipity, 1, 6))
	}
	{ // Maximal order
		assert.Equal(t, 3, NumBasisFuncs(MaximalOrder, 1, 2))
		assert.Equal(t, 6, NumBasisFuncs(MaximalOrder, 2, 2))
		assert.Equal(t, 10, NumBasisFuncs(MaximalOrder, 2, 3))
		assert.Equal(t, 7, NumBasisFuncs(MaximalOrder, 1, 6))
	}
	{ // Tensor
		assert.Equal(t, 9, NumBasisFuncs(Tensor, 2, 2))
		assert.Equal(t, 64, NumBasisFuncs(Tensor, 3, 3))
	}
	{ // Ordering: constant first, then the linear modes axis by axis
		modes := Modes(Serendipity, 2, 2)
		assert.Equal(t, Mode{0, 0}, modes[0])
		assert.Equal(t, Mode{1, 0}, modes[1])
		assert.Equal(t, Mode{0, 1}, modes[2])
		assert.Equal(t, Mode{2, 0}, modes[3])
		assert.Equal(t, Mode{1, 1}, modes[4])
	}
}

func TestNewBasisType(t *testing.T) {
	for label, expected := range map[string]BasisType{
		"":              Serendipity,
		"ser":           Serendipity,
		"Serendipity":   Serendipity,
		"max":           MaximalOrder,
		"maximal-order": MaximalOrder,
		" tensor ":      Tensor,
	} {
		bt, err := NewBasisType(label)
		assert.NoError(t, err)
		assert.Equal(t, expected, bt, label)
	}
	_, err := NewBasisType("hybrid")
	assert.True(t, errors.Is(err, ErrUnknownBasis))
	assert.Equal(t, "maximal-order", MaximalOrder.String())
}

func TestKernelTable(t *testing.T) {
	kt := DefaultKernelTable(Serendipity)
	{ // Dimension and order validation
		for _, nd := range []int{0, 7, -1} {
			_, err := kt.Get(nd, 1)
			assert.True(t, errors.Is(err, ErrUnsupportedDimension), "dims = %d", nd)
		}
		for _, p := range []int{-1, 0, DefaultMaxPolyOrder + 1} {
			_, err := kt.Get(2, p)
			assert.True(t, errors.Is(err, ErrUnsupportedOrder), "order = %d", p)
		}
		assert.Equal(t, (MaxNumDims-MinNumDims+1)*DefaultMaxPolyOrder, len(kt.Keys()))
		assert.Equal(t, KernelKey{1, 1}, kt.Keys()[0])
		assert.Equal(t, KernelKey{6, 3}, kt.Keys()[len(kt.Keys())-1])
	}
	{ // The shared table is built once
		assert.True(t, kt == DefaultKernelTable(Serendipity))
		assert.False(t, kt == DefaultKernelTable(Tensor))
	}
	{ // Every mode pair is orthonormal on the reference cell
		for _, key := range []KernelKey{{1, 3}, {2, 2}, {3, 2}, {4, 1}} {
			k, err := kt.Get(key.NumDims, key.PolyOrder)
			require.NoError(t, err)
			r, w := GaussLegendre(key.PolyOrder + 1)
			qDims := make([]int, key.NumDims)
			for d := range qDims {
				qDims[d] = len(r)
			}
			gram := make([]float64, k.NumBasis*k.NumBasis)
			phi := make([]float64, k.NumBasis)
			x := make([]float64, key.NumDims)
			qi := NewMultiIndex(qDims)
			for q := 0; q < qi.Size(); q++ {
				wt := 1.
				for d, i := range qi.Idx {
					x[d] = r[i]
					wt *= w[i]
				}
				k.BasisAt(x, phi)
				for m := range phi {
					for n := range phi {
						gram[m*k.NumBasis+n] += wt * phi[m] * phi[n]
					}
				}
				qi.Next()
			}
			for m := 0; m < k.NumBasis; m++ {
				for n := 0; n < k.NumBasis; n++ {
					expected := 0.
					if m == n {
						expected = 1.
					}
					assert.InDelta(t, expected, gram[m*k.NumBasis+n], 1.e-12)
				}
			}
		}
	}
	{ // Kernel evaluation reproduces the expansion
		k, err := kt.Get(2, 1)
		require.NoError(t, err)
		coeffs := []float64{2, 0.5, -1, 0.25}
		x, y := 0.3, -0.6
		c := math.Sqrt(1.5)
		expected := coeffs[0]*0.5 + coeffs[1]*c*x/math.Sqrt2 + coeffs[2]*c*y/math.Sqrt2 + coeffs[3]*c*c*x*y
		assert.InDelta(t, expected, k.Eval(coeffs, x, y), 1.e-14)
	}
}

func TestKernelTableRegister(t *testing.T) {
	kt, err := NewKernelTable(MaximalOrder, 1)
	require.NoError(t, err)
	{ // Rejected registrations
		assert.True(t, errors.Is(kt.Register(NewKernel(7, 1, Modes(MaximalOrder, 1, 7))), ErrUnsupportedDimension))
		assert.True(t, errors.Is(kt.Register(&Kernel{NumDims: 1, PolyOrder: -2, NumBasis: 1,
			Eval: func([]float64, ...float64) float64 { return 0 }}), ErrUnsupportedOrder))
		assert.Error(t, kt.Register(&Kernel{NumDims: 1, PolyOrder: 2, NumBasis: 3}))
		assert.Error(t, kt.Register(&Kernel{NumDims: 2, PolyOrder: 2, NumBasis: 2,
			Modes: []Mode{{0}, {1}}, Eval: func([]float64, ...float64) float64 { return 0 }}))
		_, err = kt.Get(1, 2)
		assert.True(t, errors.Is(err, ErrUnsupportedOrder))
	}
	{ // An extra order becomes available after registration
		require.NoError(t, kt.Register(NewKernel(1, 0, Modes(MaximalOrder, 0, 1))))
		k, err := kt.Get(1, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, k.NumBasis)
		assert.InDelta(t, 3/math.Sqrt2, k.Eval([]float64{3}, 0.1), 1.e-14)
	}
	{ // Unknown family
		_, err = NewKernelTable(numBasisTypes, 1)
		assert.True(t, errors.Is(err, ErrUnknownBasis))
	}
}
