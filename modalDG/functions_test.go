package modalDG

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFunction(t *testing.T) {
	x := []float64{0.5, -1}
	{
		f, err := NewFunction(FunctionSpec{Type: "constant", Amplitude: 3}, 2)
		require.NoError(t, err)
		assert.Equal(t, 3., f(x))
	}
	{ // Missing slopes are zero
		f, err := NewFunction(FunctionSpec{Type: "Linear", Offset: 1, Slope: []float64{2}}, 2)
		require.NoError(t, err)
		assert.Equal(t, 2., f(x))
	}
	{
		f, err := NewFunction(FunctionSpec{Type: "gaussian", Amplitude: 2, Width: 1,
			Center: []float64{0.5, 0}}, 2)
		require.NoError(t, err)
		assert.InDelta(t, 2*math.Exp(-0.5), f(x), 1.e-15)
		_, err = NewFunction(FunctionSpec{Type: "gaussian"}, 2)
		assert.Error(t, err)
	}
	{
		f, err := NewFunction(FunctionSpec{Type: "sine", Amplitude: 1, Offset: 1,
			WaveNumber: []float64{math.Pi, 0}}, 2)
		require.NoError(t, err)
		assert.InDelta(t, 2., f(x), 1.e-15)
	}
	_, err := NewFunction(FunctionSpec{Type: "bessel"}, 1)
	assert.True(t, errors.Is(err, ErrUnknownFunction))
}

func TestProject(t *testing.T) {
	{ // A constant only excites the 0th mode
		mf, err := Project(func([]float64) float64 { return 2 }, []float64{0, 0}, []float64{1, 1},
			[]int{2, 3}, 2, Serendipity)
		require.NoError(t, err)
		Nb := NumBasisFuncs(Serendipity, 2, 2)
		require.Equal(t, 6*Nb, len(mf.Values))
		for k := 0; k < 6; k++ {
			assert.InDelta(t, 2*2, mf.Values[k*Nb], 1.e-13) // 2 / phi_0 with phi_0 = 1/2
			for i := 1; i < Nb; i++ {
				assert.InDelta(t, 0, mf.Values[k*Nb+i], 1.e-13)
			}
		}
		p := *mf.PolyOrder
		assert.Equal(t, 2, p)
	}
	{ // Invalid requests
		f := func([]float64) float64 { return 1 }
		_, err := Project(f, nil, nil, []int{}, 1, Serendipity)
		assert.True(t, errors.Is(err, ErrUnsupportedDimension))
		_, err = Project(f, []float64{0}, []float64{1}, []int{2}, 9, Serendipity)
		assert.True(t, errors.Is(err, ErrUnsupportedOrder))
		_, err = Project(f, []float64{0}, []float64{1, 2}, []int{2}, 1, Serendipity)
		assert.True(t, errors.Is(err, ErrShapeMismatch))
		_, err = Project(f, []float64{0}, []float64{1}, []int{0}, 1, Serendipity)
		assert.True(t, errors.Is(err, ErrShapeMismatch))
	}
}
