package modalDG

import (
	"fmt"
	"math"
	"strings"
)

// Function is an analytic field over physical coordinates
type Function func(x []float64) float64

// FunctionSpec selects and parameterizes one of the built-in analytic functions:
//
//	constant: Amplitude
//	linear:   Offset + sum_d Slope[d]*x[d]
//	gaussian: Offset + Amplitude*exp(-|x-Center|^2/(2*Width^2))
//	sine:     Offset + Amplitude*sin(sum_d WaveNumber[d]*x[d])
type FunctionSpec struct {
	Type       string    `json:"Type"`
	Amplitude  float64   `json:"Amplitude"`
	Offset     float64   `json:"Offset"`
	Width      float64   `json:"Width"`
	Slope      []float64 `json:"Slope"`
	Center     []float64 `json:"Center"`
	WaveNumber []float64 `json:"WaveNumber"`
}

func NewFunction(fs FunctionSpec, numDims int) (f Function, err error) {
	pad := func(v []float64) (p []float64) {
		p = make([]float64, numDims)
		copy(p, v)
		return
	}
	switch strings.ToLower(fs.Type) {
	case "constant":
		A := fs.Amplitude
		f = func(x []float64) float64 { return A }
	case "linear":
		a0, slope := fs.Offset, pad(fs.Slope)
		f = func(x []float64) (val float64) {
			val = a0
			for d, s := range slope {
				val += s * x[d]
			}
			return
		}
	case "gaussian":
		if fs.Width <= 0 {
			return nil, fmt.Errorf("gaussian width must be positive, have %v", fs.Width)
		}
		A, a0, center := fs.Amplitude, fs.Offset, pad(fs.Center)
		w2 := 2 * fs.Width * fs.Width
		f = func(x []float64) float64 {
			var r2 float64
			for d, c := range center {
				r2 += (x[d] - c) * (x[d] - c)
			}
			return a0 + A*math.Exp(-r2/w2)
		}
	case "sine":
		A, a0, k := fs.Amplitude, fs.Offset, pad(fs.WaveNumber)
		f = func(x []float64) float64 {
			var arg float64
			for d, kd := range k {
				arg += kd * x[d]
			}
			return a0 + A*math.Sin(arg)
		}
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownFunction, fs.Type)
	}
	return
}
