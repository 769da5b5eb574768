package modalDG

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// LegendreN fills p[0:len(p)] with the orthonormal Legendre polynomials
// sqrt((2k+1)/2)*P_k evaluated at x. This is JacobiP at alpha = beta = 0.
func LegendreN(x float64, p []float64) {
	var (
		N = len(p)
	)
	if N == 0 {
		return
	}
	p[0] = 1. / math.Sqrt2
	if N == 1 {
		return
	}
	p[1] = math.Sqrt(1.5) * x
	aold := legendreA(1)
	for n := 1; n < N-1; n++ {
		anew := legendreA(n + 1)
		p[n+1] = (x*p[n] - aold*p[n-1]) / anew
		aold = anew
	}
}

// Off diagonal of the symmetric Jacobi matrix for the orthonormal Legendre family
func legendreA(n int) float64 {
	fn := float64(n)
	return fn / math.Sqrt(4.*fn*fn-1.)
}

// GaussLegendre returns the N point Gauss-Legendre nodes and weights on [-1,1],
// computed from the eigensystem of the symmetric tridiagonal Jacobi matrix
func GaussLegendre(N int) (X, W []float64) {
	if N < 1 {
		panic("number of quadrature points must be positive")
	}
	if N == 1 {
		return []float64{0}, []float64{2}
	}
	JJ := mat.NewSymDense(N, nil)
	for i := 0; i < N-1; i++ {
		a := legendreA(i + 1)
		JJ.SetSym(i, i+1, a)
	}
	var eig mat.EigenSym
	if ok := eig.Factorize(JJ, true); !ok {
		panic("eigenvalue decomposition failed")
	}
	X = eig.Values(nil)
	VV := mat.NewDense(N, N, nil)
	eig.VectorsTo(VV)
	W = make([]float64, N)
	v0 := VV.RawRowView(0)
	for i := range W {
		W[i] = 2. * v0[i] * v0[i]
	}
	return
}
