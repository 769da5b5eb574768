package modalDG

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Project computes the modal coefficients of f on every cell by L2 projection
// onto the orthonormal basis, using order+2 Gauss-Legendre points per axis.
// Polynomials inside the span of the basis are reproduced exactly.
func Project(f Function, lower, upper []float64, numCells []int, polyOrder int,
	bt BasisType) (mf *ModalField, err error) {
	var (
		NDim   = len(numCells)
		kernel *Kernel
	)
	if err = checkDims(NDim); err != nil {
		return
	}
	if len(lower) != NDim || len(upper) != NDim {
		return nil, fmt.Errorf("%w: %d cell counts with %d lower and %d upper bounds",
			ErrShapeMismatch, NDim, len(lower), len(upper))
	}
	if bt >= numBasisTypes {
		return nil, fmt.Errorf("%w: %v", ErrUnknownBasis, bt)
	}
	if kernel, err = DefaultKernelTable(bt).Get(NDim, polyOrder); err != nil {
		return
	}
	var (
		Nb       = kernel.NumBasis
		Nq1      = polyOrder + 2
		r, w     = GaussLegendre(Nq1)
		qDims    = make([]int, NDim)
		dx       = make([]float64, NDim)
		xq       = make([]float64, NDim)
		xphys    = make([]float64, NDim)
		fw       []float64
		Nq       int
		PhiT     *mat.Dense // Nb x Nq, basis at the quadrature points
		quadWts  []float64
		quadPts  [][]float64
		cellCoef = mat.NewVecDense(Nb, nil)
	)
	for d := range qDims {
		qDims[d] = Nq1
		if numCells[d] < 1 {
			return nil, fmt.Errorf("%w: %d cells along axis %d", ErrShapeMismatch, numCells[d], d)
		}
		dx[d] = (upper[d] - lower[d]) / float64(numCells[d])
	}
	qi := NewMultiIndex(qDims)
	Nq = qi.Size()
	PhiT = mat.NewDense(Nb, Nq, nil)
	quadWts = make([]float64, Nq)
	quadPts = make([][]float64, Nq)
	phi := make([]float64, Nb)
	for q := 0; q < Nq; q++ {
		quadWts[q] = 1
		for d, i := range qi.Idx {
			xq[d] = r[i]
			quadWts[q] *= w[i]
		}
		quadPts[q] = append([]float64{}, xq...)
		kernel.BasisAt(xq, phi)
		PhiT.SetCol(q, phi)
		qi.Next()
	}

	mf = &ModalField{
		NumCells:  append([]int{}, numCells...),
		Lower:     append([]float64{}, lower...),
		Upper:     append([]float64{}, upper...),
		PolyOrder: Order(polyOrder),
		Basis:     bt,
	}
	K := mf.TotalCells()
	mf.Values = make([]float64, K*Nb)
	fw = make([]float64, Nq)
	fwV := mat.NewVecDense(Nq, fw)
	cells := NewMultiIndex(mf.NumCells)
	for k := 0; k < K; k++ {
		for q, xi := range quadPts {
			for d, c := range cells.Idx {
				xphys[d] = lower[d] + (float64(c)+0.5*(xi[d]+1))*dx[d]
			}
			fw[q] = quadWts[q] * f(xphys)
		}
		cellCoef.MulVec(PhiT, fwV)
		copy(mf.Values[k*Nb:(k+1)*Nb], cellCoef.RawVector().Data)
		cells.Next()
	}
	return
}
