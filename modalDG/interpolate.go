package modalDG

import (
	"fmt"
	"runtime"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/pgkyl/utils"
)

// ModalField holds per-cell expansion coefficients. Values is row-major over
// NumCells with a trailing coefficient axis of NumBasisFuncs(Basis, order, NumDims()).
type ModalField struct {
	NumCells     []int
	Lower, Upper []float64
	PolyOrder    *int // nil when the producer did not record it
	Basis        BasisType
	Values       []float64
}

func (mf *ModalField) NumDims() int { return len(mf.NumCells) }

func (mf *ModalField) TotalCells() (n int) {
	n = 1
	for _, nc := range mf.NumCells {
		n *= nc
	}
	return
}

// NodalField is a dense row-major array, one axis of NumCells[d]*len(nodes)
// points per dimension plus a trailing singleton component axis
type NodalField struct {
	Shape []int
	Data  []float64
}

func (nf *NodalField) At(idx ...int) (val float64) {
	var (
		strides = Strides(nf.Shape)
		ind     int
	)
	for d, i := range idx {
		ind += i * strides[d]
	}
	return nf.Data[ind]
}

// Params are the optional inputs of an interpolation. Empty Nodes selects the
// default cell-centered nodes and an empty Grid selects the uniform sub-cell grid.
type Params struct {
	PolyOrder *int
	Nodes     []float64
	Grid      [][]float64
}

// Order is a convenience for filling the optional order fields
func Order(p int) *int { return &p }

type Interpolator struct {
	Table          *KernelTable
	ParallelDegree int // <= 0 selects runtime.NumCPU()
}

func NewInterpolator(kt *KernelTable, parallelDegree int) *Interpolator {
	return &Interpolator{
		Table:          kt,
		ParallelDegree: parallelDegree,
	}
}

// Interpolate uses the shared kernel table of the field's basis family
func Interpolate(mf *ModalField, p Params) (grid [][]float64, nf *NodalField, err error) {
	if mf.Basis >= numBasisTypes {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnknownBasis, mf.Basis)
	}
	return NewInterpolator(DefaultKernelTable(mf.Basis), 0).Interpolate(mf, p)
}

// Interpolate samples the modal expansion of every cell at the tensor product
// of the reference nodes. The outer loop runs over the len(nodes)^numDims node
// combinations; each combination evaluates the basis once and then every cell
// at once with a single matrix-vector product.
func (ip *Interpolator) Interpolate(mf *ModalField, p Params) (grid [][]float64, nf *NodalField, err error) {
	var (
		NDim   = mf.NumDims()
		order  int
		kernel *Kernel
		nodes  []float64
	)
	switch {
	case p.PolyOrder != nil:
		order = *p.PolyOrder
	case mf.PolyOrder != nil:
		order = *mf.PolyOrder
	default:
		return nil, nil, ErrMissingPolyOrder
	}
	if err = checkDims(NDim); err != nil {
		return nil, nil, err
	}
	if kernel, err = ip.Table.Get(NDim, order); err != nil {
		return nil, nil, err
	}
	if len(mf.Lower) != NDim || len(mf.Upper) != NDim {
		return nil, nil, fmt.Errorf("%w: %d cell counts with %d lower and %d upper bounds",
			ErrShapeMismatch, NDim, len(mf.Lower), len(mf.Upper))
	}
	for d, nc := range mf.NumCells {
		if nc < 1 {
			return nil, nil, fmt.Errorf("%w: %d cells along axis %d", ErrShapeMismatch, nc, d)
		}
	}
	if expected := mf.TotalCells() * kernel.NumBasis; len(mf.Values) != expected {
		return nil, nil, fmt.Errorf("%w: %d values, expected %d cells x %d coefficients",
			ErrShapeMismatch, len(mf.Values), mf.TotalCells(), kernel.NumBasis)
	}
	if len(p.Grid) != 0 && len(p.Grid) != NDim {
		return nil, nil, fmt.Errorf("%w: grid has %d axes, data has %d",
			ErrGridDimensionMismatch, len(p.Grid), NDim)
	}

	if len(p.Nodes) == 0 {
		nodes = ReferenceNodes(order)
	} else {
		nodes = append([]float64{}, p.Nodes...)
	}
	if len(p.Grid) == 0 {
		grid = PhysicalGrid(mf.Lower, mf.Upper, mf.NumCells, len(nodes))
	} else {
		grid = p.Grid
	}
	nf = ip.evaluate(mf, kernel, nodes)
	return
}

func (ip *Interpolator) evaluate(mf *ModalField, kernel *Kernel, nodes []float64) (nf *NodalField) {
	var (
		NDim       = mf.NumDims()
		Nn         = len(nodes)
		K          = mf.TotalCells()
		Nb         = kernel.NumBasis
		outDims    = make([]int, NDim)
		nodeDims   = make([]int, NDim)
		cellBase   = make([]int, K)
		NPar       = ip.ParallelDegree
		coeffs     *mat.Dense
		outStrides []int
	)
	for d, nc := range mf.NumCells {
		outDims[d] = nc * Nn
		nodeDims[d] = Nn
	}
	outStrides = Strides(outDims)
	nf = &NodalField{
		Shape: append(append([]int{}, outDims...), 1),
		Data:  make([]float64, K*ipow(Nn, NDim)),
	}

	// Output offset of every cell's first sub-cell
	cells := NewMultiIndex(mf.NumCells)
	for k := 0; k < K; k++ {
		for d, c := range cells.Idx {
			cellBase[k] += c * Nn * outStrides[d]
		}
		cells.Next()
	}

	if kernel.Modes != nil {
		coeffs = mat.NewDense(K, Nb, mf.Values)
	}
	if NPar <= 0 {
		NPar = runtime.NumCPU()
	}
	pm := utils.NewPartitionMap(NPar, ipow(Nn, NDim))
	pm.ParallelFor(func(_, cMin, cMax int) {
		var (
			combo  = NewMultiIndex(nodeDims)
			x      = make([]float64, NDim)
			phi    = make([]float64, Nb)
			result = make([]float64, K)
			phiV   = mat.NewVecDense(Nb, phi)
			resV   = mat.NewVecDense(K, result)
		)
		combo.Set(cMin)
		for c := cMin; c < cMax; c++ {
			var offset int
			for d, i := range combo.Idx {
				x[d] = nodes[i]
				offset += i * outStrides[d]
			}
			if coeffs != nil {
				kernel.BasisAt(x, phi)
				resV.MulVec(coeffs, phiV)
			} else {
				for k := 0; k < K; k++ {
					result[k] = kernel.Eval(mf.Values[k*Nb:(k+1)*Nb], x...)
				}
			}
			for k, val := range result {
				nf.Data[cellBase[k]+offset] = val
			}
			combo.Next()
		}
	})
	return
}

func ipow(base, exp int) (r int) {
	r = 1
	for i := 0; i < exp; i++ {
		r *= base
	}
	return
}
