package modalDG

import (
	"fmt"
	"sort"
	"sync"
)

const (
	MinNumDims          = 1
	MaxNumDims          = 6
	DefaultMaxPolyOrder = 3
)

// KernelFunc evaluates the modal expansion of one cell at a reference point
// in [-1,1]^numDims
type KernelFunc func(coeffs []float64, x ...float64) float64

type KernelKey struct {
	NumDims, PolyOrder int
}

type Kernel struct {
	NumDims, PolyOrder int
	NumBasis           int
	Modes              []Mode // nil for opaque kernels, which are evaluated cell by cell
	Eval               KernelFunc
	maxDeg             int
}

// NewKernel generates the kernel of an orthonormal Legendre product basis
func NewKernel(numDims, polyOrder int, modes []Mode) (k *Kernel) {
	k = &Kernel{
		NumDims:   numDims,
		PolyOrder: polyOrder,
		NumBasis:  len(modes),
		Modes:     modes,
	}
	for _, m := range modes {
		for _, deg := range m {
			k.maxDeg = max(k.maxDeg, deg)
		}
	}
	k.Eval = func(coeffs []float64, x ...float64) (val float64) {
		phi := make([]float64, k.NumBasis)
		k.BasisAt(x, phi)
		for i, c := range coeffs[:k.NumBasis] {
			val += c * phi[i]
		}
		return
	}
	return
}

// BasisAt fills phi with every basis function evaluated at the reference point x
func (k *Kernel) BasisAt(x []float64, phi []float64) {
	var (
		Nd  = k.maxDeg + 1
		leg = make([]float64, k.NumDims*Nd)
	)
	if k.Modes == nil {
		panic("basis evaluation requested from an opaque kernel")
	}
	for d := 0; d < k.NumDims; d++ {
		LegendreN(x[d], leg[d*Nd:(d+1)*Nd])
	}
	for i, m := range k.Modes {
		val := 1.
		for d, deg := range m {
			val *= leg[d*Nd+deg]
		}
		phi[i] = val
	}
}

type KernelTable struct {
	Basis   BasisType
	kernels map[KernelKey]*Kernel
}

// NewKernelTable generates kernels for dimensions 1 through 6 and orders 1
// through maxOrder of the basis family
func NewKernelTable(bt BasisType, maxOrder int) (kt *KernelTable, err error) {
	if bt >= numBasisTypes {
		return nil, fmt.Errorf("%w: %v", ErrUnknownBasis, bt)
	}
	kt = &KernelTable{
		Basis:   bt,
		kernels: make(map[KernelKey]*Kernel),
	}
	for nd := MinNumDims; nd <= MaxNumDims; nd++ {
		for p := 1; p <= maxOrder; p++ {
			if err = kt.Register(NewKernel(nd, p, Modes(bt, p, nd))); err != nil {
				return nil, err
			}
		}
	}
	return
}

// Register adds or replaces the kernel for (k.NumDims, k.PolyOrder)
func (kt *KernelTable) Register(k *Kernel) (err error) {
	if err = checkDims(k.NumDims); err != nil {
		return
	}
	if k.PolyOrder < 0 {
		return fmt.Errorf("%w: %d", ErrUnsupportedOrder, k.PolyOrder)
	}
	if k.Eval == nil {
		return fmt.Errorf("kernel (%dD, order %d) has no evaluation function", k.NumDims, k.PolyOrder)
	}
	if k.NumBasis < 1 {
		return fmt.Errorf("kernel (%dD, order %d) has no basis functions", k.NumDims, k.PolyOrder)
	}
	if k.Modes != nil {
		if len(k.Modes) != k.NumBasis {
			return fmt.Errorf("kernel (%dD, order %d) has %d modes for %d basis functions",
				k.NumDims, k.PolyOrder, len(k.Modes), k.NumBasis)
		}
		for _, m := range k.Modes {
			if len(m) != k.NumDims {
				return fmt.Errorf("kernel (%dD, order %d) has a mode of arity %d",
					k.NumDims, k.PolyOrder, len(m))
			}
			for _, deg := range m {
				k.maxDeg = max(k.maxDeg, deg)
			}
		}
	}
	kt.kernels[KernelKey{k.NumDims, k.PolyOrder}] = k
	return
}

func (kt *KernelTable) Get(numDims, polyOrder int) (k *Kernel, err error) {
	var (
		ok bool
	)
	if err = checkDims(numDims); err != nil {
		return
	}
	if k, ok = kt.kernels[KernelKey{numDims, polyOrder}]; !ok {
		err = fmt.Errorf("%w: no %v kernel for order %d in %dD",
			ErrUnsupportedOrder, kt.Basis, polyOrder, numDims)
	}
	return
}

// Keys lists the registered (dimension, order) pairs
func (kt *KernelTable) Keys() (keys []KernelKey) {
	for key := range kt.kernels {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].NumDims != keys[j].NumDims {
			return keys[i].NumDims < keys[j].NumDims
		}
		return keys[i].PolyOrder < keys[j].PolyOrder
	})
	return
}

func checkDims(numDims int) error {
	if numDims < MinNumDims || numDims > MaxNumDims {
		return fmt.Errorf("%w: %d (supported range is [%d,%d])",
			ErrUnsupportedDimension, numDims, MinNumDims, MaxNumDims)
	}
	return nil
}

var defaultTables [numBasisTypes]struct {
	once sync.Once
	kt   *KernelTable
}

// DefaultKernelTable is the shared, read-only table of a basis family
func DefaultKernelTable(bt BasisType) (kt *KernelTable) {
	if bt >= numBasisTypes {
		panic(fmt.Sprintf("unknown basis type %d", bt))
	}
	dt := &defaultTables[bt]
	dt.once.Do(func() {
		var err error
		if dt.kt, err = NewKernelTable(bt, DefaultMaxPolyOrder); err != nil {
			panic(err)
		}
	})
	return dt.kt
}
