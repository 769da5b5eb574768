package modalDG

// MultiIndex is an odometer over the Cartesian product [0,Dims[0]) x ... x
// [0,Dims[n-1]), last axis fastest (row-major order).
type MultiIndex struct {
	Dims []int
	Idx  []int
}

func NewMultiIndex(dims []int) (mi *MultiIndex) {
	mi = &MultiIndex{
		Dims: dims,
		Idx:  make([]int, len(dims)),
	}
	return
}

// Size is the number of elements in the product
func (mi *MultiIndex) Size() (n int) {
	n = 1
	for _, d := range mi.Dims {
		n *= d
	}
	return
}

// Set positions the odometer at the row-major flat index
func (mi *MultiIndex) Set(flat int) {
	for d := len(mi.Dims) - 1; d >= 0; d-- {
		mi.Idx[d] = flat % mi.Dims[d]
		flat /= mi.Dims[d]
	}
}

// Next advances the odometer, returning false after wrapping past the last element
func (mi *MultiIndex) Next() bool {
	for d := len(mi.Dims) - 1; d >= 0; d-- {
		mi.Idx[d]++
		if mi.Idx[d] < mi.Dims[d] {
			return true
		}
		mi.Idx[d] = 0
	}
	return false
}

// Strides returns the row-major strides for dims
func Strides(dims []int) (s []int) {
	s = make([]int, len(dims))
	stride := 1
	for d := len(dims) - 1; d >= 0; d-- {
		s[d] = stride
		stride *= dims[d]
	}
	return
}
