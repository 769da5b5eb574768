package modalDG

import (
	"fmt"
	"sort"
	"strings"
)

type BasisType uint8

const (
	Serendipity BasisType = iota
	MaximalOrder
	Tensor
	numBasisTypes
)

var basisLabels = map[string]BasisType{
	"ser":           Serendipity,
	"serendipity":   Serendipity,
	"max":           MaximalOrder,
	"maximal-order": MaximalOrder,
	"maximalorder":  MaximalOrder,
	"tensor":        Tensor,
}

func NewBasisType(label string) (bt BasisType, err error) {
	var (
		ok bool
	)
	if len(label) == 0 {
		return Serendipity, nil
	}
	if bt, ok = basisLabels[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("%w: %q", ErrUnknownBasis, label)
	}
	return
}

func (bt BasisType) Valid() bool { return bt < numBasisTypes }

func (bt BasisType) String() string {
	switch bt {
	case Serendipity:
		return "serendipity"
	case MaximalOrder:
		return "maximal-order"
	case Tensor:
		return "tensor"
	default:
		return fmt.Sprintf("BasisType(%d)", uint8(bt))
	}
}

// Mode holds the per-axis Legendre degree of one tensor-product basis function
type Mode []int

func (m Mode) Degree() (deg int) {
	for _, k := range m {
		deg += k
	}
	return
}

// SuperLinearDegree counts only the axis degrees of two or more
func (m Mode) SuperLinearDegree() (deg int) {
	for _, k := range m {
		if k >= 2 {
			deg += k
		}
	}
	return
}

func (bt BasisType) admits(m Mode, order int) bool {
	switch bt {
	case Serendipity:
		return m.SuperLinearDegree() <= order
	case MaximalOrder:
		return m.Degree() <= order
	case Tensor:
		return true
	default:
		panic("unknown basis type")
	}
}

// Modes enumerates the basis functions of the family for (order, numDims),
// ordered by total degree, ties broken with the earlier axis carrying the higher
// degree. Mode 0 is always the constant.
func Modes(bt BasisType, order, numDims int) (modes []Mode) {
	if order < 0 || numDims < 1 {
		return
	}
	dims := make([]int, numDims)
	for d := range dims {
		dims[d] = order + 1
	}
	mi := NewMultiIndex(dims)
	for {
		m := Mode(append([]int{}, mi.Idx...))
		if bt.admits(m, order) {
			modes = append(modes, m)
		}
		if !mi.Next() {
			break
		}
	}
	sort.SliceStable(modes, func(i, j int) bool {
		di, dj := modes[i].Degree(), modes[j].Degree()
		if di != dj {
			return di < dj
		}
		for d := range modes[i] {
			if modes[i][d] != modes[j][d] {
				return modes[i][d] > modes[j][d]
			}
		}
		return false
	})
	return
}

// NumBasisFuncs is the number of modal coefficients per cell
func NumBasisFuncs(bt BasisType, order, numDims int) int {
	return len(Modes(bt, order, numDims))
}
