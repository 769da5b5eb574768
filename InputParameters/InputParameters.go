package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"

	"github.com/notargets/pgkyl/modalDG"
)

// Parameters of a projection run obtained from the YAML input file
type ProjectParameters struct {
	Title           string               `json:"Title"`
	NumCells        []int                `json:"NumCells"`
	Lower           []float64            `json:"Lower"`
	Upper           []float64            `json:"Upper"`
	PolynomialOrder int                  `json:"PolynomialOrder"`
	Basis           string               `json:"Basis"`
	Time            float64              `json:"Time"`
	Function        modalDG.FunctionSpec `json:"Function"`
}

func (ip *ProjectParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

// Validate checks what can be checked before the projection runs
func (ip *ProjectParameters) Validate() (err error) {
	var (
		NDim = len(ip.NumCells)
	)
	if NDim < modalDG.MinNumDims || NDim > modalDG.MaxNumDims {
		return fmt.Errorf("%w: NumCells has %d entries", modalDG.ErrUnsupportedDimension, NDim)
	}
	if len(ip.Lower) != NDim || len(ip.Upper) != NDim {
		return fmt.Errorf("%w: %d cell counts with %d lower and %d upper bounds",
			modalDG.ErrShapeMismatch, NDim, len(ip.Lower), len(ip.Upper))
	}
	for d := 0; d < NDim; d++ {
		if ip.Upper[d] <= ip.Lower[d] {
			return fmt.Errorf("upper bound %v is not above lower bound %v on axis %d",
				ip.Upper[d], ip.Lower[d], d)
		}
	}
	if _, err = modalDG.NewBasisType(ip.Basis); err != nil {
		return
	}
	_, err = modalDG.NewFunction(ip.Function, NDim)
	return
}

func (ip *ProjectParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("%v\t\t\t= NumCells\n", ip.NumCells)
	fmt.Printf("%v\t\t\t= Lower\n", ip.Lower)
	fmt.Printf("%v\t\t\t= Upper\n", ip.Upper)
	fmt.Printf("[%d]\t\t\t\t= Polynomial Order\n", ip.PolynomialOrder)
	fmt.Printf("[%s]\t\t\t= Basis\n", ip.Basis)
	fmt.Printf("%8.5f\t\t= Time\n", ip.Time)
	fmt.Printf("[%s]\t\t\t= Function\n", ip.Function.Type)
}
