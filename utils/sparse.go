package utils

import (
	"fmt"
	"math"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

type DOK struct {
	M        *sparse.DOK
	readOnly bool
	name     string
}

func NewDOK(nr, nc int) (R DOK) {
	R = DOK{
		sparse.NewDOK(nr, nc),
		false,
		"unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m DOK) Dims() (r, c int)    { return m.M.Dims() }
func (m DOK) At(i, j int) float64 { return m.M.At(i, j) }
func (m DOK) T() mat.Matrix       { return m.M.T() }

func (m DOK) Set(i, j int, val float64) DOK { // Changes receiver
	m.checkWritable()
	m.M.Set(i, j, val)
	return m
}

func (m DOK) checkWritable() {
	if m.readOnly {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name)
		panic(err)
	}
}

func (m DOK) ToCSR() CSR {
	return CSR{
		M:    m.M.ToCSR(),
		name: m.name,
	}
}

// CSR is a compressed sparse row matrix. It is built once and read many
// times.
type CSR struct {
	M    *sparse.CSR
	name string
}

// NewCSRFromDense drops every entry of A with magnitude at or below tol and
// compresses the rest.
func NewCSRFromDense(A Matrix, tol float64) (R CSR) {
	var (
		nr, nc = A.Dims()
		dok    = NewDOK(nr, nc)
	)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			if val := A.At(i, j); math.Abs(val) > tol {
				dok.Set(i, j, val)
			}
		}
	}
	dok.name = A.name
	return dok.ToCSR()
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m CSR) Dims() (r, c int)    { return m.M.Dims() }
func (m CSR) At(i, j int) float64 { return m.M.At(i, j) }
func (m CSR) T() mat.Matrix       { return m.M.T() }
func (m CSR) NNZ() int            { return m.M.NNZ() }

// MulVec returns m·x, or mᵀ·x when trans is set.
func (m CSR) MulVec(x []float64, trans bool) (y []float64) {
	var (
		nr, nc = m.Dims()
	)
	if trans {
		nr, nc = nc, nr
	}
	if len(x) != nc {
		panic(fmt.Errorf("dimension mismatch: matrix is %dx%d, len(x) = %d", nr, nc, len(x)))
	}
	y = make([]float64, nr)
	m.M.DoNonZero(func(i, j int, v float64) {
		if trans {
			y[j] += v * x[i]
		} else {
			y[i] += v * x[j]
		}
	})
	return
}
