package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCSRFromDense(t *testing.T) {
	A := NewMatrix(3, 3, []float64{
		0, 0, 1,
		0, 1.e-15, 0,
		2, 0, 0,
	})
	csr := NewCSRFromDense(A, 1.e-12)
	assert.Equal(t, 2, csr.NNZ())
	assert.Equal(t, 2., csr.At(2, 0))
	assert.Equal(t, 0., csr.At(1, 1))

	x := []float64{1, 2, 3}
	assert.Equal(t, []float64{3, 0, 2}, csr.MulVec(x, false))
	assert.Equal(t, []float64{6, 0, 1}, csr.MulVec(x, true))
	assert.Panics(t, func() { csr.MulVec([]float64{1}, false) })
}
