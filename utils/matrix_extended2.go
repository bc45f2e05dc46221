package utils

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// SingularValues returns the extreme singular values of m.
func (m Matrix) SingularValues() (min, max float64) {
	var svd mat.SVD
	if !svd.Factorize(m.M, mat.SVDNone) {
		return 0, math.Inf(1)
	}
	values := svd.Values(nil) // Descending
	if len(values) == 0 {
		return 0, math.Inf(1)
	}
	return values[len(values)-1], values[0]
}

// ConditionNumber is the 2-norm condition number, +Inf for a singular matrix.
func (m Matrix) ConditionNumber() float64 {
	min, max := m.SingularValues()
	if min < 1e-16*max || min == 0 {
		return math.Inf(1)
	}
	return max / min
}
