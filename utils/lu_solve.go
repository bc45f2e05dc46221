package utils

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/lapack"
	"gonum.org/v1/gonum/lapack/lapack64"
)

// RCondTol is the smallest reciprocal condition number (1-norm) accepted by
// Solve before the system is reported as numerically singular.
const RCondTol = 1.e-13

// SingularError reports a failed factorization. Info follows the LAPACK
// GETRF convention: Info = i > 0 means U(i-1,i-1) is exactly zero. Info = 0
// with a small RCond means the factorization completed but the matrix is
// numerically degenerate.
type SingularError struct {
	Info  int
	RCond float64
}

func (e *SingularError) Error() string {
	if e.Info > 0 {
		return fmt.Sprintf("matrix is singular: zero pivot, info = %d", e.Info)
	}
	return fmt.Sprintf("matrix is numerically singular: rcond = %8.3e", e.RCond)
}

// factorLU computes the LU factorization with partial pivoting of a copy of
// m and checks the reciprocal condition number of the result.
func (m Matrix) factorLU() (LU Matrix, iPiv []int, err error) {
	var (
		nr, nc = m.Dims()
	)
	if nr != nc {
		err = fmt.Errorf("LU factorization requires a square matrix, have %dx%d", nr, nc)
		return
	}
	LU = m.Copy()
	iPiv = make([]int, nr)
	work := make([]float64, 4*nr)
	anorm := lapack64.Lange(lapack.MaxColumnSum, m.RawMatrix(), work)
	if ok := lapack64.Getrf(LU.RawMatrix(), iPiv); !ok {
		err = &SingularError{Info: firstZeroPivot(LU)}
		return
	}
	rcond := lapack64.Gecon(lapack.MaxColumnSum, LU.RawMatrix(), anorm, work, make([]int, nr))
	if rcond < RCondTol {
		err = &SingularError{RCond: rcond}
	}
	return
}

func firstZeroPivot(LU Matrix) int {
	nr, _ := LU.Dims()
	for i := 0; i < nr; i++ {
		if LU.M.At(i, i) == 0 {
			return i + 1
		}
	}
	return nr
}

// Solve returns X such that m·X = B using Gaussian elimination with partial
// pivoting. Neither m nor B is modified.
func (m Matrix) Solve(B Matrix) (X Matrix, err error) {
	var (
		nr, _  = m.Dims()
		nrB, _ = B.Dims()
		LU     Matrix
		iPiv   []int
	)
	if nrB != nr {
		err = fmt.Errorf("dimension mismatch: A is %dx%d, B has %d rows", nr, nr, nrB)
		return
	}
	if LU, iPiv, err = m.factorLU(); err != nil {
		return
	}
	X = B.Copy()
	lapack64.Getrs(blas.NoTrans, LU.RawMatrix(), X.RawMatrix(), iPiv)
	return
}

func (m Matrix) Inverse() (R Matrix, err error) {
	var (
		nr, _ = m.Dims()
		iPiv  []int
	)
	if R, iPiv, err = m.factorLU(); err != nil {
		return
	}
	work := make([]float64, nr*nr)
	if ok := lapack64.Getri(R.RawMatrix(), iPiv, work, nr*nr); !ok {
		err = &SingularError{Info: firstZeroPivot(R)}
	}
	return
}
