package utils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

func (m Matrix) Copy() (R Matrix) { // Does not change receiver
	var (
		nr, nc = m.Dims()
		dataR  = make([]float64, nr*nc)
		raw    = m.RawMatrix()
	)
	for i := 0; i < nr; i++ {
		copy(dataR[i*nc:(i+1)*nc], raw.Data[i*raw.Stride:i*raw.Stride+nc])
	}
	R = NewMatrix(nr, nc, dataR)
	return
}

func (m Matrix) Transpose() (R Matrix) { // Does not change receiver
	var (
		nr, nc = m.Dims()
	)
	R = NewMatrix(nc, nr)
	R.M.Copy(m.T())
	return
}

func (m Matrix) Mul(A Matrix) (R Matrix) { // Does not change receiver
	var (
		nrM, _ = m.M.Dims()
		_, ncA = A.M.Dims()
	)
	R = NewMatrix(nrM, ncA)
	R.M.Mul(m.M, A.M)
	return R
}

// Slice returns a copy of rows [I,K) and columns [J,L).
func (m Matrix) Slice(I, K, J, L int) (R Matrix) { // Does not change receiver
	var (
		nrR = K - I
		ncR = L - J
	)
	R = NewMatrix(nrR, ncR)
	dataR := R.Data()
	for i := I; i < K; i++ {
		for j := J; j < L; j++ {
			dataR[(i-I)*ncR+(j-J)] = m.M.At(i, j)
		}
	}
	return
}

func (m Matrix) Row(i int) []float64 {
	var (
		nr, nc = m.Dims()
		row    = make([]float64, nc)
	)
	copy(row, m.M.RawRowView(lim(i, nr)))
	return row
}

func (m Matrix) Col(j int) []float64 {
	var (
		nr, nc = m.Dims()
		col    = make([]float64, nr)
	)
	j = lim(j, nc)
	for i := range col {
		col[i] = m.M.At(i, j)
	}
	return col
}

func (m Matrix) Set(i, j int, val float64) Matrix { // Changes receiver
	m.checkWritable()
	m.M.Set(i, j, val)
	return m
}

func (m Matrix) SetRow(i int, data []float64) Matrix { // Changes receiver
	m.checkWritable()
	m.M.SetRow(i, data)
	return m
}

func (m Matrix) SetCol(j int, data []float64) Matrix { // Changes receiver
	m.checkWritable()
	m.M.SetCol(j, data)
	return m
}

// Assign copies A into the block of the receiver starting at (i0, j0).
func (m Matrix) Assign(i0, j0 int, A Matrix) Matrix { // Changes receiver
	var (
		nr, nc   = m.Dims()
		nrA, ncA = A.Dims()
	)
	m.checkWritable()
	if i0+nrA > nr || j0+ncA > nc {
		panic(fmt.Errorf("block %dx%d at (%d,%d) does not fit in %dx%d matrix", nrA, ncA, i0, j0, nr, nc))
	}
	for i := 0; i < nrA; i++ {
		for j := 0; j < ncA; j++ {
			m.M.Set(i0+i, j0+j, A.M.At(i, j))
		}
	}
	return m
}

// MaxAbsDiff returns max |m(i,j) - A(i,j)|, or +Inf if the shapes differ.
func (m Matrix) MaxAbsDiff(A Matrix) (diff float64) {
	var (
		nr, nc   = m.Dims()
		nrA, ncA = A.Dims()
	)
	if nr != nrA || nc != ncA {
		return math.Inf(1)
	}
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			diff = math.Max(diff, math.Abs(m.M.At(i, j)-A.M.At(i, j)))
		}
	}
	return
}

func lim(i, imax int) int {
	if i < 0 {
		return imax + i // Support indexing from end, -1 is imax
	}
	return i
}

// View returns rows [I,K) and columns [J,L) sharing storage with the
// receiver, so writes through the view land in the receiver.
func (m Matrix) View(I, K, J, L int) (R Matrix) {
	R = Matrix{
		M:        m.M.Slice(I, K, J, L).(*mat.Dense),
		readOnly: m.readOnly,
		name:     m.name,
	}
	return
}
