// Package polynomials provides the orthonormal modal polynomials and the 1-D
// and 2-D node sets the nodal H(grad) bases are built from. Evaluation
// routines take coordinates as flat slices and return one value per point.
package polynomials

import (
	"fmt"
	"math"

	"github.com/notargets/feorient/utils"
	"gonum.org/v1/gonum/mat"
)

func gamma0(alpha, beta float64) float64 {
	ab1 := alpha + beta + 1.
	a1 := alpha + 1.
	b1 := beta + 1.
	return math.Gamma(a1) * math.Gamma(b1) * math.Pow(2, ab1) / ab1 / math.Gamma(ab1)
}

func gamma1(alpha, beta float64) float64 {
	ab := alpha + beta
	a1 := alpha + 1.
	b1 := beta + 1.
	return a1 * b1 * gamma0(alpha, beta) / (ab + 3.0)
}

// JacobiP evaluates the Jacobi polynomial of type (alpha, beta) > -1 and order
// N at r, normalized to be orthonormal on [-1,1] with weight
// (1-r)^alpha (1+r)^beta.
func JacobiP(r []float64, alpha, beta float64, N int) (p []float64) {
	var (
		Nc = len(r)
		rg = 1. / math.Sqrt(gamma0(alpha, beta))
	)
	p = utils.ConstArray(Nc, rg)
	if N == 0 {
		return
	}
	var (
		ab    = alpha + beta
		rg1   = 1. / math.Sqrt(gamma1(alpha, beta))
		pPrev = p
	)
	p = make([]float64, Nc)
	for i, x := range r {
		p[i] = rg1 * ((ab+2.0)*x/2.0 + (alpha-beta)/2.0)
	}
	if N == 1 {
		return
	}
	a1 := alpha + 1.
	b1 := beta + 1.
	ab1 := ab + 1.
	aold := 2.0 * math.Sqrt(a1*b1/(ab+3.0)) / (ab + 2.0)
	for i := 0; i < N-1; i++ {
		ip1 := float64(i + 1)
		ip2 := ip1 + 1
		h1 := 2.0*ip1 + ab
		anew := 2.0 / (h1 + 2.0) * math.Sqrt(ip2*(ip1+ab1)*(ip1+a1)*(ip1+b1)/(h1+1.0)/(h1+3.0))
		bnew := -(alpha*alpha - beta*beta) / h1 / (h1 + 2.0)
		pNext := make([]float64, Nc)
		for j, x := range r {
			pNext[j] = (-aold*pPrev[j] + (x-bnew)*p[j]) / anew
		}
		pPrev, p = p, pNext
		aold = anew
	}
	return
}

// GradJacobiP evaluates the r-derivative of JacobiP.
func GradJacobiP(r []float64, alpha, beta float64, N int) (p []float64) {
	if N == 0 {
		p = make([]float64, len(r))
		return
	}
	p = JacobiP(r, alpha+1, beta+1, N-1)
	fN := float64(N)
	fac := math.Sqrt(fN * (fN + alpha + beta + 1))
	for i, val := range p {
		p[i] = val * fac
	}
	return
}

// JacobiGQ computes the N+1 point Gauss quadrature for the Jacobi weight of
// type (alpha, beta) from the eigen decomposition of the Jacobi matrix.
func JacobiGQ(alpha, beta float64, N int) (X, W []float64) {
	if N < 0 {
		panic(fmt.Errorf("quadrature order must be non negative, have %d", N))
	}
	if N == 0 {
		return []float64{-(alpha - beta) / (alpha + beta + 2.)}, []float64{gamma0(alpha, beta)}
	}
	var (
		Np = N + 1
		h1 = make([]float64, Np)
		JJ = mat.NewSymDense(Np, nil)
	)
	for i := range h1 {
		h1[i] = 2*float64(i) + alpha + beta
	}
	// main diagonal: -(alpha^2-beta^2)./(h1+2)./h1
	fac := -(alpha*alpha - beta*beta)
	for i, val := range h1 {
		JJ.SetSym(i, i, fac/(val*(val+2.)))
	}
	if alpha+beta < 10*1.e-16 {
		JJ.SetSym(0, 0, 0)
	}
	for i := 0; i < N; i++ {
		ip1 := float64(i + 1)
		val := h1[i]
		d1 := 2. / (val + 2.) *
			math.Sqrt(ip1*(ip1+alpha+beta)*(ip1+alpha)*(ip1+beta)/((val+1.)*(val+3.)))
		JJ.SetSym(i, i+1, d1)
	}
	var eig mat.EigenSym
	if ok := eig.Factorize(JJ, true); !ok {
		panic("eigenvalue decomposition failed")
	}
	X = eig.Values(nil)
	var VV mat.Dense
	eig.VectorsTo(&VV)
	g0 := gamma0(alpha, beta)
	W = make([]float64, Np)
	for j := range W {
		v := VV.At(0, j)
		W[j] = v * v * g0
	}
	return
}

// JacobiGL returns the N+1 Gauss-Lobatto points of type (alpha, beta),
// the zeros of (1-r^2) P'_N(r), ascending from -1 to 1.
func JacobiGL(alpha, beta float64, N int) (X []float64) {
	switch N {
	case 0:
		return []float64{0}
	case 1:
		return []float64{-1, 1}
	}
	xint, _ := JacobiGQ(alpha+1, beta+1, N-2)
	X = make([]float64, N+1)
	X[0], X[N] = -1, 1
	copy(X[1:N], xint)
	return
}

// Vandermonde1D returns V(i,j) = P_j(r_i) for the orthonormal Legendre
// polynomials through order N.
func Vandermonde1D(N int, r []float64) (V utils.Matrix) {
	V = utils.NewMatrix(len(r), N+1)
	for j := 0; j < N+1; j++ {
		V.SetCol(j, JacobiP(r, 0, 0, j))
	}
	return
}
