package polynomials

import (
	"math"

	"github.com/notargets/feorient/utils"
)

var alpopt = []float64{
	0.0000, 0.0000, 1.4152, 0.1001, 0.2751,
	0.9800, 1.0999, 1.2832, 1.3648, 1.4773,
	1.4959, 1.5743, 1.5770, 1.6223, 1.6258,
}

// Nodes2D computes the (N+1)(N+2)/2 warp & blend nodes of order N on the
// equilateral triangle (-1,-1/√3),(1,-1/√3),(0,2/√3). Nodes are ordered
// row by row from the bottom edge, left to right within a row.
func Nodes2D(N int) (x, y []float64) {
	var (
		alpha = 5. / 3.
		Np    = (N + 1) * (N + 2) / 2
		fn    = 1. / float64(N)
	)
	if N < 16 {
		alpha = alpopt[N-1]
	}
	L1, L2, L3 := make([]float64, Np), make([]float64, Np), make([]float64, Np)
	var sk int
	for n := 0; n < N+1; n++ {
		for m := 0; m < N+1-n; m++ {
			L1[sk] = float64(n) * fn
			L3[sk] = float64(m) * fn
			sk++
		}
	}
	x, y = make([]float64, Np), make([]float64, Np)
	d32, d13, d21 := make([]float64, Np), make([]float64, Np), make([]float64, Np)
	for i := range x {
		L2[i] = 1 - L1[i] - L3[i]
		x[i] = L3[i] - L2[i]
		y[i] = (2*L1[i] - L3[i] - L2[i]) / math.Sqrt(3)
		d32[i], d13[i], d21[i] = L3[i]-L2[i], L1[i]-L3[i], L2[i]-L1[i]
	}
	// Amount of warp for each node, for each edge
	warpf1 := Warpfactor(N, d32)
	warpf2 := Warpfactor(N, d13)
	warpf3 := Warpfactor(N, d21)
	for i := range x {
		// Blend the warp of each edge into the interior
		warp1 := 4 * L2[i] * L3[i] * warpf1[i] * (1 + utils.POW(alpha*L1[i], 2))
		warp2 := 4 * L1[i] * L3[i] * warpf2[i] * (1 + utils.POW(alpha*L2[i], 2))
		warp3 := 4 * L1[i] * L2[i] * warpf3[i] * (1 + utils.POW(alpha*L3[i], 2))
		x[i] += warp1 + math.Cos(2*math.Pi/3)*warp2 + math.Cos(4*math.Pi/3)*warp3
		y[i] += math.Sin(2*math.Pi/3)*warp2 + math.Sin(4*math.Pi/3)*warp3
	}
	return
}

// Warpfactor returns the displacement of the order N Gauss-Lobatto nodes
// from the equispaced nodes, interpolated at rout and divided by the edge
// blend 1-r^2. It vanishes at the end points.
func Warpfactor(N int, rout []float64) (warpF []float64) {
	var (
		Nr   = len(rout)
		Pmat = utils.NewMatrix(N+1, Nr)
		LGLr = JacobiGL(0, 0, N)
		req  = utils.Linspace(-1, 1, N+1)
		Veq  = Vandermonde1D(N, req)
	)
	for i := 0; i < N+1; i++ {
		Pmat.SetRow(i, JacobiP(rout, 0, 0, i))
	}
	// Lmat(k,i) is the k-th equispaced Lagrange polynomial at rout[i]
	Lmat, err := Veq.Transpose().Solve(Pmat)
	if err != nil {
		panic(err)
	}
	warpF = make([]float64, Nr)
	for i, r := range rout {
		if math.Abs(r) >= 1.0-1.e-10 {
			continue
		}
		var w float64
		for k := 0; k < N+1; k++ {
			w += Lmat.At(k, i) * (LGLr[k] - req[k])
		}
		warpF[i] = w / (1 - r*r)
	}
	return
}

// XYtoRS maps points of the equilateral triangle of Nodes2D to the triangle
// (-1,-1),(1,-1),(-1,1).
func XYtoRS(x, y []float64) (r, s []float64) {
	r, s = make([]float64, len(x)), make([]float64, len(x))
	sr3 := math.Sqrt(3)
	for i := range x {
		l1 := (sr3*y[i] + 1) / 3
		l2 := (-3*x[i] - sr3*y[i] + 2) / 6
		l3 := (3*x[i] - sr3*y[i] + 2) / 6
		r[i] = -l2 + l3 - l1
		s[i] = -l2 - l3 + l1
	}
	return
}
