package polynomials

import (
	"math"
)

// RStoAB maps (r,s) on the triangle (-1,-1),(1,-1),(-1,1) to the collapsed
// square coordinates (a,b).
func RStoAB(r, s []float64) (a, b []float64) {
	a, b = make([]float64, len(r)), make([]float64, len(r))
	for n := range r {
		a[n], b[n] = rsToab(r[n], s[n])
	}
	return
}

func rsToab(r, s float64) (a, b float64) {
	if s != 1 {
		a = 2*(1+r)/(1-s) - 1
	} else {
		a = -1
	}
	b = s
	return
}

// Simplex2DP evaluates the orthonormal PKD polynomial of order (i,j) on the
// triangle (-1,-1),(1,-1),(-1,1).
func Simplex2DP(r, s []float64, i, j int) (P []float64) {
	var (
		a, b = RStoAB(r, s)
		h1   = JacobiP(a, 0, 0, i)
		h2   = JacobiP(b, float64(2*i+1), 0, j)
		sq2  = math.Sqrt(2)
	)
	P = make([]float64, len(r))
	for n := range P {
		P[n] = sq2 * h1[n] * h2[n] * math.Pow(1-b[n], float64(i))
	}
	return
}

// GradSimplex2DP returns the (r,s) derivatives of Simplex2DP.
func GradSimplex2DP(r, s []float64, id, jd int) (ddr, dds []float64) {
	var (
		a, b = RStoAB(r, s)
		fa   = JacobiP(a, 0, 0, id)
		dfa  = GradJacobiP(a, 0, 0, id)
		gb   = JacobiP(b, 2*float64(id)+1, 0, jd)
		dgb  = GradJacobiP(b, 2*float64(id)+1, 0, jd)
		norm = math.Pow(2, float64(id)+0.5)
	)
	ddr, dds = make([]float64, len(r)), make([]float64, len(r))
	for n := range ddr {
		// d/dr = (2/(1-b)) d/da
		ddr[n] = dfa[n] * gb[n]
		if id > 0 {
			ddr[n] *= math.Pow(0.5*(1-b[n]), float64(id-1))
		}
		// d/ds = ((1+a)/2)/((1-b)/2) d/da + d/db
		dds[n] = 0.5 * (1 + a[n]) * ddr[n]
		tmp := dgb[n] * math.Pow(0.5*(1-b[n]), float64(id))
		if id > 0 {
			tmp -= 0.5 * float64(id) * gb[n] * math.Pow(0.5*(1-b[n]), float64(id-1))
		}
		dds[n] += fa[n] * tmp
		ddr[n] *= norm
		dds[n] *= norm
	}
	return
}

// RSTtoABC maps (r,s,t) on the tetrahedron (-1,-1,-1),(1,-1,-1),(-1,1,-1),
// (-1,-1,1) to collapsed cube coordinates.
func RSTtoABC(r, s, t []float64) (a, b, c []float64) {
	Np := len(r)
	a, b, c = make([]float64, Np), make([]float64, Np), make([]float64, Np)
	for n := 0; n < Np; n++ {
		if s[n]+t[n] != 0 {
			a[n] = 2*(1+r[n])/(-s[n]-t[n]) - 1
		} else {
			a[n] = -1
		}
		if t[n] != 1 {
			b[n] = 2*(1+s[n])/(1-t[n]) - 1
		} else {
			b[n] = -1
		}
	}
	copy(c, t)
	return
}

// Simplex3DP evaluates the orthonormal PKD polynomial of order (i,j,k) on the
// tetrahedron of RSTtoABC.
func Simplex3DP(r, s, t []float64, i, j, k int) (P []float64) {
	var (
		a, b, c = RSTtoABC(r, s, t)
		h1      = JacobiP(a, 0, 0, i)
		h2      = JacobiP(b, float64(2*i+1), 0, j)
		h3      = JacobiP(c, float64(2*(i+j)+2), 0, k)
		norm    = 2 * math.Sqrt(2)
	)
	P = make([]float64, len(r))
	for n := range P {
		P[n] = norm * h1[n] * h2[n] * math.Pow(1-b[n], float64(i)) *
			h3[n] * math.Pow(1-c[n], float64(i+j))
	}
	return
}

// GradSimplex3DP returns the (r,s,t) derivatives of Simplex3DP.
func GradSimplex3DP(r, s, t []float64, id, jd, kd int) (ddr, dds, ddt []float64) {
	var (
		a, b, c = RSTtoABC(r, s, t)
		fa      = JacobiP(a, 0, 0, id)
		gb      = JacobiP(b, float64(2*id+1), 0, jd)
		hc      = JacobiP(c, float64(2*(id+jd)+2), 0, kd)
		dfa     = GradJacobiP(a, 0, 0, id)
		dgb     = GradJacobiP(b, float64(2*id+1), 0, jd)
		dhc     = GradJacobiP(c, float64(2*(id+jd)+2), 0, kd)
		norm    = math.Pow(2, float64(2*id+jd)+1.5)
		Np      = len(r)
	)
	ddr, dds, ddt = make([]float64, Np), make([]float64, Np), make([]float64, Np)
	for n := 0; n < Np; n++ {
		hb := 0.5 * (1 - b[n])
		hc1 := 0.5 * (1 - c[n])
		dr := dfa[n] * gb[n] * hc[n]
		if id > 0 {
			dr *= math.Pow(hb, float64(id-1))
		}
		if id+jd > 0 {
			dr *= math.Pow(hc1, float64(id+jd-1))
		}
		ds := 0.5 * (1 + a[n]) * dr
		tmp := dgb[n] * math.Pow(hb, float64(id))
		if id > 0 {
			tmp -= 0.5 * float64(id) * gb[n] * math.Pow(hb, float64(id-1))
		}
		if id+jd > 0 {
			tmp *= math.Pow(hc1, float64(id+jd-1))
		}
		tmp = fa[n] * tmp * hc[n]
		ds += tmp
		dt := 0.5*(1+a[n])*dr + 0.5*(1+b[n])*tmp
		tmp2 := dhc[n] * math.Pow(hc1, float64(id+jd))
		if id+jd > 0 {
			tmp2 -= 0.5 * float64(id+jd) * hc[n] * math.Pow(hc1, float64(id+jd-1))
		}
		dt += fa[n] * gb[n] * tmp2 * math.Pow(hb, float64(id))
		ddr[n], dds[n], ddt[n] = dr*norm, ds*norm, dt*norm
	}
	return
}
