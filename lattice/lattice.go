// Package lattice generates the point lattices used both as nodal basis
// nodes and as collocation points on reference cells.
package lattice

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/notargets/feorient/polynomials"
	"github.com/notargets/feorient/topology"
	"github.com/notargets/feorient/utils"
)

type PointType uint8

const (
	Equispaced PointType = iota
	// WarpBlend places Gauss-Lobatto points on lines and tensor cells and
	// warp & blend points on triangles. Tetrahedra use equispaced points.
	WarpBlend
)

func (pt PointType) String() string {
	switch pt {
	case Equispaced:
		return "Equispaced"
	case WarpBlend:
		return "WarpBlend"
	}
	return fmt.Sprintf("PointType(%d)", uint8(pt))
}

func NewPointType(label string) (pt PointType, err error) {
	switch strings.ToLower(label) {
	case "equispaced", "equi":
		pt = Equispaced
	case "warpblend", "warp-blend", "gll", "lobatto":
		pt = WarpBlend
	default:
		err = errors.Errorf("unknown point type: %q", label)
	}
	return
}

// Size returns the number of points Points produces for the same arguments:
// the lattice of order points along each edge, shrunk by offset layers from
// the boundary.
func Size(ct *topology.CellTopology, order, offset int) (n int, err error) {
	if order < 1 || offset < 0 {
		err = errors.Errorf("invalid lattice order %d, offset %d", order, offset)
		return
	}
	switch ct.Key() {
	case topology.Line:
		n = nonNeg(order + 1 - 2*offset)
	case topology.Triangle:
		m := nonNeg(order + 1 - 3*offset)
		n = m * (m + 1) / 2
	case topology.Quadrilateral:
		m := nonNeg(order + 1 - 2*offset)
		n = m * m
	case topology.Tetrahedron:
		m := nonNeg(order + 1 - 4*offset)
		n = m * (m + 1) * (m + 2) / 6
	case topology.Hexahedron:
		m := nonNeg(order + 1 - 2*offset)
		n = m * m * m
	default:
		err = errors.Errorf("no lattice defined on %s", ct.Name())
	}
	return
}

func nonNeg(i int) int {
	if i < 0 {
		return 0
	}
	return i
}

// Points returns the lattice as a Size × Dimension matrix in the reference
// coordinates of ct. Points are ordered with the first coordinate varying
// fastest. An empty lattice returns an empty Matrix.
func Points(ct *topology.CellTopology, order, offset int, pointType PointType) (P utils.Matrix, err error) {
	var n int
	if n, err = Size(ct, order, offset); err != nil || n == 0 {
		return
	}
	switch pointType {
	case Equispaced, WarpBlend:
	default:
		err = errors.Errorf("unknown point type %v", pointType)
		return
	}
	var pts [][]float64
	switch {
	case ct.IsTensor():
		pts = tensorPoints(ct.Dimension(), lineNodes(order, offset, pointType))
	case ct.Key() == topology.Triangle && pointType == WarpBlend:
		pts = warpBlendTriangle(order, offset)
	case ct.IsSimplex():
		pts = equispacedSimplex(ct.Dimension(), order, offset)
	}
	if len(pts) != n {
		err = errors.Errorf("lattice on %s of order %d offset %d has %d points, expected %d",
			ct.Name(), order, offset, len(pts), n)
		return
	}
	P = utils.NewMatrixFromRows(pts)
	return
}

// lineNodes returns the 1-D nodes on [-1,1], dropping offset nodes at each end
func lineNodes(order, offset int, pointType PointType) []float64 {
	var r []float64
	if pointType == WarpBlend {
		r = polynomials.JacobiGL(0, 0, order)
	} else {
		r = utils.Linspace(-1, 1, order+1)
	}
	return r[offset : order+1-offset]
}

func tensorPoints(dim int, r []float64) (pts [][]float64) {
	n := len(r)
	switch dim {
	case 1:
		for _, x := range r {
			pts = append(pts, []float64{x})
		}
	case 2:
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				pts = append(pts, []float64{r[i], r[j]})
			}
		}
	case 3:
		for k := 0; k < n; k++ {
			for j := 0; j < n; j++ {
				for i := 0; i < n; i++ {
					pts = append(pts, []float64{r[i], r[j], r[k]})
				}
			}
		}
	}
	return
}

// equispacedSimplex returns the points (i,j[,k])/order of the unit simplex
// with every index at least offset from each face.
func equispacedSimplex(dim, order, offset int) (pts [][]float64) {
	h := 1. / float64(order)
	switch dim {
	case 2:
		for j := offset; j <= order-2*offset; j++ {
			for i := offset; i+j <= order-offset; i++ {
				pts = append(pts, []float64{float64(i) * h, float64(j) * h})
			}
		}
	case 3:
		for k := offset; k <= order-3*offset; k++ {
			for j := offset; j+k <= order-2*offset; j++ {
				for i := offset; i+j+k <= order-offset; i++ {
					pts = append(pts, []float64{float64(i) * h, float64(j) * h, float64(k) * h})
				}
			}
		}
	}
	return
}

// warpBlendTriangle selects the nodes of polynomials.Nodes2D that are at
// least offset rows from each edge and maps them to the unit triangle.
func warpBlendTriangle(order, offset int) (pts [][]float64) {
	x, y := polynomials.Nodes2D(order)
	r, s := polynomials.XYtoRS(x, y)
	var sk int
	for j := 0; j <= order; j++ {
		for i := 0; i <= order-j; i++ {
			if j >= offset && i >= offset && i+j <= order-offset {
				pts = append(pts, []float64{0.5 * (1 + r[sk]), 0.5 * (1 + s[sk])})
			}
			sk++
		}
	}
	return
}
