package topology

import (
	"github.com/pkg/errors"

	"github.com/notargets/feorient/utils"
)

// MapToReferenceSubcell embeds points given in the reference coordinates of
// subcell (subcDim, subcOrd) into the reference coordinates of the cell.
// points is NumPoints × subcDim; the result is NumPoints × Dimension().
//
// Edges are parametrized over [-1,1] from their first to second vertex,
// triangular faces over the reference triangle and quadrilateral faces over
// [-1,1]^2 with the face vertices in the quadrilateral's vertex order.
func (ct *CellTopology) MapToReferenceSubcell(points utils.Matrix, subcDim, subcOrd int) (cellPoints utils.Matrix, err error) {
	var (
		sct     *CellTopology
		np, dim = points.Dims()
	)
	if sct, err = ct.SubcellTopology(subcDim, subcOrd); err != nil {
		return
	}
	if np == 0 {
		err = errors.Errorf("no points to map")
		return
	}
	if dim != subcDim && subcDim != 0 {
		err = errors.Errorf("points have dimension %d, subcell dimension is %d", dim, subcDim)
		return
	}
	cellPoints = utils.NewMatrix(np, ct.dimension)
	vtx := make([][]float64, sct.VertexCount())
	for n := range vtx {
		vtx[n] = ct.vertices[ct.NodeMap(subcDim, subcOrd, n)]
	}
	var weights func(p []float64) []float64
	switch sct.key {
	case Point:
		weights = func([]float64) []float64 { return []float64{1} }
	case Line:
		weights = func(p []float64) []float64 {
			return []float64{0.5 * (1 - p[0]), 0.5 * (1 + p[0])}
		}
	case Triangle:
		weights = func(p []float64) []float64 {
			return []float64{1 - p[0] - p[1], p[0], p[1]}
		}
	case Quadrilateral:
		weights = func(p []float64) []float64 {
			u, v := p[0], p[1]
			return []float64{
				0.25 * (1 - u) * (1 - v), 0.25 * (1 + u) * (1 - v),
				0.25 * (1 + u) * (1 + v), 0.25 * (1 - u) * (1 + v),
			}
		}
	default:
		// The cell itself
		for i := 0; i < np; i++ {
			cellPoints.SetRow(i, points.Row(i))
		}
		return
	}
	x := make([]float64, ct.dimension)
	for i := 0; i < np; i++ {
		var p []float64
		if subcDim != 0 {
			p = points.Row(i)
		}
		w := weights(p)
		for d := range x {
			x[d] = 0
			for n, wn := range w {
				x[d] += wn * vtx[n][d]
			}
		}
		cellPoints.SetRow(i, x)
	}
	return
}

// Contains reports whether x lies in the closed reference cell, within tol.
func (ct *CellTopology) Contains(x []float64, tol float64) bool {
	if ct.key == Point {
		return true
	}
	switch {
	case ct.IsTensor():
		for _, xi := range x[:ct.dimension] {
			if xi < -1-tol || xi > 1+tol {
				return false
			}
		}
		return true
	case ct.IsSimplex():
		for _, l := range ct.Barycentric(x) {
			if l < -tol {
				return false
			}
		}
		return true
	}
	return false
}

// Barycentric returns the barycentric coordinates of x in a simplex.
func (ct *CellTopology) Barycentric(x []float64) (lambda []float64) {
	lambda = make([]float64, ct.dimension+1)
	lambda[0] = 1
	for d := 0; d < ct.dimension; d++ {
		lambda[d+1] = x[d]
		lambda[0] -= x[d]
	}
	return
}
