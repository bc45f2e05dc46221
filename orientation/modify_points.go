package orientation

import (
	"github.com/notargets/feorient/topology"
	"github.com/notargets/feorient/utils"
)

// NumOrientations is the order of the symmetry group of a subcell shape:
// 2 for a line, 6 for a triangle and 8 for a quadrilateral. Other shapes
// have none.
func NumOrientations(key topology.Key) int {
	switch key {
	case topology.Line:
		return 2
	case topology.Triangle:
		return 6
	case topology.Quadrilateral:
		return 8
	}
	return 0
}

// triangleMaps[ort] selects the barycentric coordinates (λ0=1-x-y, λ1=x,
// λ2=y) that become the modified (x, y).
var triangleMaps = [6][2]int{
	{1, 2}, {0, 1}, {2, 0}, {2, 1}, {0, 2}, {1, 0},
}

// quadMaps[ort] is the linear map (x, y) -> (a·x + b·y, c·x + d·y).
var quadMaps = [8][4]float64{
	{1, 0, 0, 1},   // (x, y)
	{0, -1, 1, 0},  // (-y, x)
	{-1, 0, 0, -1}, // (-x, -y)
	{0, 1, -1, 0},  // (y, -x)
	{0, 1, 1, 0},   // (y, x)
	{-1, 0, 0, 1},  // (-x, y)
	{0, -1, -1, 0}, // (-y, -x)
	{1, 0, 0, -1},  // (x, -y)
}

// MapToModifiedReference applies the symmetry of subcell shape key selected
// by ort to every row of points, given in the shape's reference coordinates.
// Code 0 is the identity.
func MapToModifiedReference(points utils.Matrix, key topology.Key, ort int) (out utils.Matrix, err error) {
	var (
		np, dim = points.Dims()
		nOrt    = NumOrientations(key)
	)
	if nOrt == 0 {
		err = configErrorf("no orientations defined on %v", key)
		return
	}
	if ort < 0 || ort >= nOrt {
		err = configErrorf("orientation code %d out of range [0,%d) on %v", ort, nOrt, key)
		return
	}
	if np == 0 {
		return
	}
	if want := topology.MustGet(key).Dimension(); dim != want {
		err = configErrorf("points have dimension %d, %v needs %d", dim, key, want)
		return
	}
	out = utils.NewMatrix(np, dim)
	for i := 0; i < np; i++ {
		p := points.Row(i)
		switch key {
		case topology.Line:
			if ort == 1 {
				p[0] = -p[0]
			}
		case topology.Triangle:
			lam := [3]float64{1 - p[0] - p[1], p[0], p[1]}
			p[0], p[1] = lam[triangleMaps[ort][0]], lam[triangleMaps[ort][1]]
		case topology.Quadrilateral:
			m := quadMaps[ort]
			p[0], p[1] = m[0]*p[0]+m[1]*p[1], m[2]*p[0]+m[3]*p[1]
		}
		out.SetRow(i, p)
	}
	return
}
