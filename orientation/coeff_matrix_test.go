package orientation

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/feorient/basis"
	"github.com/notargets/feorient/lattice"
	"github.com/notargets/feorient/topology"
	"github.com/notargets/feorient/utils"
)

const tol = 1.e-10

func newBases(t *testing.T, key topology.Key, degree int, pt lattice.PointType) (*basis.Nodal, map[topology.Key]basis.Basis) {
	cell, err := basis.NewBasis(key, degree, pt)
	require.NoError(t, err)
	subcells, err := NewSubcellBases(cell.Topology(), degree, pt)
	require.NoError(t, err)
	return cell, subcells
}

func coeffMatrix(t *testing.T, cell basis.Basis, subcells map[topology.Key]basis.Basis, dim, ord, ort int) utils.Matrix {
	n, err := CoeffMatrixSize(cell, dim, ord)
	require.NoError(t, err)
	sct, err := cell.Topology().SubcellTopology(dim, ord)
	require.NoError(t, err)
	X := utils.NewMatrix(n, n)
	require.NoError(t, CoeffMatrix(X, subcells[sct.Key()], cell, dim, ord, ort))
	return X
}

func antiDiagonal(n int) (R utils.Matrix) {
	R = utils.NewMatrix(n, n)
	for i := 0; i < n; i++ {
		R.Set(i, n-1-i, 1)
	}
	return
}

// Degree 5 line and quadrilateral bases on edge 0: four interior DOFs, the
// identity for code 0 and the reversal permutation for code 1.
func TestQuadrilateralEdgeDegree5(t *testing.T) {
	for _, pt := range []lattice.PointType{lattice.Equispaced, lattice.WarpBlend} {
		quad, subcells := newBases(t, topology.Quadrilateral, 5, pt)
		line := subcells[topology.Line]
		n, err := CoeffMatrixSize(quad, 1, 0)
		require.NoError(t, err)
		require.Equal(t, 4, n)

		X := utils.NewMatrix(4, 4)
		require.NoError(t, EdgeCoeffMatrix(X, line, quad, 0, 0))
		assert.Less(t, X.MaxAbsDiff(utils.NewIdentity(4)), tol, "%v\n%v", pt, X)

		require.NoError(t, EdgeCoeffMatrix(X, line, quad, 0, 1))
		assert.Less(t, X.MaxAbsDiff(antiDiagonal(4)), tol, "%v\n%v", pt, X)
		assert.Less(t, X.Mul(X).MaxAbsDiff(utils.NewIdentity(4)), tol)
	}
}

func TestIdentityOrientation(t *testing.T) {
	for _, key := range []topology.Key{topology.Triangle, topology.Quadrilateral,
		topology.Tetrahedron, topology.Hexahedron} {
		for _, pt := range []lattice.PointType{lattice.Equispaced, lattice.WarpBlend} {
			cell, subcells := newBases(t, key, 4, pt)
			ct := cell.Topology()
			for d := 1; d < ct.Dimension(); d++ {
				for ord := 0; ord < ct.SubcellCount(d); ord++ {
					X := coeffMatrix(t, cell, subcells, d, ord, 0)
					n, _ := X.Dims()
					assert.Less(t, X.MaxAbsDiff(utils.NewIdentity(n)), tol, "%s %v (%d,%d)", key, pt, d, ord)
				}
			}
		}
	}
}

func TestEdgeInvolution(t *testing.T) {
	for _, key := range []topology.Key{topology.Triangle, topology.Tetrahedron, topology.Hexahedron} {
		cell, subcells := newBases(t, key, 6, lattice.WarpBlend)
		for e := 0; e < cell.Topology().SubcellCount(1); e++ {
			X := coeffMatrix(t, cell, subcells, 1, e, 1)
			n, _ := X.Dims()
			assert.Less(t, X.Mul(X).MaxAbsDiff(utils.NewIdentity(n)), tol, "%s edge %d", key, e)
		}
	}
}

// composeCode finds c with M_c = M_a∘M_b by mapping a point with no symmetry.
func composeCode(t *testing.T, key topology.Key, a, b int) int {
	p := utils.NewMatrix(1, 2, []float64{0.21, 0.13})
	pb, err := MapToModifiedReference(p, key, b)
	require.NoError(t, err)
	pab, err := MapToModifiedReference(pb, key, a)
	require.NoError(t, err)
	for c := 0; c < NumOrientations(key); c++ {
		pc, err := MapToModifiedReference(p, key, c)
		require.NoError(t, err)
		if pc.MaxAbsDiff(pab) < 1.e-14 {
			return c
		}
	}
	t.Fatalf("no composition for %v codes %d, %d", key, a, b)
	return -1
}

// Composition of face symmetries corresponds to the product X_c = X_b·X_a.
func TestFaceGroupClosure(t *testing.T) {
	for _, tc := range []struct {
		cell topology.Key
		face topology.Key
	}{
		{topology.Tetrahedron, topology.Triangle},
		{topology.Hexahedron, topology.Quadrilateral},
	} {
		for _, pt := range []lattice.PointType{lattice.Equispaced, lattice.WarpBlend} {
			cell, subcells := newBases(t, tc.cell, 5, pt)
			left, err := LeftHanded(cell.Topology(), 0)
			require.NoError(t, err)
			require.False(t, left)
			nOrt := NumOrientations(tc.face)
			X := make([]utils.Matrix, nOrt)
			for ort := range X {
				X[ort] = coeffMatrix(t, cell, subcells, 2, 0, ort)
			}
			for a := 0; a < nOrt; a++ {
				for b := 0; b < nOrt; b++ {
					c := composeCode(t, tc.face, a, b)
					assert.Less(t, X[b].Mul(X[a]).MaxAbsDiff(X[c]), tol,
						"%s %v codes a=%d b=%d c=%d", tc.cell, pt, a, b, c)
				}
			}
		}
	}
}

func TestLeftHanded(t *testing.T) {
	for key, want := range map[topology.Key][]bool{
		topology.Tetrahedron: {false, false, true, true},
		topology.Hexahedron:  {false, false, false, true, true, false},
	} {
		ct := topology.MustGet(key)
		require.Equal(t, len(want), ct.SubcellCount(2))
		for f, w := range want {
			for repeat := 0; repeat < 2; repeat++ {
				left, err := LeftHanded(ct, f)
				require.NoError(t, err)
				assert.Equal(t, w, left, "%s face %d", key, f)
			}
			sct, _ := ct.SubcellTopology(2, f)
			nOrt := NumOrientations(sct.Key())
			seen := make(map[int]bool)
			for ort := 0; ort < nOrt; ort++ {
				o, err := FaceOrientation(ct, f, ort)
				require.NoError(t, err)
				assert.True(t, o >= 0 && o < nOrt)
				seen[o] = true
			}
			assert.Len(t, seen, nOrt)
			_, err := FaceOrientation(ct, f, nOrt)
			assert.True(t, errors.Is(err, ErrConfiguration))
		}
	}
	_, err := LeftHanded(topology.MustGet(topology.Quadrilateral), 0)
	assert.True(t, errors.Is(err, ErrConfiguration))
	_, err = LeftHanded(topology.MustGet(topology.Tetrahedron), 4)
	assert.True(t, errors.Is(err, ErrConfiguration))
}

// A left-handed face under code o yields the matrix of a right-handed face
// under the remapped code.
func TestLeftHandedRemap(t *testing.T) {
	for _, tc := range []struct {
		cell        topology.Key
		left, right int
		remap       []int
	}{
		{topology.Tetrahedron, 2, 0, leftHandedTriangle[:]},
		{topology.Hexahedron, 4, 0, leftHandedQuadrilateral[:]},
	} {
		cell, subcells := newBases(t, tc.cell, 4, lattice.WarpBlend)
		for o, lo := range tc.remap {
			XL := coeffMatrix(t, cell, subcells, 2, tc.left, o)
			XR := coeffMatrix(t, cell, subcells, 2, tc.right, lo)
			assert.Less(t, XL.MaxAbsDiff(XR), tol, "%s code %d", tc.cell, o)
		}
	}
}

func TestCoeffMatrixSize(t *testing.T) {
	for p := 1; p <= 6; p++ {
		cell, _ := newBases(t, topology.Hexahedron, p, lattice.Equispaced)
		n, err := CoeffMatrixSize(cell, 1, 3)
		require.NoError(t, err)
		assert.Equal(t, p-1, n)
		n, err = CoeffMatrixSize(cell, 2, 5)
		require.NoError(t, err)
		assert.Equal(t, (p-1)*(p-1), n)
	}
	cell, _ := newBases(t, topology.Tetrahedron, 4, lattice.Equispaced)
	n, err := CoeffMatrixSize(cell, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	for _, sub := range [][2]int{{0, 0}, {3, 0}, {1, 6}, {2, -1}} {
		_, err = CoeffMatrixSize(cell, sub[0], sub[1])
		assert.True(t, errors.Is(err, ErrConfiguration), "%v", sub)
	}
}

func fill(nr, nc int, val float64) utils.Matrix {
	return utils.NewMatrix(nr, nc, utils.ConstArray(nr*nc, val))
}

func TestCoeffMatrixOutput(t *testing.T) {
	quad, subcells := newBases(t, topology.Quadrilateral, 5, lattice.Equispaced)
	line := subcells[topology.Line]

	// Too small: rejected and untouched
	small := fill(3, 4, 7)
	err := EdgeCoeffMatrix(small, line, quad, 2, 1)
	assert.True(t, errors.Is(err, ErrConfiguration))
	assert.Equal(t, 0., small.MaxAbsDiff(fill(3, 4, 7)))

	// Larger: the leading block is written, the rest is untouched
	big := fill(6, 5, 7)
	require.NoError(t, EdgeCoeffMatrix(big, line, quad, 2, 1))
	assert.Less(t, big.Slice(0, 4, 0, 4).MaxAbsDiff(antiDiagonal(4)), tol)
	assert.Equal(t, 0., big.Slice(4, 6, 0, 5).MaxAbsDiff(fill(2, 5, 7)))
	assert.Equal(t, 0., big.Slice(0, 4, 4, 5).MaxAbsDiff(fill(4, 1, 7)))

	// Degree 1 has no interior DOFs and writes nothing
	quad1, subcells1 := newBases(t, topology.Quadrilateral, 1, lattice.Equispaced)
	out := fill(1, 1, 7)
	require.NoError(t, EdgeCoeffMatrix(out, subcells1[topology.Line], quad1, 0, 1))
	assert.Equal(t, 7., out.At(0, 0))
}

func TestCoeffMatrixConfigurationErrors(t *testing.T) {
	quad, subcells := newBases(t, topology.Quadrilateral, 5, lattice.Equispaced)
	line := subcells[topology.Line]
	line4, err := basis.NewBasis(topology.Line, 4, lattice.Equispaced)
	require.NoError(t, err)
	tri, err := basis.NewBasis(topology.Triangle, 5, lattice.Equispaced)
	require.NoError(t, err)
	hex, hexSubcells := newBases(t, topology.Hexahedron, 5, lattice.Equispaced)

	out := fill(16, 16, 7)
	for name, err := range map[string]error{
		"degree":        EdgeCoeffMatrix(out, line4, quad, 0, 1),
		"code":          EdgeCoeffMatrix(out, line, quad, 0, 2),
		"negative code": EdgeCoeffMatrix(out, line, quad, 0, -1),
		"edge id":       EdgeCoeffMatrix(out, line, quad, 4, 0),
		"topology":      EdgeCoeffMatrix(out, tri, quad, 0, 0),
		"face basis":    TriangleCoeffMatrix(out, hexSubcells[topology.Quadrilateral], hex, 0, 0),
		"face shape":    CoeffMatrix(out, tri, hex, 2, 0, 0),
		"quad code":     QuadrilateralCoeffMatrix(out, hexSubcells[topology.Quadrilateral], hex, 1, 8),
		"cell dim":      CoeffMatrix(out, quad, quad, 2, 0, 0),
	} {
		assert.True(t, errors.Is(err, ErrConfiguration), "%s: %v", name, err)
	}
	assert.Equal(t, 0., out.MaxAbsDiff(fill(16, 16, 7)))
}

// degenerateBasis repeats the values of the first edge DOF for the second
type degenerateBasis struct {
	*basis.Nodal
}

func (b degenerateBasis) Values(points utils.Matrix, op basis.Operator) ([]utils.Matrix, error) {
	vals, err := b.Nodal.Values(points, op)
	if err != nil {
		return nil, err
	}
	i0, i1 := b.DofOrdinal(1, 0, 0), b.DofOrdinal(1, 0, 1)
	for _, v := range vals {
		v.SetRow(i1, v.Row(i0))
	}
	return vals, nil
}

func TestSingularCollocation(t *testing.T) {
	quad, subcells := newBases(t, topology.Quadrilateral, 5, lattice.Equispaced)
	out := fill(4, 4, 7)
	err := EdgeCoeffMatrix(out, subcells[topology.Line], degenerateBasis{quad}, 0, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSingular))
	assert.False(t, errors.Is(err, ErrConfiguration))
	var se *utils.SingularError
	assert.True(t, errors.As(err, &se))
	assert.Equal(t, 0., out.MaxAbsDiff(fill(4, 4, 7)))
}

// miscountedBasis claims one more DOF on every edge than it carries
type miscountedBasis struct {
	*basis.Nodal
}

func (b miscountedBasis) DofTag(ord int) basis.DofTag {
	tag := b.Nodal.DofTag(ord)
	if tag.SubcellDim == 1 {
		tag.SubcellDofCount++
	}
	return tag
}

func TestCoeffMatrixLatticeMismatch(t *testing.T) {
	quad, subcells := newBases(t, topology.Quadrilateral, 5, lattice.Equispaced)
	out := fill(8, 8, 7)
	err := EdgeCoeffMatrix(out, subcells[topology.Line], miscountedBasis{quad}, 2, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))
	assert.Contains(t, err.Error(), "Quadrilateral subcell (1,2)")
	assert.Contains(t, err.Error(), "basis has 5 interior DOFs")
	assert.Contains(t, err.Error(), "has 4 points")
	assert.Equal(t, 0., out.MaxAbsDiff(fill(8, 8, 7)))

	_, err = CoeffMatrixSize(miscountedBasis{quad}, 1, 0)
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestConfigurationErrorKeepsCause(t *testing.T) {
	quad, subcells := newBases(t, topology.Quadrilateral, 3, lattice.Equispaced)
	err := EdgeCoeffMatrix(fill(2, 2, 0), subcells[topology.Line], quad, 4, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))
	assert.Contains(t, err.Error(), "Quadrilateral subcell (1,4)")

	var root error
	for e := err; e != nil; e = errors.Unwrap(e) {
		root = e
	}
	assert.False(t, errors.Is(root, ErrConfiguration))
	assert.Contains(t, root.Error(), "has no subcell of dimension 1 with ordinal 4")

	hex, _ := newBases(t, topology.Hexahedron, 2, lattice.Equispaced)
	_, err = LeftHanded(hex.Topology(), 6)
	assert.True(t, errors.Is(err, ErrConfiguration))
	assert.Contains(t, err.Error(), "Hexahedron face 6")
}
