// Package orientation computes the change of basis matrices that express the
// DOFs interior to an edge or face of a cell in the frame of a neighbouring
// cell, for every relative orientation of the shared subcell.
package orientation

import (
	"github.com/notargets/feorient/basis"
	"github.com/notargets/feorient/lattice"
	"github.com/notargets/feorient/topology"
	"github.com/notargets/feorient/utils"
)

// CoeffMatrixSize returns the number of DOFs cellBasis places in the interior
// of subcell (subcDim, subcOrd), the dimension of its coefficient matrix.
// The count must agree with the offset 1 equispaced lattice on the subcell.
func CoeffMatrixSize(cellBasis basis.Basis, subcDim, subcOrd int) (n int, err error) {
	ct := cellBasis.Topology()
	if subcDim < 1 || subcDim >= ct.Dimension() {
		err = configErrorf("%s has no oriented subcells of dimension %d", ct.Name(), subcDim)
		return
	}
	var sct *topology.CellTopology
	if sct, err = ct.SubcellTopology(subcDim, subcOrd); err != nil {
		err = configWrapf(err, "%s subcell (%d,%d)", ct.Name(), subcDim, subcOrd)
		return
	}
	n = basis.SubcellDofCount(cellBasis, subcDim, subcOrd)
	var nLattice int
	if nLattice, err = lattice.Size(sct, cellBasis.Degree(), 1); err != nil {
		err = configWrapf(err, "%s subcell (%d,%d) lattice", ct.Name(), subcDim, subcOrd)
		return
	}
	if n != nLattice {
		err = configErrorf("%s subcell (%d,%d): basis has %d interior DOFs, lattice of degree %d has %d points",
			ct.Name(), subcDim, subcOrd, n, cellBasis.Degree(), nLattice)
	}
	return
}

// CoeffMatrix writes into the leading n×n block of output the orientation
// matrix X of subcell (subcDim, subcOrd) of cellBasis under code ort:
//
//	subcellBasis_i(T_ort(t)) = sum_k cellBasis_k(t) X(k,i)
//
// for the n DOFs k, i interior to the subcell, with t in subcell coordinates.
// Faces of 3-D cells are corrected for handedness first. Output is only
// written when the whole computation succeeds.
func CoeffMatrix(output utils.Matrix, subcellBasis, cellBasis basis.Basis, subcDim, subcOrd, ort int) (err error) {
	var (
		ct = cellBasis.Topology()
		n  int
	)
	if n, err = CoeffMatrixSize(cellBasis, subcDim, subcOrd); err != nil {
		return
	}
	sct, _ := ct.SubcellTopology(subcDim, subcOrd)
	if subcellBasis.Topology().Key() != sct.Key() {
		return configErrorf("%s subcell (%d,%d) is a %s, subcell basis is on a %s",
			ct.Name(), subcDim, subcOrd, sct.Name(), subcellBasis.Topology().Name())
	}
	if subcellBasis.Degree() != cellBasis.Degree() {
		return configErrorf("subcell basis degree %d does not match cell basis degree %d",
			subcellBasis.Degree(), cellBasis.Degree())
	}
	if nOrt := NumOrientations(sct.Key()); ort < 0 || ort >= nOrt {
		return configErrorf("orientation code %d out of range [0,%d) on %s subcell (%d,%d)",
			ort, nOrt, ct.Name(), subcDim, subcOrd)
	}
	if nr, nc := output.Dims(); nr < n || nc < n {
		return configErrorf("output is %dx%d, coefficient matrix is %dx%d", nr, nc, n, n)
	}
	if n == 0 {
		return
	}
	if subcellBasis.DofOrdinal(subcDim, 0, n-1) < 0 || subcellBasis.DofOrdinal(subcDim, 0, n) >= 0 {
		return configErrorf("subcell basis does not carry %d interior DOFs", n)
	}
	if subcDim == 2 {
		if ort, err = FaceOrientation(ct, subcOrd, ort); err != nil {
			return
		}
	}
	var X utils.Matrix
	if X, err = solveCoeffMatrix(subcellBasis, cellBasis, sct, subcDim, subcOrd, ort, n); err != nil {
		return
	}
	output.Assign(0, 0, X)
	return
}

func solveCoeffMatrix(subcellBasis, cellBasis basis.Basis, sct *topology.CellTopology,
	subcDim, subcOrd, ort, n int) (X utils.Matrix, err error) {
	var (
		ct                      = cellBasis.Topology()
		degree                  = cellBasis.Degree()
		refPts, ortPts, cellPts utils.Matrix
		refValues, ortValues    []utils.Matrix
	)
	if refPts, err = lattice.Points(sct, degree, 1, lattice.Equispaced); err != nil {
		return
	}
	if ortPts, err = MapToModifiedReference(refPts, sct.Key(), ort); err != nil {
		return
	}
	if cellPts, err = ct.MapToReferenceSubcell(refPts, subcDim, subcOrd); err != nil {
		err = configWrapf(err, "%s subcell (%d,%d) points", ct.Name(), subcDim, subcOrd)
		return
	}
	if refValues, err = cellBasis.Values(cellPts, basis.OperatorValue); err != nil {
		err = configWrapf(err, "cell basis")
		return
	}
	if ortValues, err = subcellBasis.Values(ortPts, basis.OperatorValue); err != nil {
		err = configWrapf(err, "subcell basis")
		return
	}
	// Rows are collocation points, columns the subcell DOFs
	var (
		Ref = utils.NewMatrix(n, n)
		Ort = utils.NewMatrix(n, n)
	)
	for i := 0; i < n; i++ {
		iRef := cellBasis.DofOrdinal(subcDim, subcOrd, i)
		iOrt := subcellBasis.DofOrdinal(subcDim, 0, i)
		for j := 0; j < n; j++ {
			Ref.Set(j, i, refValues[0].At(iRef, j))
			Ort.Set(j, i, ortValues[0].At(iOrt, j))
		}
	}
	if X, err = Ref.Solve(Ort); err != nil {
		err = singularErrorf(err, "%s subcell (%d,%d) orientation %d", ct.Name(), subcDim, subcOrd, ort)
	}
	return
}

// EdgeCoeffMatrix is CoeffMatrix for edge edgeOrd of cellBasis.
func EdgeCoeffMatrix(output utils.Matrix, lineBasis, cellBasis basis.Basis, edgeOrd, ort int) error {
	return CoeffMatrix(output, lineBasis, cellBasis, 1, edgeOrd, ort)
}

// TriangleCoeffMatrix is CoeffMatrix for triangular face faceOrd of cellBasis.
func TriangleCoeffMatrix(output utils.Matrix, triBasis, cellBasis basis.Basis, faceOrd, ort int) error {
	if key := triBasis.Topology().Key(); key != topology.Triangle {
		return configErrorf("triangle face needs a triangle basis, have %v", key)
	}
	return CoeffMatrix(output, triBasis, cellBasis, 2, faceOrd, ort)
}

// QuadrilateralCoeffMatrix is CoeffMatrix for quadrilateral face faceOrd of
// cellBasis.
func QuadrilateralCoeffMatrix(output utils.Matrix, quadBasis, cellBasis basis.Basis, faceOrd, ort int) error {
	if key := quadBasis.Topology().Key(); key != topology.Quadrilateral {
		return configErrorf("quadrilateral face needs a quadrilateral basis, have %v", key)
	}
	return CoeffMatrix(output, quadBasis, cellBasis, 2, faceOrd, ort)
}
