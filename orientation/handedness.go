package orientation

import (
	"github.com/notargets/feorient/topology"
)

// Conjugating a face symmetry by the reflection across the face diagonal
// through vertex 0 exchanges these codes. A left-handed face uses the
// conjugated code so its matrix is expressed in the right-handed frame.
var (
	leftHandedTriangle      = [6]int{0, 2, 1, 3, 5, 4}
	leftHandedQuadrilateral = [8]int{0, 3, 2, 1, 4, 7, 6, 5}
)

// LeftHanded reports whether face faceOrd of ct is numbered clockwise
// relative to the face template, judged by the cell vertex numbers of its
// second and last face vertices.
func LeftHanded(ct *topology.CellTopology, faceOrd int) (left bool, err error) {
	var sct *topology.CellTopology
	if ct.Dimension() != 3 {
		err = configErrorf("%s has no faces", ct.Name())
		return
	}
	if sct, err = ct.SubcellTopology(2, faceOrd); err != nil {
		err = configWrapf(err, "%s face %d", ct.Name(), faceOrd)
		return
	}
	last := sct.VertexCount() - 1
	left = ct.NodeMap(2, faceOrd, 1) > ct.NodeMap(2, faceOrd, last)
	return
}

// FaceOrientation returns the code actually used for face faceOrd given the
// caller's code ort.
func FaceOrientation(ct *topology.CellTopology, faceOrd, ort int) (int, error) {
	left, err := LeftHanded(ct, faceOrd)
	if err != nil {
		return 0, err
	}
	sct, _ := ct.SubcellTopology(2, faceOrd)
	key := sct.Key()
	if n := NumOrientations(key); ort < 0 || ort >= n {
		return 0, configErrorf("orientation code %d out of range [0,%d) on %s face %d", ort, n, ct.Name(), faceOrd)
	}
	if !left {
		return ort, nil
	}
	if key == topology.Triangle {
		return leftHandedTriangle[ort], nil
	}
	return leftHandedQuadrilateral[ort], nil
}
