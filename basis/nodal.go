package basis

import (
	"github.com/pkg/errors"

	"github.com/notargets/feorient/lattice"
	"github.com/notargets/feorient/topology"
	"github.com/notargets/feorient/utils"
)

// Nodal is a Lagrange H(grad) basis interpolating at a hierarchical node set:
// the cell vertices, then the interior lattice of every edge, every face and
// finally the cell, each mapped in from its own reference subcell. Nodes on a
// shared subcell are therefore ordered by that subcell's parametrization.
type Nodal struct {
	topo      *topology.CellTopology
	degree    int
	pointType lattice.PointType
	space     *modalSpace
	nodes     utils.Matrix // Cardinality × Dimension
	coeffs    utils.Matrix // Inverse Vandermonde, modes × nodes
	tags      []DofTag
	// ordinals[d][ord] lists the basis ordinals on subcell (d, ord)
	ordinals [4][][]int
}

var _ Basis = (*Nodal)(nil)

func NewNodal(ct *topology.CellTopology, degree int, pointType lattice.PointType) (nb *Nodal, err error) {
	if degree < 1 {
		err = errors.Errorf("basis degree must be at least 1, have %d", degree)
		return
	}
	nb = &Nodal{
		topo:      ct,
		degree:    degree,
		pointType: pointType,
	}
	if nb.space, err = newModalSpace(ct.Key(), degree); err != nil {
		return nil, err
	}
	var rows [][]float64
	for d := 0; d <= ct.Dimension(); d++ {
		nb.ordinals[d] = make([][]int, ct.SubcellCount(d))
		for ord := range nb.ordinals[d] {
			var pts utils.Matrix
			if pts, err = nb.subcellNodes(d, ord); err != nil {
				return nil, err
			}
			n, _ := pts.Dims()
			for k := 0; k < n; k++ {
				nb.ordinals[d][ord] = append(nb.ordinals[d][ord], len(rows))
				nb.tags = append(nb.tags, DofTag{
					SubcellDim:      d,
					SubcellOrd:      ord,
					SubcellDofOrd:   k,
					SubcellDofCount: n,
				})
				rows = append(rows, pts.Row(k))
			}
		}
	}
	if len(rows) != nb.space.size() {
		err = errors.Errorf("%s degree %d: %d nodes for %d modes",
			ct.Name(), degree, len(rows), nb.space.size())
		return nil, err
	}
	nb.nodes = utils.NewMatrixFromRows(rows)
	nb.nodes.SetReadOnly("nodes")
	V := nb.space.eval(nb.nodes, -1)
	if nb.coeffs, err = V.Inverse(); err != nil {
		return nil, errors.Wrapf(err, "%s degree %d %v: Vandermonde matrix", ct.Name(), degree, pointType)
	}
	nb.coeffs.SetReadOnly("coeffs")
	return
}

// NewBasis builds the nodal basis of degree on the reference cell key.
func NewBasis(key topology.Key, degree int, pointType lattice.PointType) (nb *Nodal, err error) {
	var ct *topology.CellTopology
	if ct, err = topology.Get(key); err != nil {
		return
	}
	return NewNodal(ct, degree, pointType)
}

// subcellNodes returns the interior nodes of subcell (d, ord) in cell
// coordinates.
func (nb *Nodal) subcellNodes(d, ord int) (pts utils.Matrix, err error) {
	if d == 0 {
		return utils.NewMatrixFromRows([][]float64{nb.topo.Vertex(ord)}), nil
	}
	var sct *topology.CellTopology
	if sct, err = nb.topo.SubcellTopology(d, ord); err != nil {
		return
	}
	var local utils.Matrix
	if local, err = lattice.Points(sct, nb.degree, 1, nb.pointType); err != nil || local.IsEmpty() {
		return
	}
	return nb.topo.MapToReferenceSubcell(local, d, ord)
}

func (nb *Nodal) Cardinality() int                 { return len(nb.tags) }
func (nb *Nodal) Degree() int                      { return nb.degree }
func (nb *Nodal) Topology() *topology.CellTopology { return nb.topo }
func (nb *Nodal) PointType() lattice.PointType     { return nb.pointType }
func (nb *Nodal) Nodes() utils.Matrix              { return nb.nodes }

func (nb *Nodal) DofOrdinal(subcDim, subcOrd, subcDofOrd int) int {
	if subcDim < 0 || subcDim > nb.topo.Dimension() ||
		subcOrd < 0 || subcOrd >= len(nb.ordinals[subcDim]) {
		return -1
	}
	ords := nb.ordinals[subcDim][subcOrd]
	if subcDofOrd < 0 || subcDofOrd >= len(ords) {
		return -1
	}
	return ords[subcDofOrd]
}

func (nb *Nodal) DofTag(ord int) DofTag {
	if ord < 0 || ord >= len(nb.tags) {
		return DofTag{-1, -1, -1, -1}
	}
	return nb.tags[ord]
}

func (nb *Nodal) Values(points utils.Matrix, op Operator) (values []utils.Matrix, err error) {
	np, dim := points.Dims()
	if np == 0 {
		err = errors.New("no evaluation points")
		return
	}
	if dim != nb.topo.Dimension() {
		err = errors.Errorf("points have dimension %d, %s basis needs %d", dim, nb.topo.Name(), nb.topo.Dimension())
		return
	}
	var dirs []int
	switch op {
	case OperatorValue:
		dirs = []int{-1}
	case OperatorGrad:
		for d := 0; d < dim; d++ {
			dirs = append(dirs, d)
		}
	default:
		err = errors.Errorf("operator %v is not supported", op)
		return
	}
	for _, dir := range dirs {
		// Nodal values are Phi·C, returned one row per basis function
		values = append(values, nb.space.eval(points, dir).Mul(nb.coeffs).Transpose())
	}
	return
}
