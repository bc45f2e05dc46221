// Package basis defines the capability set the orientation code needs from an
// H(grad) basis and provides nodal Lagrange bases on every reference cell.
package basis

import (
	"fmt"

	"github.com/notargets/feorient/topology"
	"github.com/notargets/feorient/utils"
)

type Operator uint8

const (
	OperatorValue Operator = iota
	// OperatorGrad yields one matrix per reference direction
	OperatorGrad
)

func (op Operator) String() string {
	switch op {
	case OperatorValue:
		return "Value"
	case OperatorGrad:
		return "Grad"
	}
	return fmt.Sprintf("Operator(%d)", uint8(op))
}

// DofTag locates a basis function on its cell: the subcell it is associated
// with, its local number on that subcell, and how many functions the subcell
// carries in total.
type DofTag struct {
	SubcellDim      int
	SubcellOrd      int
	SubcellDofOrd   int
	SubcellDofCount int
}

// Basis is the capability set of a scalar finite element basis.
type Basis interface {
	Cardinality() int
	Degree() int
	Topology() *topology.CellTopology
	// DofOrdinal returns the basis ordinal of the subcDofOrd-th function of
	// subcell (subcDim, subcOrd), or -1 if no such function exists.
	DofOrdinal(subcDim, subcOrd, subcDofOrd int) int
	// DofTag is the inverse of DofOrdinal. An ordinal out of range returns a
	// tag with every field set to -1.
	DofTag(ord int) DofTag
	// Values evaluates every basis function at points (NumPoints × Dimension).
	// Each returned matrix is Cardinality × NumPoints; OperatorValue returns
	// one matrix, OperatorGrad one per reference direction.
	Values(points utils.Matrix, op Operator) ([]utils.Matrix, error)
}

// SubcellDofCount returns the number of basis functions associated with the
// interior of subcell (subcDim, subcOrd), zero if there are none.
func SubcellDofCount(b Basis, subcDim, subcOrd int) int {
	ord := b.DofOrdinal(subcDim, subcOrd, 0)
	if ord < 0 {
		return 0
	}
	return b.DofTag(ord).SubcellDofCount
}
