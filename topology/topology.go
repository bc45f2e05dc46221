// Package topology describes the reference cells used by the H(grad) bases:
// their vertices, sub-entity (subcell) node maps, and the maps that embed a
// subcell's own reference coordinates into the parent cell.
//
// Reference cells and subcell numbering follow the shards conventions:
//
//	Line           [-1,1]
//	Triangle       (0,0), (1,0), (0,1)
//	Quadrilateral  [-1,1]^2, counterclockwise from (-1,-1)
//	Tetrahedron    (0,0,0), (1,0,0), (0,1,0), (0,0,1)
//	Hexahedron     [-1,1]^3, bottom face counterclockwise then top face
package topology

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

type Key uint8

const (
	Point Key = iota
	Line
	Triangle
	Quadrilateral
	Tetrahedron
	Hexahedron
)

func (k Key) String() string {
	switch k {
	case Point:
		return "Point"
	case Line:
		return "Line"
	case Triangle:
		return "Triangle"
	case Quadrilateral:
		return "Quadrilateral"
	case Tetrahedron:
		return "Tetrahedron"
	case Hexahedron:
		return "Hexahedron"
	}
	return fmt.Sprintf("Key(%d)", uint8(k))
}

// NewKey parses a topology name as printed by Key.String, ignoring case and
// accepting the short forms tri, quad, tet and hex.
func NewKey(label string) (k Key, err error) {
	switch strings.ToLower(label) {
	case "point":
		k = Point
	case "line", "edge":
		k = Line
	case "triangle", "tri":
		k = Triangle
	case "quadrilateral", "quad":
		k = Quadrilateral
	case "tetrahedron", "tet":
		k = Tetrahedron
	case "hexahedron", "hex":
		k = Hexahedron
	default:
		err = errors.Errorf("unknown cell topology: %q", label)
	}
	return
}

// subcell is one sub-entity of a cell: its shape and the cell vertices it
// is built from, in the subcell's own vertex order.
type subcell struct {
	key   Key
	nodes []int
}

// CellTopology is an immutable reference cell description. The package level
// values are shared read-only by every computation.
type CellTopology struct {
	key       Key
	dimension int
	vertices  [][]float64
	// subcells[d] lists the subcells of dimension d, d < dimension
	subcells [3][]subcell
}

var (
	pointTopo = &CellTopology{
		key:       Point,
		dimension: 0,
		vertices:  [][]float64{{}},
	}
	lineTopo = &CellTopology{
		key:       Line,
		dimension: 1,
		vertices:  [][]float64{{-1}, {1}},
		subcells:  [3][]subcell{vertexSubcells(2)},
	}
	triangleTopo = &CellTopology{
		key:       Triangle,
		dimension: 2,
		vertices:  [][]float64{{0, 0}, {1, 0}, {0, 1}},
		subcells: [3][]subcell{
			vertexSubcells(3),
			edgeSubcells([][]int{{0, 1}, {1, 2}, {2, 0}}),
		},
	}
	quadrilateralTopo = &CellTopology{
		key:       Quadrilateral,
		dimension: 2,
		vertices:  [][]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}},
		subcells: [3][]subcell{
			vertexSubcells(4),
			edgeSubcells([][]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}),
		},
	}
	tetrahedronTopo = &CellTopology{
		key:       Tetrahedron,
		dimension: 3,
		vertices:  [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		subcells: [3][]subcell{
			vertexSubcells(4),
			edgeSubcells([][]int{{0, 1}, {1, 2}, {2, 0}, {0, 3}, {1, 3}, {2, 3}}),
			faceSubcells(Triangle, [][]int{{0, 1, 3}, {1, 2, 3}, {0, 3, 2}, {0, 2, 1}}),
		},
	}
	hexahedronTopo = &CellTopology{
		key:       Hexahedron,
		dimension: 3,
		vertices: [][]float64{
			{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
			{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
		},
		subcells: [3][]subcell{
			vertexSubcells(8),
			edgeSubcells([][]int{
				{0, 1}, {1, 2}, {2, 3}, {3, 0},
				{4, 5}, {5, 6}, {6, 7}, {7, 4},
				{0, 4}, {1, 5}, {2, 6}, {3, 7},
			}),
			faceSubcells(Quadrilateral, [][]int{
				{0, 1, 5, 4}, {1, 2, 6, 5}, {2, 3, 7, 6},
				{0, 4, 7, 3}, {0, 3, 2, 1}, {4, 5, 6, 7},
			}),
		},
	}
)

func vertexSubcells(n int) (sc []subcell) {
	sc = make([]subcell, n)
	for i := range sc {
		sc[i] = subcell{key: Point, nodes: []int{i}}
	}
	return
}

func edgeSubcells(nodes [][]int) (sc []subcell) {
	sc = make([]subcell, len(nodes))
	for i, n := range nodes {
		sc[i] = subcell{key: Line, nodes: n}
	}
	return
}

func faceSubcells(key Key, nodes [][]int) (sc []subcell) {
	sc = make([]subcell, len(nodes))
	for i, n := range nodes {
		sc[i] = subcell{key: key, nodes: n}
	}
	return
}

// Get returns the shared reference topology for key.
func Get(key Key) (ct *CellTopology, err error) {
	switch key {
	case Point:
		ct = pointTopo
	case Line:
		ct = lineTopo
	case Triangle:
		ct = triangleTopo
	case Quadrilateral:
		ct = quadrilateralTopo
	case Tetrahedron:
		ct = tetrahedronTopo
	case Hexahedron:
		ct = hexahedronTopo
	default:
		err = errors.Errorf("no reference topology for %v", key)
	}
	return
}

// MustGet is Get for keys known at compile time.
func MustGet(key Key) *CellTopology {
	ct, err := Get(key)
	if err != nil {
		panic(err)
	}
	return ct
}

func (ct *CellTopology) Key() Key         { return ct.key }
func (ct *CellTopology) Name() string     { return ct.key.String() }
func (ct *CellTopology) Dimension() int   { return ct.dimension }
func (ct *CellTopology) VertexCount() int { return len(ct.vertices) }
func (ct *CellTopology) String() string   { return ct.Name() }
func (ct *CellTopology) IsSimplex() bool  { return ct.key == Line || ct.key == Triangle || ct.key == Tetrahedron }
func (ct *CellTopology) IsTensor() bool   { return ct.key == Line || ct.key == Quadrilateral || ct.key == Hexahedron }
func (ct *CellTopology) Vertex(v int) []float64 {
	return append([]float64(nil), ct.vertices[v]...)
}

// SubcellCount returns the number of subcells of dimension subcDim. The cell
// is its own single subcell of its dimension.
func (ct *CellTopology) SubcellCount(subcDim int) int {
	switch {
	case subcDim == ct.dimension:
		return 1
	case subcDim < 0 || subcDim > ct.dimension:
		return 0
	}
	return len(ct.subcells[subcDim])
}

// SubcellTopology returns the reference topology of subcell (subcDim, subcOrd).
func (ct *CellTopology) SubcellTopology(subcDim, subcOrd int) (sct *CellTopology, err error) {
	if err = ct.checkSubcell(subcDim, subcOrd); err != nil {
		return
	}
	if subcDim == ct.dimension {
		return ct, nil
	}
	return Get(ct.subcells[subcDim][subcOrd].key)
}

// NodeCount returns the number of vertices of subcell (subcDim, subcOrd).
func (ct *CellTopology) NodeCount(subcDim, subcOrd int) int {
	if ct.checkSubcell(subcDim, subcOrd) != nil {
		return 0
	}
	if subcDim == ct.dimension {
		return len(ct.vertices)
	}
	return len(ct.subcells[subcDim][subcOrd].nodes)
}

// NodeMap returns the cell vertex number of the node-th vertex of subcell
// (subcDim, subcOrd), or -1 if no such vertex exists.
func (ct *CellTopology) NodeMap(subcDim, subcOrd, node int) int {
	if ct.checkSubcell(subcDim, subcOrd) != nil {
		return -1
	}
	if subcDim == ct.dimension {
		if node < 0 || node >= len(ct.vertices) {
			return -1
		}
		return node
	}
	nodes := ct.subcells[subcDim][subcOrd].nodes
	if node < 0 || node >= len(nodes) {
		return -1
	}
	return nodes[node]
}

func (ct *CellTopology) checkSubcell(subcDim, subcOrd int) error {
	if subcOrd < 0 || subcOrd >= ct.SubcellCount(subcDim) {
		return errors.Errorf("%s has no subcell of dimension %d with ordinal %d", ct.Name(), subcDim, subcOrd)
	}
	return nil
}
