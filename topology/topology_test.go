package topology

import (
	"testing"

	"github.com/notargets/feorient/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKey(t *testing.T) {
	for label, want := range map[string]Key{
		"Line": Line, "edge": Line, "TRI": Triangle, "Quadrilateral": Quadrilateral,
		"quad": Quadrilateral, "tet": Tetrahedron, "Hexahedron": Hexahedron,
	} {
		k, err := NewKey(label)
		require.NoError(t, err, label)
		assert.Equal(t, want, k, label)
	}
	_, err := NewKey("pyramid")
	assert.Error(t, err)
	assert.Equal(t, "Quadrilateral", Quadrilateral.String())
}

func TestSubcellCounts(t *testing.T) {
	type counts [4]int
	for key, want := range map[Key]counts{
		Line:          {2, 1, 0, 0},
		Triangle:      {3, 3, 1, 0},
		Quadrilateral: {4, 4, 1, 0},
		Tetrahedron:   {4, 6, 4, 1},
		Hexahedron:    {8, 12, 6, 1},
	} {
		ct := MustGet(key)
		for d := 0; d < 4; d++ {
			assert.Equal(t, want[d], ct.SubcellCount(d), "%s dim %d", key, d)
		}
		assert.Equal(t, 0, ct.SubcellCount(-1))
	}
}

func TestNodeMap(t *testing.T) {
	tet := MustGet(Tetrahedron)
	assert.Equal(t, []int{0, 3, 2}, []int{tet.NodeMap(2, 2, 0), tet.NodeMap(2, 2, 1), tet.NodeMap(2, 2, 2)})
	assert.Equal(t, -1, tet.NodeMap(2, 2, 3))
	assert.Equal(t, -1, tet.NodeMap(2, 4, 0))
	assert.Equal(t, 3, tet.NodeCount(2, 0))

	hex := MustGet(Hexahedron)
	assert.Equal(t, 4, hex.NodeCount(2, 3))
	assert.Equal(t, 7, hex.NodeMap(2, 3, 2))
	assert.Equal(t, 5, hex.NodeMap(1, 9, 1))

	sct, err := hex.SubcellTopology(2, 5)
	require.NoError(t, err)
	assert.Equal(t, Quadrilateral, sct.Key())
	sct, err = tet.SubcellTopology(1, 5)
	require.NoError(t, err)
	assert.Equal(t, Line, sct.Key())
	_, err = tet.SubcellTopology(1, 6)
	assert.Error(t, err)
}

// Every subcell's reference vertices must land on the matching cell vertices.
func TestMapToReferenceSubcellVertices(t *testing.T) {
	for _, key := range []Key{Triangle, Quadrilateral, Tetrahedron, Hexahedron} {
		ct := MustGet(key)
		for d := 1; d < ct.Dimension(); d++ {
			for ord := 0; ord < ct.SubcellCount(d); ord++ {
				sct, err := ct.SubcellTopology(d, ord)
				require.NoError(t, err)
				rows := make([][]float64, sct.VertexCount())
				for n := range rows {
					rows[n] = sct.Vertex(n)
				}
				X, err := ct.MapToReferenceSubcell(utils.NewMatrixFromRows(rows), d, ord)
				require.NoError(t, err)
				for n := range rows {
					assert.InDeltaSlice(t, ct.Vertex(ct.NodeMap(d, ord, n)), X.Row(n), 1.e-14,
						"%s subcell (%d,%d) node %d", key, d, ord, n)
				}
			}
		}
	}
}

func TestMapToReferenceSubcell(t *testing.T) {
	quad := MustGet(Quadrilateral)
	// Edge 2 runs from (1,1) to (-1,1)
	X, err := quad.MapToReferenceSubcell(utils.NewMatrix(2, 1, []float64{-0.5, 0.5}), 1, 2)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, 1}, X.Row(0), 1.e-15)
	assert.InDeltaSlice(t, []float64{-0.5, 1}, X.Row(1), 1.e-15)

	tri := MustGet(Triangle)
	// Edge 1 runs from (1,0) to (0,1)
	X, err = tri.MapToReferenceSubcell(utils.NewMatrix(1, 1, []float64{0}), 1, 1)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, 0.5}, X.Row(0), 1.e-15)
	for _, x := range [][]float64{X.Row(0), {0.2, 0.3}} {
		assert.True(t, tri.Contains(x, 1.e-14))
	}
	assert.False(t, tri.Contains([]float64{0.6, 0.6}, 1.e-14))

	hex := MustGet(Hexahedron)
	// Face 4 is the bottom face, traversed clockwise seen from outside
	X, err = hex.MapToReferenceSubcell(utils.NewMatrix(1, 2, []float64{0.5, -0.5}), 2, 4)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-0.5, 0.5, -1}, X.Row(0), 1.e-15)

	_, err = quad.MapToReferenceSubcell(utils.NewMatrix(1, 2), 1, 0)
	assert.Error(t, err)
	_, err = quad.MapToReferenceSubcell(utils.NewMatrix(1, 1), 1, 4)
	assert.Error(t, err)
}

func TestContains(t *testing.T) {
	for key, want := range map[Key][2]bool{
		Line:          {true, true},
		Triangle:      {true, false},
		Quadrilateral: {false, true},
		Tetrahedron:   {true, false},
		Hexahedron:    {false, true},
	} {
		ct := MustGet(key)
		assert.Equal(t, want, [2]bool{ct.IsSimplex(), ct.IsTensor()}, key.String())
	}
	hex := MustGet(Hexahedron)
	assert.True(t, hex.Contains([]float64{-1, 1, 0.3}, 1.e-14))
	assert.False(t, hex.Contains([]float64{0, 0, 1.1}, 1.e-14))
	tet := MustGet(Tetrahedron)
	assert.True(t, tet.Contains([]float64{0.2, 0.3, 0.5}, 1.e-14))
	assert.False(t, tet.Contains([]float64{0.2, 0.3, 0.6}, 1.e-14))
	assert.InDeltaSlice(t, []float64{0, 0.2, 0.3, 0.5}, tet.Barycentric([]float64{0.2, 0.3, 0.5}), 1.e-15)
}
