package lattice

import (
	"testing"

	"github.com/notargets/feorient/topology"
	"github.com/notargets/feorient/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSize(t *testing.T) {
	var (
		line = topology.MustGet(topology.Line)
		tri  = topology.MustGet(topology.Triangle)
		quad = topology.MustGet(topology.Quadrilateral)
		tet  = topology.MustGet(topology.Tetrahedron)
		hex  = topology.MustGet(topology.Hexahedron)
	)
	for p := 1; p <= 10; p++ {
		n, err := Size(line, p, 1)
		require.NoError(t, err)
		assert.Equal(t, p-1, n)
		n, _ = Size(tri, p, 1)
		assert.Equal(t, nonNeg((p-1)*(p-2)/2), n)
		n, _ = Size(quad, p, 1)
		assert.Equal(t, (p-1)*(p-1), n)
		n, _ = Size(hex, p, 0)
		assert.Equal(t, (p+1)*(p+1)*(p+1), n)
		n, _ = Size(tet, p, 0)
		assert.Equal(t, (p+1)*(p+2)*(p+3)/6, n)
	}
	n, _ := Size(tet, 4, 1)
	assert.Equal(t, 1, n)
	n, _ = Size(tri, 2, 1)
	assert.Equal(t, 0, n)

	_, err := Size(topology.MustGet(topology.Point), 2, 0)
	assert.Error(t, err)
	_, err = Size(line, 0, 0)
	assert.Error(t, err)
}

func TestPointsMatchSize(t *testing.T) {
	for _, key := range []topology.Key{topology.Line, topology.Triangle, topology.Quadrilateral,
		topology.Tetrahedron, topology.Hexahedron} {
		ct := topology.MustGet(key)
		for _, pt := range []PointType{Equispaced, WarpBlend} {
			for p := 1; p <= 7; p++ {
				for offset := 0; offset <= 1; offset++ {
					n, err := Size(ct, p, offset)
					require.NoError(t, err)
					P, err := Points(ct, p, offset, pt)
					require.NoError(t, err)
					nr, nc := P.Dims()
					assert.Equal(t, n, nr, "%s %v p=%d offset=%d", key, pt, p, offset)
					if n == 0 {
						assert.True(t, P.IsEmpty())
						continue
					}
					assert.Equal(t, ct.Dimension(), nc)
					for i := 0; i < nr; i++ {
						assert.True(t, ct.Contains(P.Row(i), utils.NODETOL), "%s %v", key, P.Row(i))
					}
				}
			}
		}
	}
}

func TestEquispacedPoints(t *testing.T) {
	P, err := Points(topology.MustGet(topology.Line), 5, 1, Equispaced)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-0.6, -0.2, 0.2, 0.6}, P.Col(0), 1.e-15)

	P, err = Points(topology.MustGet(topology.Triangle), 4, 1, Equispaced)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.25, 0.5, 0.25}, P.Col(0), 1.e-15)
	assert.InDeltaSlice(t, []float64{0.25, 0.25, 0.5}, P.Col(1), 1.e-15)

	// x varies fastest
	P, err = Points(topology.MustGet(topology.Quadrilateral), 3, 1, Equispaced)
	require.NoError(t, err)
	third := 1. / 3.
	assert.InDeltaSlice(t, []float64{-third, third, -third, third}, P.Col(0), 1.e-15)
	assert.InDeltaSlice(t, []float64{-third, -third, third, third}, P.Col(1), 1.e-15)
}

func TestWarpBlendPoints(t *testing.T) {
	// Order 4 Gauss-Lobatto interior points
	P, err := Points(topology.MustGet(topology.Line), 4, 1, WarpBlend)
	require.NoError(t, err)
	assert.InDelta(t, 0, P.At(1, 0), 1.e-14)
	assert.InDelta(t, -P.At(0, 0), P.At(2, 0), 1.e-14)
	assert.InDelta(t, 0.6546536707079771, P.At(2, 0), 1.e-12)

	// The single interior node of the order 3 triangle is the centroid
	P, err = Points(topology.MustGet(topology.Triangle), 3, 1, WarpBlend)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1. / 3., 1. / 3.}, P.Row(0), 1.e-12)
}

func TestNewPointType(t *testing.T) {
	pt, err := NewPointType("GLL")
	require.NoError(t, err)
	assert.Equal(t, WarpBlend, pt)
	pt, err = NewPointType("Equispaced")
	require.NoError(t, err)
	assert.Equal(t, Equispaced, pt)
	assert.Equal(t, "WarpBlend", WarpBlend.String())
	_, err = NewPointType("fekete")
	assert.Error(t, err)
}
