package basis

import (
	"github.com/pkg/errors"

	"github.com/notargets/feorient/polynomials"
	"github.com/notargets/feorient/topology"
	"github.com/notargets/feorient/utils"
)

// modalSpace is an orthonormal hierarchical basis of the full polynomial
// space a nodal basis interpolates in: P_p on simplices, Q_p on tensor cells.
type modalSpace struct {
	key    topology.Key
	degree int
	// modes[m] holds the polynomial order of mode m in each direction
	modes [][3]int
}

func newModalSpace(key topology.Key, degree int) (ms *modalSpace, err error) {
	ms = &modalSpace{key: key, degree: degree}
	p := degree
	switch key {
	case topology.Line:
		for i := 0; i <= p; i++ {
			ms.modes = append(ms.modes, [3]int{i})
		}
	case topology.Quadrilateral:
		for j := 0; j <= p; j++ {
			for i := 0; i <= p; i++ {
				ms.modes = append(ms.modes, [3]int{i, j})
			}
		}
	case topology.Hexahedron:
		for k := 0; k <= p; k++ {
			for j := 0; j <= p; j++ {
				for i := 0; i <= p; i++ {
					ms.modes = append(ms.modes, [3]int{i, j, k})
				}
			}
		}
	case topology.Triangle:
		for i := 0; i <= p; i++ {
			for j := 0; j <= p-i; j++ {
				ms.modes = append(ms.modes, [3]int{i, j})
			}
		}
	case topology.Tetrahedron:
		for i := 0; i <= p; i++ {
			for j := 0; j <= p-i; j++ {
				for k := 0; k <= p-i-j; k++ {
					ms.modes = append(ms.modes, [3]int{i, j, k})
				}
			}
		}
	default:
		err = errors.Errorf("no modal space on %v", key)
	}
	return
}

func (ms *modalSpace) size() int { return len(ms.modes) }

// eval returns the NumPoints × size matrix of mode values, or of the mode
// derivatives in direction dir when dir >= 0.
func (ms *modalSpace) eval(points utils.Matrix, dir int) (Phi utils.Matrix) {
	np, dim := points.Dims()
	Phi = utils.NewMatrix(np, ms.size())
	coords := make([][]float64, dim)
	for d := range coords {
		coords[d] = points.Col(d)
	}
	switch ms.key {
	case topology.Line, topology.Quadrilateral, topology.Hexahedron:
		for m, mode := range ms.modes {
			col := utils.ConstArray(np, 1)
			for d := 0; d < dim; d++ {
				var f []float64
				if d == dir {
					f = polynomials.GradJacobiP(coords[d], 0, 0, mode[d])
				} else {
					f = polynomials.JacobiP(coords[d], 0, 0, mode[d])
				}
				for q := range col {
					col[q] *= f[q]
				}
			}
			Phi.SetCol(m, col)
		}
	case topology.Triangle, topology.Tetrahedron:
		// The unit simplex maps to the (-1,1) simplex by r = 2x-1
		rst := make([][]float64, dim)
		for d := range rst {
			rst[d] = make([]float64, np)
			for q, x := range coords[d] {
				rst[d][q] = 2*x - 1
			}
		}
		for m, mode := range ms.modes {
			var col []float64
			if ms.key == topology.Triangle {
				if dir < 0 {
					col = polynomials.Simplex2DP(rst[0], rst[1], mode[0], mode[1])
				} else {
					ddr, dds := polynomials.GradSimplex2DP(rst[0], rst[1], mode[0], mode[1])
					col = [][]float64{ddr, dds}[dir]
				}
			} else {
				if dir < 0 {
					col = polynomials.Simplex3DP(rst[0], rst[1], rst[2], mode[0], mode[1], mode[2])
				} else {
					ddr, dds, ddt := polynomials.GradSimplex3DP(rst[0], rst[1], rst[2], mode[0], mode[1], mode[2])
					col = [][]float64{ddr, dds, ddt}[dir]
				}
			}
			if dir >= 0 {
				for q := range col {
					col[q] *= 2
				}
			}
			Phi.SetCol(m, col)
		}
	}
	return
}
