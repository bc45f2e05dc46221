package orientation

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/notargets/feorient/basis"
	"github.com/notargets/feorient/lattice"
	"github.com/notargets/feorient/topology"
	"github.com/notargets/feorient/utils"
)

// DefaultDropTolerance is the magnitude below which entries are dropped
// from the sparse copies used by Table.Apply.
const DefaultDropTolerance = 1.e-14

type Options struct {
	Workers       int
	DropTolerance float64
	Logger        *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Workers < 1 {
		o.Workers = 1
	}
	if o.DropTolerance <= 0 {
		o.DropTolerance = DefaultDropTolerance
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Table holds every orientation matrix of one cell basis. The matrices of
// subcell (dim, ord) are stacked by orientation code into one
// (NumOrientations·n) × n block.
type Table struct {
	cell   basis.Basis
	size   [3]int            // n per subcell dimension
	blocks [3][]utils.Matrix // [dim][ord]
	sparse [3][][]utils.CSR  // [dim][ord][ort]
}

type job struct {
	dim, ord, ort int
}

// NewSubcellBases builds nodal bases of degree on every subcell shape of ct
// that carries orientations.
func NewSubcellBases(ct *topology.CellTopology, degree int, pointType lattice.PointType) (bases map[topology.Key]basis.Basis, err error) {
	bases = make(map[topology.Key]basis.Basis)
	for d := 1; d < ct.Dimension(); d++ {
		for ord := 0; ord < ct.SubcellCount(d); ord++ {
			sct, _ := ct.SubcellTopology(d, ord)
			if _, present := bases[sct.Key()]; present {
				continue
			}
			var b *basis.Nodal
			if b, err = basis.NewNodal(sct, degree, pointType); err != nil {
				return nil, err
			}
			bases[sct.Key()] = b
		}
	}
	return
}

// BuildTable computes the orientation matrix of every oriented subcell of
// cellBasis under every orientation code. subcellBases supplies the basis of
// each subcell shape. The work is split over opts.Workers goroutines; the
// first failure cancels the rest and no table is returned.
func BuildTable(ctx context.Context, cellBasis basis.Basis, subcellBases map[topology.Key]basis.Basis,
	opts Options) (tbl *Table, err error) {
	var (
		ct   = cellBasis.Topology()
		jobs []job
	)
	opts = opts.withDefaults()
	tbl = &Table{cell: cellBasis}
	for d := 1; d < ct.Dimension(); d++ {
		nSub := ct.SubcellCount(d)
		tbl.blocks[d] = make([]utils.Matrix, nSub)
		tbl.sparse[d] = make([][]utils.CSR, nSub)
		for ord := 0; ord < nSub; ord++ {
			var n int
			if n, err = CoeffMatrixSize(cellBasis, d, ord); err != nil {
				return nil, err
			}
			sct, _ := ct.SubcellTopology(d, ord)
			if _, present := subcellBases[sct.Key()]; !present {
				return nil, configErrorf("no basis supplied for %s subcells", sct.Name())
			}
			tbl.size[d] = n
			if n == 0 {
				continue
			}
			nOrt := NumOrientations(sct.Key())
			tbl.blocks[d][ord] = utils.NewMatrix(nOrt*n, n)
			tbl.sparse[d][ord] = make([]utils.CSR, nOrt)
			for ort := 0; ort < nOrt; ort++ {
				jobs = append(jobs, job{d, ord, ort})
			}
		}
	}
	if len(jobs) == 0 {
		opts.Logger.Debug("no oriented DOFs", zap.String("cell", ct.Name()), zap.Int("degree", cellBasis.Degree()))
		return
	}
	pm := utils.NewPartitionMap(opts.Workers, len(jobs))
	eg, egCtx := errgroup.WithContext(ctx)
	for bn := 0; bn < pm.ParallelDegree; bn++ {
		bn := bn
		kMin, kMax := pm.GetBucketRange(bn)
		eg.Go(func() error {
			for _, jb := range jobs[kMin:kMax] {
				if err := egCtx.Err(); err != nil {
					return err
				}
				if err := tbl.compute(jb, subcellBases); err != nil {
					return err
				}
			}
			opts.Logger.Debug("bucket done", zap.Int("bucket", bn), zap.Int("jobs", pm.GetBucketDimension(bn)))
			return nil
		})
	}
	if err = eg.Wait(); err != nil {
		return nil, err
	}
	for _, jb := range jobs {
		tbl.sparse[jb.dim][jb.ord][jb.ort] = utils.NewCSRFromDense(tbl.Matrix(jb.dim, jb.ord, jb.ort), opts.DropTolerance)
	}
	opts.Logger.Info("orientation table built",
		zap.String("cell", ct.Name()),
		zap.Int("degree", cellBasis.Degree()),
		zap.Int("matrices", len(jobs)),
		zap.Int("workers", pm.ParallelDegree))
	return
}

// compute writes the matrix of jb into its own rows of the subcell block
func (tbl *Table) compute(jb job, subcellBases map[topology.Key]basis.Basis) error {
	n := tbl.size[jb.dim]
	sct, _ := tbl.cell.Topology().SubcellTopology(jb.dim, jb.ord)
	out := tbl.blocks[jb.dim][jb.ord].View(jb.ort*n, (jb.ort+1)*n, 0, n)
	return CoeffMatrix(out, subcellBases[sct.Key()], tbl.cell, jb.dim, jb.ord, jb.ort)
}

func (tbl *Table) Cell() basis.Basis { return tbl.cell }

// Size is the matrix dimension for subcells of dimension dim.
func (tbl *Table) Size(dim int) int {
	if dim < 1 || dim > 2 {
		return 0
	}
	return tbl.size[dim]
}

func (tbl *Table) check(dim, ord, ort int) error {
	ct := tbl.cell.Topology()
	if dim < 1 || dim >= ct.Dimension() || ord < 0 || ord >= ct.SubcellCount(dim) {
		return configErrorf("%s has no oriented subcell (%d,%d)", ct.Name(), dim, ord)
	}
	sct, _ := ct.SubcellTopology(dim, ord)
	if n := NumOrientations(sct.Key()); ort < 0 || ort >= n {
		return configErrorf("orientation code %d out of range [0,%d)", ort, n)
	}
	return nil
}

// Matrix returns a copy of the orientation matrix of subcell (dim, ord)
// under code ort. Subcells without interior DOFs return an empty Matrix.
func (tbl *Table) Matrix(dim, ord, ort int) utils.Matrix {
	if tbl.check(dim, ord, ort) != nil || tbl.size[dim] == 0 {
		return utils.Matrix{}
	}
	n := tbl.size[dim]
	return tbl.blocks[dim][ord].Slice(ort*n, (ort+1)*n, 0, n)
}

// Apply maps the coefficients of the DOFs interior to subcell (dim, ord),
// given in the frame of a neighbour related by code ort, to this cell's
// frame.
func (tbl *Table) Apply(dim, ord, ort int, coeffs []float64) (out []float64, err error) {
	if err = tbl.check(dim, ord, ort); err != nil {
		return
	}
	n := tbl.size[dim]
	if len(coeffs) != n {
		err = configErrorf("subcell (%d,%d) has %d interior DOFs, have %d coefficients", dim, ord, n, len(coeffs))
		return
	}
	if n == 0 {
		return []float64{}, nil
	}
	return tbl.sparse[dim][ord][ort].MulVec(coeffs, false), nil
}
