package orientation

import (
	"context"
	"fmt"

	"github.com/dgraph-io/ristretto/v2"
	"go.uber.org/zap"

	"github.com/notargets/feorient/basis"
	"github.com/notargets/feorient/lattice"
	"github.com/notargets/feorient/topology"
)

// TableKey identifies the nodal basis a cached table was built for.
type TableKey struct {
	Cell      topology.Key
	Degree    int
	PointType lattice.PointType
}

func (k TableKey) String() string {
	return fmt.Sprintf("%v/%d/%v", k.Cell, k.Degree, k.PointType)
}

// TableCache memoizes orientation tables of nodal bases. Its cost unit is
// one stored float64.
type TableCache struct {
	cache *ristretto.Cache[string, *Table]
	opts  Options
}

func NewTableCache(maxCost int64, opts Options) (tc *TableCache, err error) {
	tc = &TableCache{opts: opts.withDefaults()}
	tc.cache, err = ristretto.NewCache(&ristretto.Config[string, *Table]{
		NumCounters:        1000,
		MaxCost:            maxCost,
		BufferItems:        64,
		Metrics:            true,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}
	return
}

// Get returns the table for key, building and caching it on a miss.
func (tc *TableCache) Get(ctx context.Context, key TableKey) (tbl *Table, err error) {
	if tbl, ok := tc.cache.Get(key.String()); ok {
		return tbl, nil
	}
	var (
		ct       *topology.CellTopology
		cell     *basis.Nodal
		subcells map[topology.Key]basis.Basis
	)
	if ct, err = topology.Get(key.Cell); err != nil {
		return
	}
	if cell, err = basis.NewNodal(ct, key.Degree, key.PointType); err != nil {
		return
	}
	if subcells, err = NewSubcellBases(ct, key.Degree, key.PointType); err != nil {
		return
	}
	if tbl, err = BuildTable(ctx, cell, subcells, tc.opts); err != nil {
		return
	}
	if !tc.cache.Set(key.String(), tbl, tbl.cost()) {
		tc.opts.Logger.Debug("table not admitted to cache", zap.Stringer("key", key))
	}
	tc.cache.Wait()
	return
}

func (tc *TableCache) HitRatio() float64 { return tc.cache.Metrics.Ratio() }

func (tc *TableCache) Close() { tc.cache.Close() }

func (tbl *Table) cost() (c int64) {
	for d := range tbl.blocks {
		for _, blk := range tbl.blocks[d] {
			nr, nc := blk.Dims()
			c += int64(nr * nc)
		}
	}
	if c == 0 {
		c = 1
	}
	return
}
