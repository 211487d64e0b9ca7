package dspmv

import (
	"github.com/james-bowman/dspmv/comm"
	"gonum.org/v1/gonum/mat"
)

// Sparser is the minimal shape every sparse format in this package
// satisfies: what a row-partitioned, non-randomly-addressable
// distributed matrix can actually offer, its dimensions and its
// nonzero count, rather than the full gonum mat.Matrix interface.
// DistributedCSR, COO and DOK all implement it.
type Sparser interface {
	Dims() (r, c int)
	NNZ() int
}

var (
	_ Sparser = (*DistributedCSR)(nil)
	_ Sparser = (*COO)(nil)
	_ Sparser = (*DOK)(nil)
)

// Dims returns the matrix's global dimensions.
func (c *DistributedCSR) Dims() (int, int) { return c.Rows, c.Columns }

// ToDense gathers c's rows to root and returns the full matrix as a
// gonum mat.CDense, for use as a serial oracle in tests comparing a
// distributed product against a dense reference computation; it is
// not part of any distributed hot path. The result is nil on every
// non-root rank.
func (c *DistributedCSR) ToDense(cm comm.Comm, root int) (*mat.CDense, error) {
	rows := c.LocalRowCount()
	local := make([]complex128, rows*c.Columns)
	for i := 0; i < rows; i++ {
		for j := c.RowStarts[i]; j < c.RowStarts[i+1]; j++ {
			col := c.ColIndexes[j] - 1
			local[i*c.Columns+col] = c.Values[j]
		}
	}

	full, err := GatherDenseMatrix(local, c.Columns, c.table, root, c.rank, cm)
	if err != nil {
		return nil, err
	}
	if c.rank != root {
		return nil, nil
	}
	return mat.NewCDense(c.Rows, c.Columns, full), nil
}
