package dspmv

// DistributedCSR is this rank's row-block of a globally row-partitioned
// complex128 sparse matrix in Compressed Sparse Row form: rows and
// columns, an index-pointer array, a column-index array, and a value
// array, extended with the one-based global addressing and
// communication plan a distributed product needs.
//
// Row and column indices are one-based and global: ColIndexes entries
// are global column numbers. RowStarts is the exception: its entries
// are 0-based offsets into this rank's own ColIndexes/Values.
//
// A DistributedCSR is produced by DistributeCSR, by CsrDagger, or by a
// caller building one directly (e.g. from a DOK/COO via ToGlobalCSR and
// NewDistributedCSR), and is
// not safe for concurrent use by more than one goroutine at a time:
// there is exactly one in-flight call per rank.
type DistributedCSR struct {
	// Rows and Columns are the matrix's global dimensions.
	Rows, Columns int

	// Tag is a two-character structural tag the caller may use to
	// distinguish matrix roles (e.g. "ge" general, "he" Hermitian);
	// the core does not interpret it.
	Tag string

	// RowStarts has length LocalRowCount()+1, 0-based offsets into
	// ColIndexes/Values: RowStarts[0] == 0, and
	// RowStarts[i+1]-RowStarts[i] is local row i's nonzero count.
	RowStarts []int

	// ColIndexes holds the one-based global column index of each
	// local nonzero, len(ColIndexes) == len(Values). Within each
	// local row, strictly ascending once SortCSR has run.
	ColIndexes []int

	// Values holds the complex128 value of each local nonzero,
	// parallel to ColIndexes.
	Values []complex128

	// table and rank are filled in by whatever built this handle
	// (DistributeCSR, CsrDagger, or NewDistributedCSR) so that
	// row-range queries don't need the caller to re-pass the
	// partition table on every call.
	table PartitionTable
	rank  int

	plan  *commPlan
	cache *productCache
}

// NewDistributedCSR builds a DistributedCSR directly from already-
// partitioned local arrays, for callers constructing a rank's block
// without going through DistributeCSR (e.g. from a DOK/COO builder, or
// a test fixture). rowStarts, colIndexes and values are used as-is
// (not copied); the caller must not retain concurrent references.
func NewDistributedCSR(rows, columns int, table PartitionTable, rank int, rowStarts, colIndexes []int, values []complex128) (*DistributedCSR, error) {
	if table == nil || rank < 0 || rank >= table.Ranks() {
		return nil, newError(ShapeMismatch, "NewDistributedCSR", errBadPartition)
	}
	if len(rowStarts) != table.RowCount(rank)+1 {
		return nil, newError(ShapeMismatch, "NewDistributedCSR", errLenMismatch)
	}
	if len(colIndexes) != len(values) {
		return nil, newError(ShapeMismatch, "NewDistributedCSR", errLenMismatch)
	}

	return &DistributedCSR{
		Rows:       rows,
		Columns:    columns,
		RowStarts:  rowStarts,
		ColIndexes: colIndexes,
		Values:     values,
		table:      table,
		rank:       rank,
	}, nil
}

// Table returns the partition table this CSR block was built against.
func (c *DistributedCSR) Table() PartitionTable { return c.table }

// Rank returns the rank owning this block.
func (c *DistributedCSR) Rank() int { return c.rank }

// LocalRowCount returns the number of rows this rank owns.
func (c *DistributedCSR) LocalRowCount() int {
	return c.table.RowCount(c.rank)
}

// LocalRowRange returns the one-based [lo, hi) global row range this
// rank owns.
func (c *DistributedCSR) LocalRowRange() (lo, hi int) {
	return c.table.RowRange(c.rank)
}

// NNZ returns the number of local nonzero entries.
func (c *DistributedCSR) NNZ() int {
	return len(c.Values)
}

// Reconciled reports whether ReconcileCommunications has attached a
// communication plan that is still valid for the current sparsity
// pattern (the caller must rerun ReconcileCommunications after any
// change, e.g. following CsrDagger).
func (c *DistributedCSR) Reconciled() bool {
	return c.plan != nil
}

// TotalReceived returns the number of extended-buffer slots this
// rank's plan will receive into, 0 if unreconciled.
func (c *DistributedCSR) TotalReceived() int {
	if c.plan == nil {
		return 0
	}
	return c.plan.totalRec
}

// ExtendedBufferSize returns LocalRowCount() + TotalReceived(), the
// size every extended operand buffer this CSR's product kernels build
// must be allocated to.
func (c *DistributedCSR) ExtendedBufferSize() int {
	return c.LocalRowCount() + c.TotalReceived()
}
