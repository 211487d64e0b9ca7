package dspmv

import "github.com/james-bowman/dspmv/comm"

// vectorTag is the Send/Recv tag DistributeDenseVector uses; there is
// only ever one kind of payload moving through this pair per call, so
// a single fixed tag is sufficient.
const vectorTag = 1

// DistributeCSR scatters a global CSR matrix known to root into each
// rank's local DistributedCSR block, per table. On root, rows, columns,
// rowStarts (length rows+1, 0-based offsets into colIndexes/values),
// colIndexes and values carry the full matrix; on every other rank they
// are ignored and may be nil. The returned block's RowStarts follow the
// same 0-based-local convention as every other DistributedCSR.
func DistributeCSR(rows, columns int, rowStarts, colIndexes []int, values []complex128, table PartitionTable, root, rank int, cm comm.Comm) (*DistributedCSR, error) {
	if table == nil || table.Ranks() != cm.Size() {
		return nil, newError(ShapeMismatch, "DistributeCSR", errBadPartition)
	}

	dims := []int{rows, columns}
	if err := cm.BcastInts(root, dims); err != nil {
		return nil, newError(TransportError, "DistributeCSR", err)
	}
	rows, columns = dims[0], dims[1]

	ranks := table.Ranks()
	localLen := table.RowCount(rank) + 1
	localRowStarts := make([]int, localLen)

	// row_starts carries one element of overlap between adjacent
	// ranks so each rank also holds an inclusive upper bound; every
	// rank computes these counts/displacements itself from table, the
	// one thing every rank already has, rather than waiting on root.
	rowStartCounts := make([]int, ranks)
	rowStartDispls := make([]int, ranks)
	for r := 0; r < ranks; r++ {
		rowStartCounts[r] = table.RowCount(r) + 1
		rowStartDispls[r] = table[r] - 1
	}
	if err := cm.ScattervInts(root, rowStarts, rowStartCounts, rowStartDispls, localRowStarts); err != nil {
		return nil, newError(TransportError, "DistributeCSR", err)
	}

	localNNZ := localRowStarts[localLen-1] - localRowStarts[0]
	localColIndexes := make([]int, localNNZ)
	localValues := make([]complex128, localNNZ)

	// block_lens/block_disps for col_indexes/values can only be
	// derived from the global row_starts, which only root holds; root
	// fills them and broadcasts so every rank can frame its own
	// Scatterv call identically.
	blockLens := make([]int, ranks)
	blockDisps := make([]int, ranks)
	if rank == root {
		for r := 0; r < ranks; r++ {
			lo, hi := table.RowRange(r)
			blockDisps[r] = rowStarts[lo-1]
			blockLens[r] = rowStarts[hi-1] - rowStarts[lo-1]
		}
	}
	if err := cm.BcastInts(root, blockLens); err != nil {
		return nil, newError(TransportError, "DistributeCSR", err)
	}
	if err := cm.BcastInts(root, blockDisps); err != nil {
		return nil, newError(TransportError, "DistributeCSR", err)
	}

	if err := cm.ScattervInts(root, colIndexes, blockLens, blockDisps, localColIndexes); err != nil {
		return nil, newError(TransportError, "DistributeCSR", err)
	}
	if err := cm.Scatterv(root, values, blockLens, blockDisps, localValues); err != nil {
		return nil, newError(TransportError, "DistributeCSR", err)
	}

	base := localRowStarts[0]
	for i := range localRowStarts {
		localRowStarts[i] -= base
	}

	return &DistributedCSR{
		Rows:       rows,
		Columns:    columns,
		RowStarts:  localRowStarts,
		ColIndexes: localColIndexes,
		Values:     localValues,
		table:      table,
		rank:       rank,
	}, nil
}

// DistributeDenseVector hands each rank its local slice of a dense
// vector full, known in full only to root: root issues one
// non-blocking send per non-root rank, every non-root rank posts a
// matching blocking receive, and a barrier ends the routine so no rank
// proceeds while a send is still in flight. The returned slice is
// local row i at index i, corresponding to global row table[rank]+i.
func DistributeDenseVector(full []complex128, table PartitionTable, root, rank int, cm comm.Comm) ([]complex128, error) {
	lo, hi := table.RowRange(rank)
	local := make([]complex128, hi-lo)

	if rank == root {
		for r := 0; r < table.Ranks(); r++ {
			if r == root {
				rlo, rhi := table.RowRange(root)
				copy(local, full[rlo-1:rhi-1])
				continue
			}
			rlo, rhi := table.RowRange(r)
			if err := cm.Send(r, vectorTag, full[rlo-1:rhi-1]); err != nil {
				return nil, newError(TransportError, "DistributeDenseVector", err)
			}
		}
	} else {
		if err := cm.Recv(root, vectorTag, local); err != nil {
			return nil, newError(TransportError, "DistributeDenseVector", err)
		}
	}

	if err := cm.Barrier(); err != nil {
		return nil, newError(TransportError, "DistributeDenseVector", err)
	}
	return local, nil
}

// GatherDenseVector is the inverse of DistributeDenseVector: every
// rank contributes its local slice and root receives the concatenated
// full vector, using an alltoallv-style gather whose per-rank lengths
// and displacements come straight from table. The result is nil on
// every non-root rank.
func GatherDenseVector(local []complex128, table PartitionTable, root, rank int, cm comm.Comm) ([]complex128, error) {
	ranks := table.Ranks()
	recvCounts := make([]int, ranks)
	recvDispls := make([]int, ranks)
	for r := 0; r < ranks; r++ {
		lo, hi := table.RowRange(r)
		recvCounts[r] = hi - lo
		recvDispls[r] = lo - 1
	}

	var full []complex128
	if rank == root {
		full = make([]complex128, table.Rows())
	}
	if err := cm.Gatherv(root, local, full, recvCounts, recvDispls); err != nil {
		return nil, newError(TransportError, "GatherDenseVector", err)
	}
	return full, nil
}

// DistributeDenseMatrix row-block scatters a dense matrix full (root
// only, row-major with cols columns) into each rank's row slice,
// broadcasting the column count first so non-root ranks can size their
// receive buffer without out-of-band knowledge.
func DistributeDenseMatrix(full []complex128, cols int, table PartitionTable, root, rank int, cm comm.Comm) ([]complex128, int, error) {
	colsBuf := []int{cols}
	if err := cm.BcastInts(root, colsBuf); err != nil {
		return nil, 0, newError(TransportError, "DistributeDenseMatrix", err)
	}
	cols = colsBuf[0]

	ranks := table.Ranks()
	sendCounts := make([]int, ranks)
	sendDispls := make([]int, ranks)
	for r := 0; r < ranks; r++ {
		lo, hi := table.RowRange(r)
		sendCounts[r] = (hi - lo) * cols
		sendDispls[r] = (lo - 1) * cols
	}

	lo, hi := table.RowRange(rank)
	local := make([]complex128, (hi-lo)*cols)
	if err := cm.Scatterv(root, full, sendCounts, sendDispls, local); err != nil {
		return nil, 0, newError(TransportError, "DistributeDenseMatrix", err)
	}
	return local, cols, nil
}

// GatherDenseMatrix is the inverse of DistributeDenseMatrix. The
// reference this core generalises collects partial matrices on root
// via probe+recv so that senders never block waiting on each other;
// the in-process transport's rendezvous collectives make that
// ordering concern moot; Gatherv is used directly instead.
func GatherDenseMatrix(local []complex128, cols int, table PartitionTable, root, rank int, cm comm.Comm) ([]complex128, error) {
	ranks := table.Ranks()
	recvCounts := make([]int, ranks)
	recvDispls := make([]int, ranks)
	for r := 0; r < ranks; r++ {
		lo, hi := table.RowRange(r)
		recvCounts[r] = (hi - lo) * cols
		recvDispls[r] = (lo - 1) * cols
	}

	var full []complex128
	if rank == root {
		full = make([]complex128, table.Rows()*cols)
	}
	if err := cm.Gatherv(root, local, full, recvCounts, recvDispls); err != nil {
		return nil, newError(TransportError, "GatherDenseMatrix", err)
	}
	return full, nil
}
