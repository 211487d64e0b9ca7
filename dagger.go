package dspmv

import (
	"github.com/james-bowman/dspmv/comm"
	"github.com/james-bowman/dspmv/internal/sortkernel"
)

// CsrDagger computes the distributed conjugate transpose of a square
// distributed CSR, returning a new DistributedCSR over the same
// partition table. a's own plan (if any) is not consulted and the
// result is not reconciled - ReconcileCommunications must be run again
// before the result is used in a product, as must SortCSR if a's
// caller needs strictly ascending columns (the dagger only guarantees
// rows are grouped, not that columns within a row are ascending).
func CsrDagger(a *DistributedCSR, cm comm.Comm) (*DistributedCSR, error) {
	if a.Rows != a.Columns {
		return nil, newError(UnsquareDagger, "CsrDagger", errNotSquare)
	}

	table := a.table
	ranks := table.Ranks()
	lo, _ := a.LocalRowRange()

	nnz := a.NNZ()
	rowOut := make([]int, nnz)
	colOut := make([]int, nnz)
	valOut := make([]complex128, nnz)

	sendCounts := make([]int, ranks)
	target := make([]int, nnz)
	k := 0
	for i := 0; i < a.LocalRowCount(); i++ {
		for j := a.RowStarts[i]; j < a.RowStarts[i+1]; j++ {
			col := a.ColIndexes[j]
			r := table.OwnerOf(col)
			target[k] = r
			sendCounts[r]++
			k++
		}
	}

	sendDisps := prefixSum(sendCounts)
	cursor := append([]int(nil), sendDisps...)
	k = 0
	for i := 0; i < a.LocalRowCount(); i++ {
		row := lo + i
		for j := a.RowStarts[i]; j < a.RowStarts[i+1]; j++ {
			col := a.ColIndexes[j]
			r := target[k]
			slot := cursor[r]
			// new row is the old column, new column is the old row;
			// the dagger conjugates the value.
			colOut[slot] = col
			rowOut[slot] = row
			valOut[slot] = complexConj(a.Values[j])
			cursor[r]++
			k++
		}
	}

	recCounts := make([]int, ranks)
	if err := cm.Alltoall(sendCounts, recCounts); err != nil {
		return nil, newError(TransportError, "CsrDagger", err)
	}
	recDisps := prefixSum(recCounts)
	totalRec := sumInts(recCounts)

	newRowIn := make([]int, totalRec)
	newColIn := make([]int, totalRec)
	newValIn := make([]complex128, totalRec)

	if err := cm.AlltoallvInts(colOut, sendCounts, sendDisps, newRowIn, recCounts, recDisps); err != nil {
		return nil, newError(TransportError, "CsrDagger", err)
	}
	if err := cm.AlltoallvInts(rowOut, sendCounts, sendDisps, newColIn, recCounts, recDisps); err != nil {
		return nil, newError(TransportError, "CsrDagger", err)
	}
	if err := cm.Alltoallv(valOut, sendCounts, sendDisps, newValIn, recCounts, recDisps); err != nil {
		return nil, newError(TransportError, "CsrDagger", err)
	}

	sortkernel.Triples(newRowIn, newColIn, newValIn)

	// row_starts is rebuilt as 0-based local offsets into the local
	// ColIndexes/Values arrays (the convention every other local
	// consumer - ReconcileCommunications, SpmvSeries, Spmm - assumes),
	// via a histogram over the received new-row values followed by a
	// prefix sum.
	newLo, _ := table.RowRange(a.rank)
	rowStarts := make([]int, a.LocalRowCount()+1)
	for _, r := range newRowIn {
		rowStarts[r-newLo+1]++
	}
	for i := 1; i < len(rowStarts); i++ {
		rowStarts[i] += rowStarts[i-1]
	}

	return &DistributedCSR{
		Rows:       a.Rows,
		Columns:    a.Columns,
		Tag:        a.Tag,
		RowStarts:  rowStarts,
		ColIndexes: newColIn,
		Values:     newValIn,
		table:      table,
		rank:       a.rank,
	}, nil
}

func complexConj(z complex128) complex128 {
	return complex(real(z), -imag(z))
}
