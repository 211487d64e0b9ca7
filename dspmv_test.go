package dspmv

import (
	"testing"

	"github.com/james-bowman/dspmv/comm"
)

// runAcrossRanks runs fn once per rank of an in-process comm.World of
// the given size, concurrently, failing the test if any rank returns
// an error.
func runAcrossRanks(t *testing.T, size int, fn func(rank int, cm comm.Comm) error) {
	t.Helper()
	world := comm.NewWorld(size)
	errs := make([]error, size)
	done := make(chan int, size)
	for r := 0; r < size; r++ {
		go func(r int) {
			errs[r] = fn(r, world[r])
			done <- r
		}(r)
	}
	for i := 0; i < size; i++ {
		<-done
	}
	for r, err := range errs {
		if err != nil {
			t.Fatalf("rank %d: %v", r, err)
		}
	}
}

// shiftMatrixGlobalCSR builds the 3x3 cyclic shift matrix: nonzeros at
// one-based (1,2)=1, (2,3)=1, (3,1)=1.
func shiftMatrixGlobalCSR() (rows, cols int, rowStarts, colIndexes []int, values []complex128) {
	coo := NewCOO(3, 3)
	coo.Set(0, 1, 1)
	coo.Set(1, 2, 1)
	coo.Set(2, 0, 1)
	rs, ci, v := coo.ToGlobalCSR()
	for i := range ci {
		ci[i]++
	}
	return 3, 3, rs, ci, v
}

// identityGlobalCSR builds the n x n identity matrix.
func identityGlobalCSR(n int) (rowStarts, colIndexes []int, values []complex128) {
	coo := NewCOO(n, n)
	for i := 0; i < n; i++ {
		coo.Set(i, i, 1)
	}
	rs, ci, v := coo.ToGlobalCSR()
	for i := range ci {
		ci[i]++
	}
	return rs, ci, v
}

// diagonalGlobalCSR builds an n x n diagonal matrix with value d on the
// diagonal.
func diagonalGlobalCSR(n int, d complex128) (rowStarts, colIndexes []int, values []complex128) {
	coo := NewCOO(n, n)
	for i := 0; i < n; i++ {
		coo.Set(i, i, d)
	}
	rs, ci, v := coo.ToGlobalCSR()
	for i := range ci {
		ci[i]++
	}
	return rs, ci, v
}

// localCSRFromGlobal slices rank's row-block directly out of a global
// 0-based-row-starts CSR and a partition table, without going through
// DistributeCSR's collectives - convenient for tests that only care
// about reconciliation/product behaviour given a known local block.
func localCSRFromGlobal(rows, cols int, rowStarts, colIndexes []int, values []complex128, table PartitionTable, rank int) *DistributedCSR {
	lo, hi := table.RowRange(rank)
	localRowStarts := append([]int(nil), rowStarts[lo-1:hi]...)
	base := localRowStarts[0]
	for i := range localRowStarts {
		localRowStarts[i] -= base
	}
	localColIndexes := append([]int(nil), colIndexes[rowStarts[lo-1]:rowStarts[hi-1]]...)
	localValues := append([]complex128(nil), values[rowStarts[lo-1]:rowStarts[hi-1]]...)

	c, err := NewDistributedCSR(rows, cols, table, rank, localRowStarts, localColIndexes, localValues)
	if err != nil {
		panic(err)
	}
	return c
}

// buildRandomHermitianCOO builds a random Hermitian sparse test
// matrix from triples; the builder itself is exported as
// BuildRandomHermitianCOO for non-test callers.
func buildRandomHermitianCOO(n, nnzPerRow int, seed uint64) *DOK {
	return BuildRandomHermitianCOO(n, nnzPerRow, seed)
}
