package dspmv

import (
	"fmt"
	"testing"

	"github.com/james-bowman/dspmv/comm"
)

func TestDistributeGatherDenseVector(t *testing.T) {
	const root = 1
	full := []complex128{10, 20, 30, 40, 50, 60, 70}
	table, _ := GeneratePartitionTable(len(full), 3)

	runAcrossRanks(t, 3, func(rank int, cm comm.Comm) error {
		var in []complex128
		if rank == root {
			in = full
		}
		local, err := DistributeDenseVector(in, table, root, rank, cm)
		if err != nil {
			return err
		}
		lo, hi := table.RowRange(rank)
		for i, want := range full[lo-1 : hi-1] {
			if local[i] != want {
				return fmt.Errorf("rank %d: local[%d] = %v, want %v", rank, i, local[i], want)
			}
		}

		gathered, err := GatherDenseVector(local, table, root, rank, cm)
		if err != nil {
			return err
		}
		if rank != root {
			return nil
		}
		for i, want := range full {
			if gathered[i] != want {
				return fmt.Errorf("gathered[%d] = %v, want %v", i, gathered[i], want)
			}
		}
		return nil
	})
}

func TestDistributeGatherDenseMatrix(t *testing.T) {
	const root = 0
	const cols = 2
	full := []complex128{
		1, 2,
		3, 4,
		5, 6,
		7, 8,
		9, 10,
	}
	table, _ := GeneratePartitionTable(5, 2)

	runAcrossRanks(t, 2, func(rank int, cm comm.Comm) error {
		var in []complex128
		if rank == root {
			in = full
		}
		local, gotCols, err := DistributeDenseMatrix(in, cols, table, root, rank, cm)
		if err != nil {
			return err
		}
		if gotCols != cols {
			return fmt.Errorf("rank %d: cols = %d, want %d", rank, gotCols, cols)
		}
		lo, hi := table.RowRange(rank)
		for i, want := range full[(lo-1)*cols : (hi-1)*cols] {
			if local[i] != want {
				return fmt.Errorf("rank %d: local[%d] = %v, want %v", rank, i, local[i], want)
			}
		}

		gathered, err := GatherDenseMatrix(local, cols, table, root, rank, cm)
		if err != nil {
			return err
		}
		if rank != root {
			return nil
		}
		for i, want := range full {
			if gathered[i] != want {
				return fmt.Errorf("gathered[%d] = %v, want %v", i, gathered[i], want)
			}
		}
		return nil
	})
}

func TestDistributeCSR(t *testing.T) {
	const root = 0
	rows, cols, rs, ci, v := shiftMatrixGlobalCSR()
	table, _ := GeneratePartitionTable(rows, 3)

	runAcrossRanks(t, 3, func(rank int, cm comm.Comm) error {
		var lrs, lci []int
		var lv []complex128
		if rank == root {
			lrs, lci, lv = rs, ci, v
		}
		local, err := DistributeCSR(rows, cols, lrs, lci, lv, table, root, rank, cm)
		if err != nil {
			return err
		}
		want := localCSRFromGlobal(rows, cols, rs, ci, v, table, rank)
		if len(local.ColIndexes) != len(want.ColIndexes) {
			return fmt.Errorf("rank %d: nnz = %d, want %d", rank, len(local.ColIndexes), len(want.ColIndexes))
		}
		for i := range want.ColIndexes {
			if local.ColIndexes[i] != want.ColIndexes[i] || local.Values[i] != want.Values[i] {
				return fmt.Errorf("rank %d: entry %d = (%d,%v), want (%d,%v)", rank, i, local.ColIndexes[i], local.Values[i], want.ColIndexes[i], want.Values[i])
			}
		}
		return nil
	})
}
