// Command dspmv-bench builds a random sparse Hermitian matrix,
// partitions it across N in-process ranks, and times repeated
// spmv_series iterations against it - the caller shape a quantum
// stochastic walk simulator would exercise, without the simulator
// itself.
//
// Usage:
//
//	dspmv-bench -n 2000 -nnz-per-row 6 -ranks 4 -iterations 20
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/james-bowman/dspmv"
	"github.com/james-bowman/dspmv/comm"
)

var (
	n          = flag.Int("n", 2000, "matrix dimension (n x n)")
	nnzPerRow  = flag.Int("nnz-per-row", 6, "off-diagonal nonzeros per row before symmetrization")
	ranks      = flag.Int("ranks", 4, "number of in-process ranks to partition across")
	iterations = flag.Int("iterations", 20, "number of spmv_series iterations to apply")
	seed       = flag.Uint64("seed", 1, "random seed for the Hermitian matrix builder")
)

func main() {
	flag.Parse()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *n <= 0 || *ranks <= 0 || *iterations <= 0 {
		logger.Error("invalid flags", "n", *n, "ranks", *ranks, "iterations", *iterations)
		os.Exit(1)
	}

	if err := run(logger); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	logger.Info("building matrix", "n", *n, "nnz_per_row", *nnzPerRow, "seed", *seed)
	dok := dspmv.BuildRandomHermitianCOO(*n, *nnzPerRow, *seed)
	rowStarts, colIndexes, values := dok.ToGlobalCSR()
	for i := range colIndexes {
		colIndexes[i]++
	}

	table, err := dspmv.GeneratePartitionTable(*n, *ranks)
	if err != nil {
		return fmt.Errorf("partition table: %w", err)
	}

	world := comm.NewWorld(*ranks)
	errs := make([]error, *ranks)
	elapsed := make([]time.Duration, *ranks)
	done := make(chan int, *ranks)

	const root = 0
	for r := 0; r < *ranks; r++ {
		go func(r int) {
			errs[r], elapsed[r] = runRank(r, root, *n, rowStarts, colIndexes, values, table, *iterations, world[r])
			done <- r
		}(r)
	}
	for i := 0; i < *ranks; i++ {
		<-done
	}
	for r, err := range errs {
		if err != nil {
			return fmt.Errorf("rank %d: %w", r, err)
		}
	}

	logger.Info("finished", "rank0_elapsed", elapsed[root])
	return nil
}

func runRank(rank, root, n int, rowStarts, colIndexes []int, values []complex128, table dspmv.PartitionTable, iterations int, cm comm.Comm) (error, time.Duration) {
	var lrs, lci []int
	var lv []complex128
	if rank == root {
		lrs, lci, lv = rowStarts, colIndexes, values
	}
	local, err := dspmv.DistributeCSR(n, n, lrs, lci, lv, table, root, rank, cm)
	if err != nil {
		return err, 0
	}
	dspmv.SortCSR(local)
	if err := dspmv.ReconcileCommunications(local, cm); err != nil {
		return err, 0
	}

	lo, hi := local.LocalRowRange()
	u := make([]complex128, hi-lo)
	for i := range u {
		u[i] = complex(1, 0)
	}
	v := make([]complex128, len(u))

	start := time.Now()
	for it := 1; it <= iterations; it++ {
		if err := dspmv.SpmvSeries(local, u, 1, it, iterations, v, cm); err != nil {
			return err, 0
		}
		u, v = v, u
	}
	elapsed := time.Since(start)

	if err := dspmv.SpmvSeries(local, nil, 0, 0, 0, nil, cm); err != nil {
		return err, 0
	}
	return nil, elapsed
}
