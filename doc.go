/*
Package dspmv implements a distributed-memory sparse matrix engine over
complex128 scalars: a row-block-partitioned Compressed Sparse Row
(CSR) matrix, the communication plan that lets its product kernels run
without per-iteration branching, and the product, transpose and
distribute/gather primitives a multi-rank quantum-stochastic-walk
simulator assembles them into.

The matrix lifecycle follows the same creational-then-operational
split as a single-process sparse library: build a matrix a row or
triplet at a time in DOK or COO format, convert it to a global CSR
(ToGlobalCSR), then hand it to DistributeCSR to scatter it across a
communicator group, one row-block per rank, as a DistributedCSR.

Before a DistributedCSR can take part in a product it must be sorted
(SortCSR) and reconciled (ReconcileCommunications), which inspects its
sparsity pattern once and attaches a plan describing which non-local
columns to fetch from which rank and where to place them in an
extended operand buffer. SpmvSeries and Spmm consume that plan every
iteration: stage outgoing values, alltoallv, then a branch-free local
accumulation loop addressing local and received operands through a
single remapped index.

CsrDagger computes the distributed conjugate transpose of a square
DistributedCSR by redistributing its triplets by new row and
rebuilding row_starts from the result; its output needs its own
SortCSR and ReconcileCommunications before use.

Every collective the package calls is abstracted behind comm.Comm; the
only implementation shipped is an in-process goroutine-per-rank
transport (comm.World), standing in for whatever real process launcher
and wire transport a caller's environment provides.
*/
package dspmv
