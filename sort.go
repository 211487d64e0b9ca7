package dspmv

import "github.com/james-bowman/dspmv/internal/sortkernel"

// SortCSR brings every local row of c into strictly ascending column
// order, permuting Values the same way. It must be called once after
// CSR construction (DistributeCSR does not sort on the caller's
// behalf) and again after CsrDagger, whose output is only grouped by
// new row, not sorted within it. ReconcileCommunications and the
// product kernels require this postcondition and report
// OrderingViolation if it does not hold.
func SortCSR(c *DistributedCSR) {
	for i := 0; i < c.LocalRowCount(); i++ {
		lo, hi := c.RowStarts[i], c.RowStarts[i+1]
		sortkernel.Pairs(c.ColIndexes[lo:hi], c.Values[lo:hi])
	}
}
