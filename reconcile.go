package dspmv

import "github.com/james-bowman/dspmv/comm"

// commPlan is the communication plan attached to a DistributedCSR by
// ReconcileCommunications: precomputed send/receive counts,
// displacements, remote-index lists, and the local column-index remap
// that lets a product kernel run as a single alltoallv plus a branch-
// free local loop.
type commPlan struct {
	// numRecInds[r]/recDisps[r]: how many, and at what offset in the
	// extended buffer's received region, this rank expects from rank
	// r.
	numRecInds []int
	recDisps   []int
	totalRec   int

	// numSendInds[r]/sendDisps[r]: how many local row values this
	// rank must ship to rank r, and at what offset into rhsSendInds.
	numSendInds []int
	sendDisps   []int
	totalSend   int

	// rhsSendInds holds, concatenated per destination rank, the
	// one-based global row index (a local row of this rank) that rank
	// r wants the value of.
	rhsSendInds []int

	// sendOffsets is rhsSendInds converted once to 0-based offsets
	// into this rank's own local row block, the indx argument every
	// iteration's blas.Zusga gather reuses without having to
	// re-subtract the row-range base each time.
	sendOffsets []int

	// localColInds is parallel to ColIndexes: for a local reference it
	// is left as the original global column index (slotIndex later
	// subtracts the row-range base); for a non-local reference it is
	// overwritten with the extended-buffer slot the alltoallv will
	// deliver that value into.
	localColInds []int

	// slotIndex is localColInds converted once to 0-based slots into
	// uResize/bResize, the indx argument blas.Zusdot takes per row in
	// the product kernels.
	slotIndex []int

	// rhsRecIndsStaged holds the global row indices this rank wants,
	// concatenated per owning rank, between reconcileCountsAndRemap
	// and exchangeRemoteIndexLists; nil once the plan is complete.
	rhsRecIndsStaged []int
}

// ReconcileCommunications inspects c's sorted sparsity pattern and
// attaches a communication plan: which non-local columns must be
// fetched from which rank, and the local remap that lets the product
// kernels dereference local and remote operands identically. c must
// already satisfy SortCSR's postcondition (columns strictly ascending
// within each row); ReconcileCommunications does not sort them itself
// because the plan and the sort would otherwise silently interact.
//
// This does not deduplicate repeated column references: a column
// referenced twice within this rank's rows produces two remap slots
// and is fetched twice. A future optimisation could collapse repeated
// references into a single fetch shared by every referencing row.
func ReconcileCommunications(c *DistributedCSR, cm comm.Comm) error {
	plan, err := reconcileCountsAndRemap(c, cm)
	if err != nil {
		return err
	}
	if err := exchangeRemoteIndexLists(c, cm, plan); err != nil {
		return err
	}
	c.plan = plan
	return nil
}

// ReconcileCommunicationsA performs the count-classification, local
// remap and count-exchange half of reconciliation (steps 1-5 of the
// algorithm) without yet exchanging the remote row-index lists, which
// ReconcileCommunicationsB does. Each call allocates its own counts and
// runs its own Alltoall; nothing is shared between matrices that use
// the same partition table. Behaviour observed by the caller after
// both halves have run is identical to ReconcileCommunications.
func ReconcileCommunicationsA(c *DistributedCSR, cm comm.Comm) (*commPlan, error) {
	return reconcileCountsAndRemap(c, cm)
}

// ReconcileCommunicationsB completes reconciliation begun by
// ReconcileCommunicationsA, exchanging the remote row-index lists and
// attaching the finished plan to c.
func ReconcileCommunicationsB(c *DistributedCSR, cm comm.Comm, plan *commPlan) error {
	if err := exchangeRemoteIndexLists(c, cm, plan); err != nil {
		return err
	}
	c.plan = plan
	return nil
}

func reconcileCountsAndRemap(c *DistributedCSR, cm comm.Comm) (*commPlan, error) {
	if err := checkSorted(c); err != nil {
		return nil, err
	}

	ranks := c.table.Ranks()
	lo, hi := c.LocalRowRange()

	plan := &commPlan{
		numRecInds:   make([]int, ranks),
		localColInds: make([]int, len(c.ColIndexes)),
	}

	// Step 1: classify receives.
	for k, col := range c.ColIndexes {
		if col >= lo && col < hi {
			plan.localColInds[k] = col
			continue
		}
		r := c.table.OwnerOf(col)
		plan.numRecInds[r]++
	}

	// Step 2: receive displacements.
	plan.recDisps = prefixSum(plan.numRecInds)
	plan.totalRec = sumInts(plan.numRecInds)

	// Step 3: remap columns, tracking a per-rank cursor into the
	// extended buffer's received region.
	offset := make([]int, ranks)
	rhsRecInds := make([]int, plan.totalRec)
	for k, col := range c.ColIndexes {
		if col >= lo && col < hi {
			continue
		}
		r := c.table.OwnerOf(col)
		slot := plan.recDisps[r] + offset[r]
		rhsRecInds[slot] = col
		plan.localColInds[k] = hi - 1 + plan.recDisps[r] + offset[r] + 1
		offset[r]++
	}

	plan.slotIndex = make([]int, len(plan.localColInds))
	for k, col := range plan.localColInds {
		plan.slotIndex[k] = col - lo
	}

	// Step 4: exchange counts.
	plan.numSendInds = make([]int, ranks)
	if err := cm.Alltoall(plan.numRecInds, plan.numSendInds); err != nil {
		return nil, newError(TransportError, "ReconcileCommunications", err)
	}

	// Step 5: send displacements.
	plan.sendDisps = prefixSum(plan.numSendInds)
	plan.totalSend = sumInts(plan.numSendInds)

	plan.rhsRecIndsStaged = rhsRecInds
	return plan, nil
}

func exchangeRemoteIndexLists(c *DistributedCSR, cm comm.Comm, plan *commPlan) error {
	plan.rhsSendInds = make([]int, plan.totalSend)
	if err := cm.AlltoallvInts(plan.rhsRecIndsStaged, plan.numRecInds, plan.recDisps, plan.rhsSendInds, plan.numSendInds, plan.sendDisps); err != nil {
		return newError(TransportError, "ReconcileCommunications", err)
	}
	plan.rhsRecIndsStaged = nil

	lo, _ := c.LocalRowRange()
	plan.sendOffsets = make([]int, len(plan.rhsSendInds))
	for i, row := range plan.rhsSendInds {
		plan.sendOffsets[i] = row - lo
	}
	return nil
}

func checkSorted(c *DistributedCSR) error {
	for i := 0; i < c.LocalRowCount(); i++ {
		lo, hi := c.RowStarts[i], c.RowStarts[i+1]
		for k := lo + 1; k < hi; k++ {
			if c.ColIndexes[k-1] >= c.ColIndexes[k] {
				return newError(OrderingViolation, "ReconcileCommunications", errUnsortedRow)
			}
		}
	}
	return nil
}

func prefixSum(counts []int) []int {
	disps := make([]int, len(counts))
	total := 0
	for i, n := range counts {
		disps[i] = total
		total += n
	}
	return disps
}

func sumInts(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}
