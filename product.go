package dspmv

import (
	"github.com/james-bowman/dspmv/blas"
	"github.com/james-bowman/dspmv/comm"
)

// productCache holds the extended-operand buffers reused across the
// iterations of one SpmvSeries/Spmm run, attached to the
// DistributedCSR handle rather than kept as hidden process-wide state,
// so that two handles in flight at once (e.g. a matrix and its
// dagger) never share buffers.
type productCache struct {
	uResize    []complex128   // extended operand buffer, vector form
	bResize    [][]complex128 // extended operand buffer, matrix form: bResize[col][row]
	sendValues []complex128
	recValues  []complex128
}

// resetVectorCache discards any cached vector buffers and allocates
// fresh ones sized to c's current plan.
func (c *DistributedCSR) resetVectorCache() {
	n := c.ExtendedBufferSize()
	c.cache = &productCache{
		uResize:    make([]complex128, n),
		sendValues: make([]complex128, c.plan.totalSend),
		recValues:  make([]complex128, c.plan.totalRec),
	}
}

// resetMatrixCache discards any cached matrix buffers and allocates
// fresh ones sized to c's current plan and bCols columns.
func (c *DistributedCSR) resetMatrixCache(bCols int) {
	n := c.ExtendedBufferSize()
	cache := &productCache{
		bResize:    make([][]complex128, bCols),
		sendValues: make([]complex128, c.plan.totalSend),
		recValues:  make([]complex128, c.plan.totalRec),
	}
	for j := range cache.bResize {
		cache.bResize[j] = make([]complex128, n)
	}
	c.cache = cache
}

// ReleaseProductCache frees any buffers SpmvSeries/Spmm have cached on
// c. It is the per-handle analogue of the reset sentinel
// (start_it == 0 && max_it == 0) and is what that sentinel calls.
func (c *DistributedCSR) ReleaseProductCache() {
	c.cache = nil
}

// SpmvSeries computes v_local ← A^n · u_local by repeated single
// products against the distributed CSR a, exposing each intermediate
// iteration (currentIt) so the caller may accumulate a Taylor or
// Krylov series across calls instead of only consuming the final
// power. a must already be reconciled (ReconcileCommunications) with
// columns sorted (SortCSR).
//
// On currentIt == startIt, any existing per-iteration cache is
// discarded and reallocated; on currentIt == maxIt, it is freed after
// the iteration completes. A sentinel call with startIt == 0 &&
// maxIt == 0 frees the cache and returns immediately, regardless of a's
// other state - the one call that is never a StateMisuse.
//
// uLocal is consumed as this rank's local slice (length
// a.LocalRowCount()); vLocal receives this iteration's product and
// must be pre-sized the same. On the first call of a series uLocal and
// vLocal may be the same slice only if the caller does not need the
// pre-iteration value of uLocal afterwards, since the extended buffer
// is seeded from uLocal before vLocal is written.
func SpmvSeries(a *DistributedCSR, uLocal []complex128, startIt, currentIt, maxIt int, vLocal []complex128, cm comm.Comm) error {
	if startIt == 0 && maxIt == 0 {
		a.ReleaseProductCache()
		return nil
	}
	if currentIt < startIt || currentIt > maxIt {
		return newError(StateMisuse, "SpmvSeries", errBadIteration)
	}
	if a.plan == nil {
		return newError(OrderingViolation, "SpmvSeries", errUnsortedRow)
	}
	if len(uLocal) != a.LocalRowCount() || len(vLocal) != a.LocalRowCount() {
		return newError(ShapeMismatch, "SpmvSeries", errLenMismatch)
	}

	if currentIt == startIt || a.cache == nil || len(a.cache.uResize) != a.ExtendedBufferSize() {
		a.resetVectorCache()
	}
	cache := a.cache

	copy(cache.uResize[:a.LocalRowCount()], uLocal)

	blas.Zusga(cache.uResize, 1, cache.sendValues, a.plan.sendOffsets)

	if err := cm.Alltoallv(cache.sendValues, a.plan.numSendInds, a.plan.sendDisps, cache.recValues, a.plan.numRecInds, a.plan.recDisps); err != nil {
		return newError(TransportError, "SpmvSeries", err)
	}
	copy(cache.uResize[a.LocalRowCount():], cache.recValues)

	for i := 0; i < a.LocalRowCount(); i++ {
		lo, hi := a.RowStarts[i], a.RowStarts[i+1]
		vLocal[i] = blas.Zusdot(a.Values[lo:hi], a.plan.slotIndex[lo:hi], cache.uResize, 1)
	}

	if currentIt == maxIt {
		a.ReleaseProductCache()
	}
	return nil
}

// Spmm computes C_local ← A^n · B_local for a dense row-sliced
// right-hand side with bCols columns, applying the product n times
// in-place (n >= 1), copying C_local back into the owned rows of the
// extended buffer between iterations. a must already be reconciled
// with columns sorted. bLocal and cLocal are row-major, length
// a.LocalRowCount()*bCols.
func Spmm(a *DistributedCSR, n int, bLocal []complex128, bCols int, cLocal []complex128, cm comm.Comm) error {
	if n < 1 {
		return newError(StateMisuse, "Spmm", errBadIteration)
	}
	if a.plan == nil {
		return newError(OrderingViolation, "Spmm", errUnsortedRow)
	}
	rows := a.LocalRowCount()
	if len(bLocal) != rows*bCols || len(cLocal) != rows*bCols {
		return newError(ShapeMismatch, "Spmm", errLenMismatch)
	}

	a.resetMatrixCache(bCols)
	cache := a.cache

	for col := 0; col < bCols; col++ {
		for i := 0; i < rows; i++ {
			cache.bResize[col][i] = bLocal[i*bCols+col]
		}
	}

	recOffsets := make([]int, len(cache.recValues))
	for i := range recOffsets {
		recOffsets[i] = rows + i
	}

	for step := 0; step < n; step++ {
		for col := 0; col < bCols; col++ {
			buf := cache.bResize[col]
			blas.Zusga(buf, 1, cache.sendValues, a.plan.sendOffsets)
			if err := cm.Alltoallv(cache.sendValues, a.plan.numSendInds, a.plan.sendDisps, cache.recValues, a.plan.numRecInds, a.plan.recDisps); err != nil {
				return newError(TransportError, "Spmm", err)
			}
			blas.Zussc(cache.recValues, buf, 1, recOffsets)
		}

		for i := 0; i < rows; i++ {
			lo, hi := a.RowStarts[i], a.RowStarts[i+1]
			vals := a.Values[lo:hi]
			slots := a.plan.slotIndex[lo:hi]
			for col := 0; col < bCols; col++ {
				cLocal[i*bCols+col] = blas.Zusdot(vals, slots, cache.bResize[col], 1)
			}
		}

		if step < n-1 {
			for col := 0; col < bCols; col++ {
				for i := 0; i < rows; i++ {
					cache.bResize[col][i] = cLocal[i*bCols+col]
				}
			}
		}
	}

	a.ReleaseProductCache()
	return nil
}
