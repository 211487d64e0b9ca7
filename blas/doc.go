// Package blas provides the low level sparse kernels that back the
// staging and accumulation steps of the product kernels in dspmv:
// copying values between a dense operand buffer and the compact index
// lists a communication plan produces, and per-row sparse dot products.
// The distribute/gather primitives do not use it.
//
// The routines are complex128 level-1 Sparse BLAS style kernels; Zusga,
// Zusgz, Zussc, Zusdot and Zusaxpy follow the Sparse BLAS naming
// convention (Zu = double complex unstructured, s = sparse).
package blas
