package blas

// Zusdot (Sparse dot product (r <- x^T * y)) calculates the dot product of
// sparse vector x and dense vector y.  indx is used as the index
// values to gather and incy as the stride for y.
func Zusdot(x []complex128, indx []int, y []complex128, incy int) (dot complex128) {
	for i, index := range indx {
		dot += x[i] * y[index*incy]
	}
	return
}
