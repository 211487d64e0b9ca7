package blas

// Zusaxpy (Sparse update (y <- alpha * x + y)) scales the sparse vector x by
// alpha and adds the result to the dense vector y.  indx is used as the index
// values to gather and incy as the stride for y.
func Zusaxpy(alpha complex128, x []complex128, indx []int, y []complex128, incy int) {
	for i, index := range indx {
		y[index*incy] += alpha * x[i]
	}
}
