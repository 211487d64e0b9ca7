package dspmv

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// BuildRandomHermitianCOO assembles an n x n Hermitian matrix with a
// real diagonal: for each row it samples, without replacement via
// sampleuv, up to nnzPerRow column positions right of the diagonal and
// sets each together with its conjugate mirror below the diagonal, so a
// row can hold more than nnzPerRow off-diagonal nonzeros. Entries are
// stored in a DOK, so the column order within a row after ToGlobalCSR
// is not defined; SortCSR puts it in order. It is exported for use by
// benchmark/demonstration callers outside the package as well as by
// the package's own tests.
func BuildRandomHermitianCOO(n, nnzPerRow int, seed uint64) *DOK {
	rnd := rand.New(rand.NewSource(seed))
	m := NewDOK(n, n)

	for i := 0; i < n; i++ {
		m.Set(i, i, complex(rnd.Float64()*2-1, 0))

		if nnzPerRow <= 0 || i == n-1 {
			continue
		}
		remaining := n - i - 1
		k := nnzPerRow
		if k > remaining {
			k = remaining
		}
		indx := make([]int, k)
		sampleuv.WithoutReplacement(indx, remaining, rnd)
		for _, off := range indx {
			j := i + 1 + off
			re := rnd.Float64()*2 - 1
			im := rnd.Float64()*2 - 1
			v := complex(re, im)
			m.Set(i, j, v)
			m.Set(j, i, complex(re, -im))
		}
	}
	return m
}
