package dspmv

// COO is a root-side coordinate-format (triplet) builder for a global
// complex128 matrix: the natural format for assembling a matrix one
// nonzero at a time before handing it to DistributeCSR. Same
// construction-then-compress idiom as DistributedCSR, complex128
// values, and no arithmetic or gonum mat.Matrix surface since nothing
// here runs distributed.
type COO struct {
	rows, cols int
	r, c       []int
	data       []complex128
}

// NewCOO creates an empty r-by-c COO builder.
func NewCOO(r, c int) *COO {
	return &COO{rows: r, cols: c}
}

// Set appends a nonzero at (i, j) (0-based). Repeated coordinates are
// allowed and summed on conversion to CSR.
func (m *COO) Set(i, j int, v complex128) {
	if uint(i) >= uint(m.rows) {
		panic("dspmv: row index out of range")
	}
	if uint(j) >= uint(m.cols) {
		panic("dspmv: column index out of range")
	}
	m.r = append(m.r, i)
	m.c = append(m.c, j)
	m.data = append(m.data, v)
}

// NNZ returns the number of stored triplets, which may exceed the
// deduplicated nonzero count if coordinates repeat.
func (m *COO) NNZ() int { return len(m.data) }

// Dims returns the matrix's dimensions.
func (m *COO) Dims() (int, int) { return m.rows, m.cols }

// ToGlobalCSR compresses the triplets into a single-process, 0-based,
// 0-based-row-starts global CSR: rowStarts has length rows+1,
// colIndexes holds 0-based columns. This is the shape DistributeCSR's
// root-side parameters expect; a caller on a non-root rank never needs
// this conversion.
func (m *COO) ToGlobalCSR() (rowStarts, colIndexes []int, values []complex128) {
	ia, ja, data := compress(m.r, m.c, m.data, m.rows)
	ja, data = dedupe(ia, ja, data, m.rows, m.cols)
	return ia, ja, data
}

func cumsum(p, w []int, n int) int {
	nz := 0
	for i := 0; i < n; i++ {
		p[i] = nz
		nz += w[i]
		w[i] = p[i]
	}
	p[n] = nz
	return nz
}

func compress(row, col []int, data []complex128, n int) (ia, ja []int, d []complex128) {
	w := make([]int, n+1)
	ia = make([]int, n+1)
	ja = make([]int, len(col))
	d = make([]complex128, len(data))

	for _, v := range row {
		w[v]++
	}
	cumsum(ia, w, n)

	for j, v := range col {
		p := w[row[j]]
		ja[p] = v
		d[p] = data[j]
		w[row[j]]++
	}
	return
}

// dedupe sums duplicate (row, column) triplets within each row via a
// cursor-based scan, using a -1-initialised last-seen-slot marker so
// the first entry of row 0 is never mistaken for an already-seen
// column.
func dedupe(ia, ja []int, d []complex128, m, n int) ([]int, []complex128) {
	w := make([]int, n)
	for i := range w {
		w[i] = -1
	}
	nz := 0

	for i := 0; i < m; i++ {
		q := nz
		for j := ia[i]; j < ia[i+1]; j++ {
			if w[ja[j]] >= q {
				d[w[ja[j]]] += d[j]
			} else {
				w[ja[j]] = nz
				ja[nz] = ja[j]
				d[nz] = d[j]
				nz++
			}
		}
		ia[i] = q
	}
	ia[m] = nz

	return ja[:nz], d[:nz]
}
