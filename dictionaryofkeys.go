package dspmv

// dokKey addresses one entry of a DOK matrix.
type dokKey struct{ i, j int }

// DOK is a root-side Dictionary-Of-Keys builder for a global complex128
// matrix: good for incremental construction (e.g. assembling a random
// Hermitian test matrix entry by entry, setting both (i, j) and its
// conjugate (j, i) independently) and poor for anything else, trimmed
// to the construction-then-convert path this core needs.
type DOK struct {
	r, c     int
	elements map[dokKey]complex128
}

// NewDOK creates an empty r-by-c DOK builder.
func NewDOK(r, c int) *DOK {
	return &DOK{r: r, c: c, elements: make(map[dokKey]complex128)}
}

// Dims returns the matrix's dimensions.
func (d *DOK) Dims() (int, int) { return d.r, d.c }

// NNZ returns the number of distinct stored entries.
func (d *DOK) NNZ() int { return len(d.elements) }

// At returns the value at (i, j), 0 if unset.
func (d *DOK) At(i, j int) complex128 {
	if uint(i) >= uint(d.r) || uint(j) >= uint(d.c) {
		panic("dspmv: index out of range")
	}
	return d.elements[dokKey{i, j}]
}

// Set stores v at (i, j), overwriting any existing value.
func (d *DOK) Set(i, j int, v complex128) {
	if uint(i) >= uint(d.r) || uint(j) >= uint(d.c) {
		panic("dspmv: index out of range")
	}
	d.elements[dokKey{i, j}] = v
}

// ToCOO returns a COO triplet builder carrying the same entries. The
// returned COO does not share storage with the receiver.
func (d *DOK) ToCOO() *COO {
	coo := NewCOO(d.r, d.c)
	for k, v := range d.elements {
		coo.Set(k.i, k.j, v)
	}
	return coo
}

// ToGlobalCSR is shorthand for d.ToCOO().ToGlobalCSR().
func (d *DOK) ToGlobalCSR() (rowStarts, colIndexes []int, values []complex128) {
	return d.ToCOO().ToGlobalCSR()
}
