// Package sortkernel implements the hybrid merge/insertion sort the
// core uses both to bring a single CSR row's (column, value) pairs
// into strictly ascending column order (SortCSR) and to bring the
// dagger's redistributed (column, row, value) triples into ascending
// new-row order. Both variants are stable: equal keys keep their
// original relative order, which only the triple variant's dagger use
// depends on.
//
// The algorithm is plain recursive merge sort down to spans of length
// insertionThreshold, insertion sort below that.
package sortkernel

// insertionThreshold is the span length below which insertion sort
// takes over from the recursive merge.
const insertionThreshold = 512

// Pairs sorts columns into ascending order (strictly ascending when the
// columns are distinct), permuting values the same way and preserving
// the relative order of equal columns. It is used once per CSR row by
// SortCSR.
func Pairs(columns []int, values []complex128) {
	if len(columns) != len(values) {
		panic("sortkernel: columns and values must have equal length")
	}
	n := len(columns)
	if n < 2 {
		return
	}
	scratchCols := make([]int, n)
	scratchVals := make([]complex128, n)
	sortPairs(columns, values, scratchCols, scratchVals)
}

func sortPairs(columns []int, values []complex128, scratchCols []int, scratchVals []complex128) {
	n := len(columns)
	if n <= insertionThreshold {
		insertionSortPairs(columns, values)
		return
	}
	mid := n / 2
	sortPairs(columns[:mid], values[:mid], scratchCols[:mid], scratchVals[:mid])
	sortPairs(columns[mid:], values[mid:], scratchCols[mid:], scratchVals[mid:])
	mergePairs(columns, values, mid, scratchCols, scratchVals)
}

func insertionSortPairs(columns []int, values []complex128) {
	for i := 1; i < len(columns); i++ {
		c, v := columns[i], values[i]
		j := i - 1
		for j >= 0 && columns[j] > c {
			columns[j+1] = columns[j]
			values[j+1] = values[j]
			j--
		}
		columns[j+1] = c
		values[j+1] = v
	}
}

func mergePairs(columns []int, values []complex128, mid int, scratchCols []int, scratchVals []complex128) {
	n := len(columns)
	copy(scratchCols, columns)
	copy(scratchVals, values)

	i, j, k := 0, mid, 0
	for i < mid && j < n {
		// <= preserves stability: a left-half element equal to the
		// current right-half element is taken first.
		if scratchCols[i] <= scratchCols[j] {
			columns[k], values[k] = scratchCols[i], scratchVals[i]
			i++
		} else {
			columns[k], values[k] = scratchCols[j], scratchVals[j]
			j++
		}
		k++
	}
	for i < mid {
		columns[k], values[k] = scratchCols[i], scratchVals[i]
		i++
		k++
	}
	for j < n {
		columns[k], values[k] = scratchCols[j], scratchVals[j]
		j++
		k++
	}
}

// Triples sorts primary into ascending order by primary key,
// permuting secondary and values the same way and preserving the
// relative order of equal primary keys. It backs the dagger's
// regroup-by-new-row pass, where primary holds the received new-row
// indices, secondary the new-column indices, and values the
// (conjugated) nonzero values.
func Triples(primary, secondary []int, values []complex128) {
	if len(primary) != len(secondary) || len(primary) != len(values) {
		panic("sortkernel: primary, secondary and values must have equal length")
	}
	n := len(primary)
	if n < 2 {
		return
	}
	scratchP := make([]int, n)
	scratchS := make([]int, n)
	scratchV := make([]complex128, n)
	sortTriples(primary, secondary, values, scratchP, scratchS, scratchV)
}

func sortTriples(primary, secondary []int, values []complex128, scratchP, scratchS []int, scratchV []complex128) {
	n := len(primary)
	if n <= insertionThreshold {
		insertionSortTriples(primary, secondary, values)
		return
	}
	mid := n / 2
	sortTriples(primary[:mid], secondary[:mid], values[:mid], scratchP[:mid], scratchS[:mid], scratchV[:mid])
	sortTriples(primary[mid:], secondary[mid:], values[mid:], scratchP[mid:], scratchS[mid:], scratchV[mid:])
	mergeTriples(primary, secondary, values, mid, scratchP, scratchS, scratchV)
}

func insertionSortTriples(primary, secondary []int, values []complex128) {
	for i := 1; i < len(primary); i++ {
		p, s, v := primary[i], secondary[i], values[i]
		j := i - 1
		for j >= 0 && primary[j] > p {
			primary[j+1] = primary[j]
			secondary[j+1] = secondary[j]
			values[j+1] = values[j]
			j--
		}
		primary[j+1] = p
		secondary[j+1] = s
		values[j+1] = v
	}
}

func mergeTriples(primary, secondary []int, values []complex128, mid int, scratchP, scratchS []int, scratchV []complex128) {
	n := len(primary)
	copy(scratchP, primary)
	copy(scratchS, secondary)
	copy(scratchV, values)

	i, j, k := 0, mid, 0
	for i < mid && j < n {
		if scratchP[i] <= scratchP[j] {
			primary[k], secondary[k], values[k] = scratchP[i], scratchS[i], scratchV[i]
			i++
		} else {
			primary[k], secondary[k], values[k] = scratchP[j], scratchS[j], scratchV[j]
			j++
		}
		k++
	}
	for i < mid {
		primary[k], secondary[k], values[k] = scratchP[i], scratchS[i], scratchV[i]
		i++
		k++
	}
	for j < n {
		primary[k], secondary[k], values[k] = scratchP[j], scratchS[j], scratchV[j]
		j++
		k++
	}
}
