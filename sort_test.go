package dspmv

import "testing"

func TestSortCSR(t *testing.T) {
	table, _ := GeneratePartitionTable(1, 1)
	c, err := NewDistributedCSR(1, 5, table, 0,
		[]int{0, 3},
		[]int{5, 2, 4},
		[]complex128{5, 2, 4},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	SortCSR(c)

	want := []int{2, 4, 5}
	for i, col := range c.ColIndexes {
		if col != want[i] {
			t.Fatalf("ColIndexes = %v, want ascending %v", c.ColIndexes, want)
		}
	}
	for i := 1; i < len(c.ColIndexes); i++ {
		if c.ColIndexes[i-1] >= c.ColIndexes[i] {
			t.Fatalf("row not strictly ascending after SortCSR: %v", c.ColIndexes)
		}
	}
	if real(c.Values[0]) != 2 || real(c.Values[1]) != 4 || real(c.Values[2]) != 5 {
		t.Fatalf("values did not travel with their columns: %v", c.Values)
	}
}
