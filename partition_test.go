package dspmv

import "testing"

func TestGeneratePartitionTable(t *testing.T) {
	var tests = []struct {
		rows, ranks int
		want        PartitionTable
	}{
		{rows: 3, ranks: 2, want: PartitionTable{1, 2, 4}},
		{rows: 10, ranks: 3, want: PartitionTable{1, 4, 7, 11}},
		{rows: 7, ranks: 3, want: PartitionTable{1, 3, 5, 8}},
		{rows: 0, ranks: 4, want: PartitionTable{1, 1, 1, 1, 1}},
		{rows: 1, ranks: 4, want: PartitionTable{1, 1, 1, 1, 2}},
	}

	for ti, test := range tests {
		got, err := GeneratePartitionTable(test.rows, test.ranks)
		if err != nil {
			t.Fatalf("test %d: unexpected error: %v", ti, err)
		}
		if len(got) != len(test.want) {
			t.Fatalf("test %d: len(table) = %d, want %d", ti, len(got), len(test.want))
		}
		for i := range got {
			if got[i] != test.want[i] {
				t.Fatalf("test %d: table = %v, want %v", ti, got, test.want)
			}
		}
	}
}

func TestGeneratePartitionTableInvariants(t *testing.T) {
	for rows := 0; rows <= 37; rows++ {
		for ranks := 1; ranks <= 9; ranks++ {
			table, err := GeneratePartitionTable(rows, ranks)
			if err != nil {
				t.Fatalf("rows=%d ranks=%d: unexpected error: %v", rows, ranks, err)
			}
			if len(table) != ranks+1 {
				t.Fatalf("rows=%d ranks=%d: len(table) = %d, want %d", rows, ranks, len(table), ranks+1)
			}
			if table[0] != 1 {
				t.Fatalf("rows=%d ranks=%d: table[0] = %d, want 1", rows, ranks, table[0])
			}
			if table[ranks] != rows+1 {
				t.Fatalf("rows=%d ranks=%d: table[ranks] = %d, want %d", rows, ranks, table[ranks], rows+1)
			}
			minCount, maxCount := rows, 0
			for r := 0; r < ranks; r++ {
				if table[r+1] < table[r] {
					t.Fatalf("rows=%d ranks=%d: table not non-decreasing: %v", rows, ranks, table)
				}
				count := table.RowCount(r)
				if count < minCount {
					minCount = count
				}
				if count > maxCount {
					maxCount = count
				}
			}
			if maxCount-minCount > 1 {
				t.Fatalf("rows=%d ranks=%d: row counts span %d-%d, differ by more than 1", rows, ranks, minCount, maxCount)
			}
		}
	}
}

func TestGeneratePartitionTableErrors(t *testing.T) {
	if _, err := GeneratePartitionTable(10, 0); err == nil {
		t.Fatal("expected error for zero ranks")
	}
	if _, err := GeneratePartitionTable(-1, 2); err == nil {
		t.Fatal("expected error for negative rows")
	}
}

func TestOwnerOf(t *testing.T) {
	table := PartitionTable{1, 2, 4}
	cases := []struct {
		col  int
		rank int
	}{
		{1, 0},
		{2, 1},
		{3, 1},
	}
	for _, c := range cases {
		if got := table.OwnerOf(c.col); got != c.rank {
			t.Fatalf("OwnerOf(%d) = %d, want %d", c.col, got, c.rank)
		}
	}
}
