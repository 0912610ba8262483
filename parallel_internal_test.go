package enrs

import "testing"

func TestSplitChunksCoversRangeExactly(t *testing.T) {
	cases := []struct{ n, workers int }{
		{0, 4}, {1, 4}, {3, 4}, {4, 4}, {7, 3}, {100, 8}, {5, 1},
	}
	for _, tc := range cases {
		chunks := splitChunks(tc.n, tc.workers)
		if tc.n == 0 {
			if chunks != nil {
				t.Errorf("splitChunks(%d, %d) = %v, want nil", tc.n, tc.workers, chunks)
			}
			continue
		}
		if len(chunks) > tc.workers {
			t.Errorf("splitChunks(%d, %d) produced %d chunks", tc.n, tc.workers, len(chunks))
		}
		lo := 0
		for _, c := range chunks {
			if c.lo != lo {
				t.Fatalf("splitChunks(%d, %d): chunk starts at %d, want %d", tc.n, tc.workers, c.lo, lo)
			}
			if c.hi <= c.lo {
				t.Fatalf("splitChunks(%d, %d): empty chunk %v", tc.n, tc.workers, c)
			}
			lo = c.hi
		}
		if lo != tc.n {
			t.Errorf("splitChunks(%d, %d) covers [0, %d), want [0, %d)", tc.n, tc.workers, lo, tc.n)
		}
	}
}

func TestSplitChunksBalance(t *testing.T) {
	chunks := splitChunks(10, 3)
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}
	// Sizes may differ by at most one.
	min, max := chunks[0].hi-chunks[0].lo, chunks[0].hi-chunks[0].lo
	for _, c := range chunks[1:] {
		size := c.hi - c.lo
		if size < min {
			min = size
		}
		if size > max {
			max = size
		}
	}
	if max-min > 1 {
		t.Errorf("chunk sizes range from %d to %d", min, max)
	}
}
