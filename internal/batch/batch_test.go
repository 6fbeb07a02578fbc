package batch

import (
	"errors"
	"testing"
)

func TestSplitOversizedBlock(t *testing.T) {
	parts, err := Split(4500, 2000, "")
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if len(parts) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(parts))
	}
	wantUnits := []int{2000, 2000, 500}
	wantLabels := []string{"T1", "T2", "T3"}
	for i, part := range parts {
		if part.Units != wantUnits[i] {
			t.Fatalf("part %d: expected %d units, got %d", i, wantUnits[i], part.Units)
		}
		if part.Label != wantLabels[i] {
			t.Fatalf("part %d: expected label %s, got %s", i, wantLabels[i], part.Label)
		}
		if part.ErpID != "" {
			t.Fatalf("part %d: expected empty erp id, got %s", i, part.ErpID)
		}
	}
}

func TestSplitDerivesErpIDs(t *testing.T) {
	parts, err := Split(3000, 2000, "SAP-7741")
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if parts[0].ErpID != "SAP-7741-T1" || parts[1].ErpID != "SAP-7741-T2" {
		t.Fatalf("unexpected erp ids: %s, %s", parts[0].ErpID, parts[1].ErpID)
	}
}

func TestSplitNoSplitNeeded(t *testing.T) {
	for _, units := range []int{1, 1999, 2000} {
		_, err := Split(units, 2000, "")
		var noSplit *ErrNoSplitNeeded
		if !errors.As(err, &noSplit) {
			t.Fatalf("units=%d: expected ErrNoSplitNeeded, got %v", units, err)
		}
		if noSplit.Limit != 2000 || noSplit.Units != units {
			t.Fatalf("units=%d: error does not report inputs: %v", units, noSplit)
		}
	}
}

func TestSplitRejectsBadInputs(t *testing.T) {
	if _, err := Split(0, 2000, ""); err == nil {
		t.Fatal("expected error for zero units")
	}
	if _, err := Split(-5, 2000, ""); err == nil {
		t.Fatal("expected error for negative units")
	}
	if _, err := Split(100, 0, ""); err == nil {
		t.Fatal("expected error for zero limit")
	}
}

func TestSplitIsLossless(t *testing.T) {
	cases := []struct{ units, limit int }{
		{2001, 2000},
		{4000, 2000},
		{4001, 2000},
		{7, 3},
		{1000000, 1},
		{5500, 1750},
	}
	for _, tc := range cases {
		parts, err := Split(tc.units, tc.limit, "")
		if err != nil {
			t.Fatalf("units=%d limit=%d: %v", tc.units, tc.limit, err)
		}
		sum := 0
		for i, part := range parts {
			if part.Units <= 0 {
				t.Fatalf("units=%d limit=%d: empty part %d", tc.units, tc.limit, i)
			}
			if part.Units > tc.limit {
				t.Fatalf("units=%d limit=%d: part %d exceeds limit (%d)", tc.units, tc.limit, i, part.Units)
			}
			sum += part.Units
		}
		if sum != tc.units {
			t.Fatalf("units=%d limit=%d: parts sum to %d", tc.units, tc.limit, sum)
		}
		expectedCount := (tc.units + tc.limit - 1) / tc.limit
		if len(parts) != expectedCount {
			t.Fatalf("units=%d limit=%d: expected %d parts, got %d", tc.units, tc.limit, expectedCount, len(parts))
		}
	}
}
