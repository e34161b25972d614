package quota

import (
	"testing"
	"time"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, errParse := time.Parse("2006-01-02", value)
	if errParse != nil {
		t.Fatalf("parse day: %v", errParse)
	}
	return parsed
}

func TestWindowDeterministic(t *testing.T) {
	d := day(t, "2026-03-15")
	offset1, limit1 := Window(d, 4, 10, 500)
	offset2, limit2 := Window(d, 4, 10, 500)
	if offset1 != offset2 || limit1 != limit2 {
		t.Fatalf("window not deterministic: (%d,%d) vs (%d,%d)", offset1, limit1, offset2, limit2)
	}
}

func TestWindowEmptyCatalog(t *testing.T) {
	offset, limit := Window(day(t, "2026-03-15"), 1, 10, 0)
	if offset != 0 || limit != 0 {
		t.Fatalf("expected empty window for empty catalog, got (%d,%d)", offset, limit)
	}
}

func TestWindowOriginAdvancesByPagePerDay(t *testing.T) {
	total := 1000
	offset1, _ := Window(day(t, "2026-03-15"), 1, 10, total)
	offset2, _ := Window(day(t, "2026-03-16"), 1, 10, total)
	if offset2 != (offset1+10)%total {
		t.Fatalf("expected origin to advance by one page: day1=%d day2=%d", offset1, offset2)
	}
}

func TestWindowWrapsModuloTotal(t *testing.T) {
	// 2026-03-15 is day 74: rotationStart = 740 % 100 = 40.
	d := day(t, "2026-03-15")
	offset, _ := Window(d, 8, 10, 100)
	if offset != 10 {
		t.Fatalf("expected wrapped offset 10, got %d", offset)
	}
}

func TestWindowClampsToCatalogEnd(t *testing.T) {
	d := day(t, "2026-03-15")
	offset, limit := Window(d, 6, 10, 100)
	if offset != 90 {
		t.Fatalf("expected offset 90, got %d", offset)
	}
	if limit != 10 {
		t.Fatalf("expected clamped limit 10, got %d", limit)
	}
	if offset+limit > 100 {
		t.Fatalf("window exceeds catalog: offset=%d limit=%d", offset, limit)
	}
}

func TestWindowOverFetchesThreePages(t *testing.T) {
	offset, limit := Window(day(t, "2026-03-15"), 1, 10, 1000)
	if limit != 30 {
		t.Fatalf("expected over-fetch of 30, got %d", limit)
	}
	if offset < 0 || offset >= 1000 {
		t.Fatalf("offset out of range: %d", offset)
	}
}

func TestWindowPageSweepCoversDistinctOffsets(t *testing.T) {
	d := day(t, "2026-07-01")
	total, pageSize := 120, 10

	seen := make(map[int]struct{})
	for page := 1; page <= total/pageSize; page++ {
		offset, _ := Window(d, page, pageSize, total)
		if _, dup := seen[offset]; dup {
			t.Fatalf("offset %d repeated within one day's sweep", offset)
		}
		seen[offset] = struct{}{}
	}
	if len(seen) != total/pageSize {
		t.Fatalf("expected %d distinct offsets, got %d", total/pageSize, len(seen))
	}
}
