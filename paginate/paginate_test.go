package paginate

import (
	"errors"
	"testing"

	"github.com/mkeen/dodo/domain"
)

func sliceSource(items []int) Source[int] {
	return func(offset, limit int) ([]int, error) {
		if offset >= len(items) {
			return nil, nil
		}
		end := offset + limit
		if end > len(items) {
			end = len(items)
		}
		return items[offset:end], nil
	}
}

func intRange(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestPageFlags(t *testing.T) {
	cur := New(sliceSource(intRange(12)), 5)

	page, err := cur.Page()
	if err != nil {
		t.Fatalf("Failed to load page: %v", err)
	}
	if len(page.Items) != 5 || page.HasPrev || !page.HasNext {
		t.Errorf("Unexpected first page: %+v", page)
	}

	cur = cur.Next(page)
	page, _ = cur.Page()
	if len(page.Items) != 5 || !page.HasPrev || !page.HasNext {
		t.Errorf("Unexpected second page: %+v", page)
	}

	cur = cur.Next(page)
	page, _ = cur.Page()
	if len(page.Items) != 2 || !page.HasPrev || page.HasNext {
		t.Errorf("Unexpected last page: %+v", page)
	}
	if page.Items[0] != 10 || page.Items[1] != 11 {
		t.Errorf("Unexpected last page items: %v", page.Items)
	}
}

func TestNextPrevRoundTrip(t *testing.T) {
	cur := New(sliceSource(intRange(12)), 5)
	first, _ := cur.Page()

	moved := cur.Next(first).Prev()
	again, _ := moved.Page()

	if len(again.Items) != len(first.Items) {
		t.Fatalf("Round trip changed page size: %d vs %d", len(again.Items), len(first.Items))
	}
	for i := range first.Items {
		if first.Items[i] != again.Items[i] {
			t.Errorf("Round trip changed item %d: %d vs %d", i, first.Items[i], again.Items[i])
		}
	}
}

func TestEdgeNoOps(t *testing.T) {
	cur := New(sliceSource(intRange(3)), 5)

	// Prev at the first page stays put
	if cur.Prev().PageNum() != 1 {
		t.Error("Prev at first page should be a no-op")
	}

	// Next without a next page stays put
	page, _ := cur.Page()
	if page.HasNext {
		t.Fatal("Three items should fit one page")
	}
	if cur.Next(page).PageNum() != 1 {
		t.Error("Next at last page should be a no-op")
	}
}

func TestEmptySource(t *testing.T) {
	cur := New(sliceSource(nil), 5)
	page, err := cur.Page()
	if err != nil {
		t.Fatalf("Empty source should page cleanly: %v", err)
	}
	if len(page.Items) != 0 || page.HasNext || page.HasPrev {
		t.Errorf("Expected one empty page, got %+v", page)
	}
}

func TestSelect(t *testing.T) {
	cur := New(sliceSource(intRange(12)), 5)
	page, _ := cur.Page()

	item, err := page.Select(3)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if item != 2 {
		t.Errorf("Expected item 2 at index 3, got %d", item)
	}

	for _, n := range []int{0, 6, -1} {
		if _, err := page.Select(n); !errors.Is(err, domain.ErrOutOfRange) {
			t.Errorf("Select(%d) should be out of range, got %v", n, err)
		}
	}
}

func TestSourceErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	cur := New(func(offset, limit int) ([]int, error) { return nil, boom }, 5)
	if _, err := cur.Page(); !errors.Is(err, boom) {
		t.Errorf("Expected source error, got %v", err)
	}
}
