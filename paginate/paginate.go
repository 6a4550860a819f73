// Package paginate windows arbitrary query results into fixed-size
// pages. Cursors are immutable values: navigation returns a new
// cursor, so paging forward and back again reproduces the same page.
package paginate

import "github.com/mkeen/dodo/domain"

// DefaultPageSize is the number of items shown per page.
const DefaultPageSize = 5

// Source fetches one window of an ordered result set. Implementations
// must apply a stable total order so that consecutive windows line up.
type Source[T any] func(offset, limit int) ([]T, error)

// Cursor points at one page of a Source.
type Cursor[T any] struct {
	src    Source[T]
	offset int
	size   int
}

// Page is one materialized window. HasNext is determined by probing
// one row past the page, never by a separate count.
type Page[T any] struct {
	Items   []T
	HasNext bool
	HasPrev bool
}

func New[T any](src Source[T], size int) Cursor[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	return Cursor[T]{src: src, size: size}
}

// Page fetches the cursor's current window. An empty result set
// yields one empty page with both flags false.
func (c Cursor[T]) Page() (Page[T], error) {
	items, err := c.src(c.offset, c.size+1)
	if err != nil {
		return Page[T]{}, err
	}
	p := Page[T]{HasPrev: c.offset > 0}
	if len(items) > c.size {
		p.HasNext = true
		items = items[:c.size]
	}
	p.Items = items
	return p, nil
}

// Next returns the cursor advanced by one page. When the given page
// has no successor the cursor is returned unchanged.
func (c Cursor[T]) Next(p Page[T]) Cursor[T] {
	if p.HasNext {
		c.offset += c.size
	}
	return c
}

// Prev returns the cursor moved back one page, or unchanged when
// already at the first page.
func (c Cursor[T]) Prev() Cursor[T] {
	if c.offset >= c.size {
		c.offset -= c.size
	} else {
		c.offset = 0
	}
	return c
}

// PageNum returns the 1-based number of the cursor's current page.
func (c Cursor[T]) PageNum() int {
	return c.offset/c.size + 1
}

// Select resolves a 1-based index into the page.
func (p Page[T]) Select(n int) (T, error) {
	var zero T
	if n < 1 || n > len(p.Items) {
		return zero, domain.OutOfRangef("selection %d not on this page", n)
	}
	return p.Items[n-1], nil
}
