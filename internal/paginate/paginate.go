// Package paginate cuts page windows out of record sequences.
package paginate

// Window selects one page. A nil field means the caller did not ask for it.
type Window struct {
	Page *int
	Size *int
}

// Active reports whether the window restricts the sequence at all.
func (w Window) Active() bool {
	return w.Page != nil && w.Size != nil && *w.Page >= 0 && *w.Size > 0
}

// Slice returns the items inside w.
//
// When the window is incomplete, has a negative page, or a non-positive size,
// items are returned unchanged. A page starting at or past the end yields an
// empty, non-nil slice.
func Slice[T any](items []T, w Window) []T {
	if !w.Active() {
		return items
	}
	page, size := *w.Page, *w.Size

	// page*size cannot overflow once page <= len/size.
	if page > len(items)/size {
		return []T{}
	}
	start := page * size
	if start >= len(items) {
		return []T{}
	}
	end := start + min(size, len(items)-start)
	return items[start:end]
}
