package app

const (
	DefaultPageSize   = 6
	DefaultPageWindow = 7
)

// Paginate returns the 1-based page of items and the page count. Pages outside
// the range yield an empty slice.
func Paginate[T any](items []T, pageSize, page int) ([]T, int) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	total := (len(items) + pageSize - 1) / pageSize
	if page < 1 {
		return items[:0:0], total
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return items[:0:0], total
	}
	end := min(start+pageSize, len(items))
	return items[start:end:end], total
}

// VisiblePageNumbers picks the contiguous run of page numbers shown in the
// pager. The window sticks to either end near the edges and otherwise keeps
// the current page at position window/2+1.
func VisiblePageNumbers(totalPages, currentPage, window int) []int {
	if window <= 0 {
		window = DefaultPageWindow
	}
	if totalPages <= 0 {
		return []int{}
	}
	if totalPages <= window {
		return pageRange(1, totalPages)
	}
	half := window / 2
	var start int
	switch {
	case currentPage <= half+1:
		start = 1
	case currentPage >= totalPages-half:
		start = totalPages - window + 1
	default:
		start = currentPage - half
	}
	return pageRange(start, start+window-1)
}

func pageRange(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for p := from; p <= to; p++ {
		out = append(out, p)
	}
	return out
}
