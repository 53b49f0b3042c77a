package search

// PageSizes is the fixed option set for the page-size control.
var PageSizes = []int{5, 10, 20, 50, 100}

// DefaultPageSize is used when a caller supplies an invalid size.
const DefaultPageSize = 10

// ValidPageSize reports whether size is one of the allowed options.
func ValidPageSize(size int) bool {
	for _, s := range PageSizes {
		if s == size {
			return true
		}
	}
	return false
}

// PageState tracks the 1-based page number and page size of a list
// view and derives the offset sent to the backend.
type PageState struct {
	page int
	size int
}

// NewPageState starts at page 1 with the given size.
func NewPageState(size int) PageState {
	if !ValidPageSize(size) {
		size = DefaultPageSize
	}
	return PageState{page: 1, size: size}
}

// SetPage moves to a page, keeping the page size. Pages below 1 clamp
// to 1.
func (s *PageState) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	s.page = page
}

// SetPageSize changes the page size and resets to page 1. An invalid
// size is ignored.
func (s *PageState) SetPageSize(size int) {
	if !ValidPageSize(size) {
		return
	}
	s.size = size
	s.page = 1
}

// Page returns the current 1-based page number.
func (s PageState) Page() int { return s.page }

// Size returns the current page size.
func (s PageState) Size() int { return s.size }

// Offset is the skip count for the current window.
func (s PageState) Offset() int { return (s.page - 1) * s.size }

// Page is one screenful of records plus the totals needed to render
// pagination controls.
type Page[T any] struct {
	Items    []T
	Total    int
	Number   int
	PageSize int
}

// TotalPages is ceil(Total / PageSize).
func (p Page[T]) TotalPages() int {
	if p.PageSize <= 0 || p.Total <= 0 {
		return 0
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}
