package search

// windowSize is how many page links show when the full range does not
// fit; fullRangeMax is the largest total shown without a window.
const (
	windowSize   = 5
	fullRangeMax = 10
)

// PageLink is one element of the page-number control: either a
// concrete page number or an ellipsis marker.
type PageLink struct {
	Page     int
	Ellipsis bool
}

// VisiblePages computes the page-number control for the current page.
// All pages show when there are at most ten; otherwise a five-page
// window containing current, clamped to [1, total], with an ellipsis
// on each side where the window leaves more than one page beyond it.
// Zero total renders nothing.
func VisiblePages(current, total int) []PageLink {
	if total <= 0 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	if total <= fullRangeMax {
		links := make([]PageLink, 0, total)
		for p := 1; p <= total; p++ {
			links = append(links, PageLink{Page: p})
		}
		return links
	}

	start := current - windowSize/2
	if start < 1 {
		start = 1
	}
	if start > total-windowSize+1 {
		start = total - windowSize + 1
	}
	end := start + windowSize - 1

	links := make([]PageLink, 0, windowSize+2)
	if start > 2 {
		links = append(links, PageLink{Ellipsis: true})
	}
	for p := start; p <= end; p++ {
		links = append(links, PageLink{Page: p})
	}
	if end < total-1 {
		links = append(links, PageLink{Ellipsis: true})
	}
	return links
}
