package dto

import "strconv"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type Page struct {
	Page int
	Size int
}

// ParsePage reads page/size query values, falling back to page 1 and
// the default size on missing or out-of-range input.
func ParsePage(pageStr, sizeStr string) Page {
	page, _ := strconv.Atoi(pageStr)
	if page <= 0 {
		page = 1
	}

	size, _ := strconv.Atoi(sizeStr)
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}

	return Page{Page: page, Size: size}
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Size
}
