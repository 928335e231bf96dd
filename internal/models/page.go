package models

const (
	DefaultPageSize = 20
	MaxPageSize     = 500
)

// Page describes one page of a search. Total is filled in by the search.
type Page struct {
	PageNo   int   `json:"pageNo"`
	PageSize int   `json:"pageSize"`
	Total    int64 `json:"total"`
}

// NewPage returns a page with out-of-range values replaced by defaults.
func NewPage(pageNo, pageSize int) *Page {
	p := &Page{PageNo: pageNo, PageSize: pageSize}
	p.Normalize()
	return p
}

func (p *Page) Normalize() {
	if p.PageNo < 1 {
		p.PageNo = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
}

func (p *Page) Offset() int {
	return (p.PageNo - 1) * p.PageSize
}

// Pages returns the number of pages needed for Total.
func (p *Page) Pages() int64 {
	if p.PageSize < 1 {
		return 0
	}
	return (p.Total + int64(p.PageSize) - 1) / int64(p.PageSize)
}
