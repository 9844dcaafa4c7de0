package domain

// Pagination identifies the next page to request.
type Pagination struct {
	Page     int `json:"pageNumber"`
	PageSize int `json:"pageSize"`
}

// DefaultPagination is the cursor used when the caller supplies none.
var DefaultPagination = Pagination{Page: 1, PageSize: 10}

// Next returns the cursor for the page after p, keeping the page size.
func (p Pagination) Next() Pagination {
	return Pagination{Page: p.Page + 1, PageSize: p.PageSize}
}

// PageInfo is the server-reported pagination metadata for the page
// just returned. Page reflects the page that was received, not the
// next one to request.
type PageInfo struct {
	Page      int `json:"pageNumber"`
	PageSize  int `json:"pageSize"`
	Total     int `json:"total"`
	TotalPage int `json:"totalPage"`
}

// HasNext reports whether another page exists after this one.
func (p PageInfo) HasNext() bool {
	return p.Page < p.TotalPage
}

// Next returns the request cursor for the page after this one, keeping
// the page size.
func (p PageInfo) Next() Pagination {
	return Pagination{Page: p.Page + 1, PageSize: p.PageSize}
}

// IsZero reports whether no page has been received yet.
func (p PageInfo) IsZero() bool {
	return p == PageInfo{}
}
