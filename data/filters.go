package data

// Filters holds the requested page and page size of a list query.
type Filters struct {
	Page     int
	PageSize int
}

// Metadata describes the page that was actually served.
type Metadata struct {
	CurrentPage  int  `json:"current_page"`
	TotalPages   int  `json:"pages"`
	HasPrevious  bool `json:"prev_page"`
	HasNext      bool `json:"next_page"`
	PageSize     int  `json:"-"`
	TotalRecords int  `json:"-"`
}

// CalculateMetadata resolves the page to serve. There is always at least one
// page, and a requested page outside [1, last] falls back to the last page.
func CalculateMetadata(totalRecords, page, pageSize int) Metadata {
	if pageSize < 1 {
		pageSize = 1
	}
	totalPages := (totalRecords + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 || page > totalPages {
		page = totalPages
	}
	return Metadata{
		CurrentPage:  page,
		TotalPages:   totalPages,
		HasPrevious:  page > 1,
		HasNext:      page < totalPages,
		PageSize:     pageSize,
		TotalRecords: totalRecords,
	}
}

// Limit is the number of rows on the served page.
func (m Metadata) Limit() int {
	return m.PageSize
}

// Offset is the number of rows preceding the served page.
func (m Metadata) Offset() int {
	return (m.CurrentPage - 1) * m.PageSize
}

// Normalize applies the default page size to non-positive sizes and caps it.
func (f Filters) Normalize(defaultSize, maxSize int) Filters {
	if f.PageSize < 1 {
		f.PageSize = defaultSize
	}
	if f.PageSize > maxSize {
		f.PageSize = maxSize
	}
	return f
}
