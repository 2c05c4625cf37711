package busbar

// DefaultPageSize results per page in the configurator.
const DefaultPageSize = 10

// Page a 1-based result page. Items [Start, End) belong to it.
type Page struct {
	Page       int
	PageSize   int
	TotalPages int
	Start      int
	End        int
}

// Paginate clamps page into range and computes its bounds.
func Paginate(total, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if total < 0 {
		total = 0
	}
	totalPages := (total + pageSize - 1) / pageSize
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return Page{Page: page, PageSize: pageSize, TotalPages: totalPages, Start: start, End: end}
}
