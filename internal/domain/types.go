package domain

// Record is one projected row; related entities are nested maps.
type Record map[string]any

// Page is the list envelope returned to callers.
type Page struct {
	Data       []Record `json:"data"`
	Page       int      `json:"page"`
	Limit      int      `json:"limit"`
	Total      int64    `json:"total"`
	TotalPages int      `json:"totalPages"`
}

// NewPage computes the page count for total rows at limit per page.
func NewPage(data []Record, page, limit int, total int64) Page {
	if data == nil {
		data = []Record{}
	}
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Page{Data: data, Page: page, Limit: limit, Total: total, TotalPages: pages}
}

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	Subject string `json:"subject"`
	Role    string `json:"role"`
}
