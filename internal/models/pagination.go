package models

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// PageRequest is a normalised page/limit pair. Build it with NewPageRequest.
type PageRequest struct {
	Page  int
	Limit int
}

// NewPageRequest clamps page to >= 1 and limit to [1, MaxPageLimit].
func NewPageRequest(page, limit int) PageRequest {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return PageRequest{Page: page, Limit: limit}
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

type PageInfo struct {
	TotalRecords int64 `json:"total_records"`
	CurrentPage  int   `json:"current_page"`
	TotalPages   int64 `json:"total_pages"`
	Limit        int   `json:"limit"`
}

type Page[T any] struct {
	Data       []T      `json:"data"`
	Pagination PageInfo `json:"pagination"`
}

// NewPage wraps one page of results. Data is never nil so it encodes as [].
func NewPage[T any](items []T, total int64, req PageRequest) Page[T] {
	if items == nil {
		items = []T{}
	}
	var pages int64
	if total > 0 && req.Limit > 0 {
		pages = (total + int64(req.Limit) - 1) / int64(req.Limit)
	}
	return Page[T]{
		Data: items,
		Pagination: PageInfo{
			TotalRecords: total,
			CurrentPage:  req.Page,
			TotalPages:   pages,
			Limit:        req.Limit,
		},
	}
}
