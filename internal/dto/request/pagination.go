package request

type PaginatedRequest struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Valid reports whether the page is 1-indexed and the limit within [1, 100].
func (p PaginatedRequest) Valid() bool {
	return p.Page >= 1 && p.Limit >= 1 && p.Limit <= 100
}
