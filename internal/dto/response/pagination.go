package response

import "user-api/pkg/utils"

type PaginatedResponse[T any] struct {
	Data       []T            `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}

type PaginationMeta struct {
	Total       int64 `json:"total"`
	CurrentPage int   `json:"current_page"`
	Limit       int   `json:"limit"`
	TotalPages  int   `json:"total_pages"`
}

func NewPaginatedResponse[T any](data []T, page, limit int, total int64) *PaginatedResponse[T] {
	return &PaginatedResponse[T]{
		Data: data,
		Pagination: PaginationMeta{
			Total:       total,
			CurrentPage: page,
			Limit:       limit,
			TotalPages:  utils.CalculateTotalPages(total, limit),
		},
	}
}
