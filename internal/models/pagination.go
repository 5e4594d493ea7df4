package models

// Pagination describes list-response paging metadata.
type Pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"page_size"`
	TotalPage int `json:"total_page"`
	Total     int `json:"total"`
}
