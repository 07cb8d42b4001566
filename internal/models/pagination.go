package models

type PageLinks struct {
	Self string `json:"self"`
	Prev string `json:"prev,omitempty"`
	Next string `json:"next,omitempty"`
}

type ProductListing struct {
	Products   []Product `json:"products"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"pageSize"`
	TotalPages int       `json:"totalPages"`
	Category   string    `json:"category,omitempty"`
	Sort       string    `json:"sort,omitempty"`
	Links      PageLinks `json:"links"`
}

func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}

	return (total + pageSize - 1) / pageSize
}
