package models

type Suggestions struct {
	Seq      uint64    `json:"seq"`
	Query    string    `json:"query"`
	Products []Product `json:"products"`
}
