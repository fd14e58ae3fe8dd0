package domain

// Category is a WordPress post category. Categories are fetched live and kept
// in memory only.
type Category struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
	Slug  string `json:"slug"`
}
