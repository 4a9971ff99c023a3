package model

// Page is the paged list envelope returned by list endpoints
type Page[T any] struct {
	Content       []T  `json:"content"`
	TotalElements int  `json:"totalElements"`
	TotalPages    int  `json:"totalPages"`
	Number        int  `json:"number"`
	Size          int  `json:"size"`
	Last          bool `json:"last"`
}

// Items returns the page content, never nil
func (p *Page[T]) Items() []T {
	if p == nil || p.Content == nil {
		return []T{}
	}
	return p.Content
}
