package pagination

// Page wraps a slice of results with the metadata listing endpoints return.
type Page[T any] struct {
	Items   []T   `json:"items"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	HasNext bool  `json:"has_next"`
}

// NewPage builds a Page from a result window and the full row count.
func NewPage[T any](items []T, total int64, params Params) Page[T] {
	limit := NormalizeLimit(params.Limit)
	page := NormalizePage(params.Page)
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:   items,
		Total:   total,
		Page:    page,
		Limit:   limit,
		HasNext: int64(page*limit) < total,
	}
}
