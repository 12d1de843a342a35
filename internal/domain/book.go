package domain

// Book é a entidade do catálogo simples de livros (/api/books).
// As tags validate são avaliadas pelo bookservice via validator/v10.
type Book struct {
	ID     int    `json:"id"`
	Title  string `json:"title" validate:"required,max=200"`
	Author string `json:"author" validate:"required,max=100"`
	Year   int    `json:"year" validate:"gt=0,notfuture"`
}

// BookFilter define os parâmetros de paginação.
type BookFilter struct {
	Page     int
	PageSize int
}

// Offset calcula o deslocamento SQL da página.
func (f BookFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// PagedResult é o envelope de uma listagem paginada.
type PagedResult[T any] struct {
	TotalCount int `json:"totalCount"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
	Data       []T `json:"data"`
}

// NewPagedResult calcula TotalPages arredondando para cima.
func NewPagedResult[T any](data []T, total int, filter BookFilter) PagedResult[T] {
	if data == nil {
		data = []T{}
	}
	pages := 0
	if filter.PageSize > 0 {
		pages = (total + filter.PageSize - 1) / filter.PageSize
	}
	return PagedResult[T]{
		TotalCount: total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: pages,
		Data:       data,
	}
}
