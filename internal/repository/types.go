package repository

// ProductListFilter filters storefront product list queries.
type ProductListFilter struct {
	Page       int
	PageSize   int
	Category   string
	Search     string
	OnlyActive bool
}
