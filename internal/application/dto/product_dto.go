package dto

import "github.com/jhoicas/pyrostore/internal/domain/entity"

// ListProductsParams filtros del listado del catálogo; los campos en cero se omiten.
type ListProductsParams struct {
	Category string
	Search   string
	Page     int
	Limit    int
}

// Pagination metadatos de página que acompañan los listados.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// ProductsResponse respuesta del listado de productos.
type ProductsResponse struct {
	Products   []entity.Product `json:"products"`
	Pagination Pagination       `json:"pagination"`
}

// CategoriesResponse respuesta del listado de categorías.
type CategoriesResponse struct {
	Categories []entity.Category `json:"categories"`
}
