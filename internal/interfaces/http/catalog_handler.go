package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pyrostore/internal/application/dto"
)

// CatalogHandler atiende productos y categorías.
type CatalogHandler struct {
	store *MemStore
}

// NewCatalogHandler construye el handler de catálogo.
func NewCatalogHandler(store *MemStore) *CatalogHandler {
	return &CatalogHandler{store: store}
}

// ListProducts lista el catálogo con filtros category/search y paginación page/limit.
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 20)
	if limit < 1 {
		limit = 20
	}

	products, total := h.store.FindProducts(c.Query("category"), c.Query("search"), page, limit)

	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return c.JSON(dto.ProductsResponse{
		Products: products,
		Pagination: dto.Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
	})
}

// ListCategories lista las categorías.
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	return c.JSON(dto.CategoriesResponse{Categories: h.store.Categories()})
}
