package entity

// Category categoría del catálogo (voladores, luces, fuentes, etc.).
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
