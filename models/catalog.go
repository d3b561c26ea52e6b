package models

// CatalogItem is a garment record owned by the external closet store.
// It is normalized once at the fetch boundary so ID is always the store identity.
type CatalogItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ImageRef  string `json:"imageRef"`
	Type      string `json:"type"`
	Color     string `json:"color,omitempty"`
	DressCode string `json:"dressCode,omitempty"`
	Brand     string `json:"brand,omitempty"`
	Material  string `json:"material,omitempty"`
}

// Category represents an item type in the closet store
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
