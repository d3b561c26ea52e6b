package controller

import (
	"log"
	"net/http"
	"strings"

	"armario-outfits/service"
)

// CatalogController handles HTTP requests for the item source picker
type CatalogController struct {
	picker service.PickerServiceInterface
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(picker service.PickerServiceInterface) *CatalogController {
	return &CatalogController{
		picker: picker,
	}
}

// ListItems handles GET /catalog/items?category=&q=
func (c *CatalogController) ListItems(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ListItems: Received %s request to %s", r.Method, r.URL.String())
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "ListItems", r)
		return
	}

	category := strings.TrimSpace(r.URL.Query().Get("category"))
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	items, err := c.picker.Items(r.Context(), category, query)
	if err != nil {
		writeError(w, "ListItems", err)
		return
	}

	log.Printf("✅ ListItems: Returning %d items (category=%q, q=%q)", len(items), category, query)
	writeJSON(w, "ListItems", http.StatusOK, items)
}

// ListCategories handles GET /catalog/categories
func (c *CatalogController) ListCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "ListCategories", r)
		return
	}

	categories, err := c.picker.Categories(r.Context())
	if err != nil {
		writeError(w, "ListCategories", err)
		return
	}
	writeJSON(w, "ListCategories", http.StatusOK, categories)
}

// CategoryItems handles GET /catalog/categories/{id}/items?q=
func (c *CatalogController) CategoryItems(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "CategoryItems", r)
		return
	}

	items, err := c.picker.CategoryItems(r.Context(), r.PathValue("id"), strings.TrimSpace(r.URL.Query().Get("q")))
	if err != nil {
		writeError(w, "CategoryItems", err)
		return
	}
	writeJSON(w, "CategoryItems", http.StatusOK, items)
}

// Thumbnail handles GET /catalog/items/{id}/thumbnail?size=thumb|medium
func (c *CatalogController) Thumbnail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "Thumbnail", r)
		return
	}

	id := r.PathValue("id")
	data, err := c.picker.Thumbnail(r.Context(), id, r.URL.Query().Get("size"))
	if err != nil {
		writeError(w, "Thumbnail", err)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=86400")
	writeBinary(w, "Thumbnail", "image/jpeg", "", data)
}
