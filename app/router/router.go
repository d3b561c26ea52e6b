package router

import (
	"net/http"

	"armario-outfits/app/controller"
)

type Controllers struct {
	Canvas  *controller.CanvasController
	Catalog *controller.CatalogController
	Outfit  *controller.OutfitController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(mux *http.ServeMux, controllers *Controllers) {
	// Ping endpoint
	mux.HandleFunc("/ping", pingHandler)

	// Canvas sessions routes
	mux.HandleFunc("/canvas/sessions", controllers.Canvas.CreateSession)
	mux.HandleFunc("/canvas/sessions/{sid}", controllers.Canvas.Session)
	mux.HandleFunc("/canvas/sessions/{sid}/bounds", controllers.Canvas.Bounds)
	mux.HandleFunc("/canvas/sessions/{sid}/clear", controllers.Canvas.Clear)

	// Picker drops and placed item gestures
	mux.HandleFunc("/canvas/sessions/{sid}/drops", controllers.Canvas.Drop)
	mux.HandleFunc("/canvas/sessions/{sid}/items/{iid}", controllers.Canvas.RemoveItem)
	mux.HandleFunc("/canvas/sessions/{sid}/items/{iid}/drag/{action}", controllers.Canvas.Drag)

	// Save flow
	mux.HandleFunc("/canvas/sessions/{sid}/save-form", controllers.Canvas.SaveForm)
	mux.HandleFunc("/canvas/sessions/{sid}/save", controllers.Canvas.Save)
	mux.HandleFunc("/canvas/sessions/{sid}/draft", controllers.Canvas.Draft)
	mux.HandleFunc("/canvas/sessions/{sid}/preview.png", controllers.Canvas.Preview)

	// Catalog routes
	mux.HandleFunc("/catalog/items", controllers.Catalog.ListItems)
	mux.HandleFunc("/catalog/items/{id}/thumbnail", controllers.Catalog.Thumbnail)
	mux.HandleFunc("/catalog/categories", controllers.Catalog.ListCategories)
	mux.HandleFunc("/catalog/categories/{id}/items", controllers.Catalog.CategoryItems)

	// Outfits routes
	mux.HandleFunc("/outfits", controllers.Outfit.ListOutfits)
	mux.HandleFunc("/outfits/{id}", controllers.Outfit.GetOutfit)
	mux.HandleFunc("/outfits/{id}/canvas", controllers.Outfit.OpenOnCanvas)
	mux.HandleFunc("/outfits/{id}/lookbook.pdf", controllers.Outfit.Lookbook)
}
