package controller

import (
	"fmt"
	"log"
	"net/http"

	"armario-outfits/canvas"
	"armario-outfits/service"
)

// OutfitController handles HTTP requests for stored outfits
type OutfitController struct {
	outfits  service.OutfitServiceInterface
	sessions service.SessionServiceInterface
	preview  service.PreviewServiceInterface
	layout   canvas.Layout
}

// NewOutfitController creates a new OutfitController.
// layout sizes the printed lookbook board.
func NewOutfitController(outfits service.OutfitServiceInterface, sessions service.SessionServiceInterface, preview service.PreviewServiceInterface, layout canvas.Layout) *OutfitController {
	return &OutfitController{
		outfits:  outfits,
		sessions: sessions,
		preview:  preview,
		layout:   layout.WithDefaults(),
	}
}

// ListOutfits handles GET /outfits
func (c *OutfitController) ListOutfits(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ListOutfits: Received %s request to %s", r.Method, r.URL.Path)
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "ListOutfits", r)
		return
	}

	outfits, err := c.outfits.ListOutfits(r.Context())
	if err != nil {
		writeError(w, "ListOutfits", err)
		return
	}

	log.Printf("✅ ListOutfits: Returning %d outfits", len(outfits))
	writeJSON(w, "ListOutfits", http.StatusOK, outfits)
}

// GetOutfit handles GET /outfits/{id}
func (c *OutfitController) GetOutfit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GetOutfit", r)
		return
	}

	outfit, err := c.outfits.GetOutfit(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, "GetOutfit", err)
		return
	}
	writeJSON(w, "GetOutfit", http.StatusOK, outfit)
}

// OpenOnCanvas handles GET /outfits/{id}/canvas
// It opens a new session holding the reconstructed outfit.
func (c *OutfitController) OpenOnCanvas(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "OpenOnCanvas", r)
		return
	}

	view, err := c.sessions.LoadOutfit(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, "OpenOnCanvas", err)
		return
	}

	log.Printf("✅ OpenOnCanvas: Session %s holds %d items", view.ID, len(view.Items))
	writeJSON(w, "OpenOnCanvas", http.StatusOK, view)
}

// Lookbook handles GET /outfits/{id}/lookbook.pdf
func (c *OutfitController) Lookbook(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Lookbook: Received %s request to %s", r.Method, r.URL.Path)
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "Lookbook", r)
		return
	}

	id := r.PathValue("id")
	outfit, err := c.outfits.GetOutfit(r.Context(), id)
	if err != nil {
		writeError(w, "Lookbook", err)
		return
	}

	items, err := c.outfits.Reconstruct(r.Context(), outfit)
	if err != nil {
		writeError(w, "Lookbook", err)
		return
	}

	pdf, err := c.preview.RenderPDF(r.Context(), outfit, c.layout, items)
	if err != nil {
		writeError(w, "Lookbook", err)
		return
	}

	writeBinary(w, "Lookbook", "application/pdf", fmt.Sprintf("outfit_%s.pdf", id), pdf)
}
