package controller

import (
	"fmt"
	"log"
	"net/http"

	"armario-outfits/models"
	"armario-outfits/service"
)

// CanvasController handles HTTP requests for canvas sessions
type CanvasController struct {
	sessions service.SessionServiceInterface
	preview  service.PreviewServiceInterface
}

// NewCanvasController creates a new CanvasController
func NewCanvasController(sessions service.SessionServiceInterface, preview service.PreviewServiceInterface) *CanvasController {
	return &CanvasController{
		sessions: sessions,
		preview:  preview,
	}
}

// CreateSession handles POST /canvas/sessions
func (c *CanvasController) CreateSession(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateSession: Received %s request to %s", r.Method, r.URL.Path)
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "CreateSession", r)
		return
	}

	var req models.CreateSessionRequest
	if !decodeBody(w, r, "CreateSession", &req) {
		return
	}

	view, err := c.sessions.Create(req)
	if err != nil {
		writeError(w, "CreateSession", err)
		return
	}

	log.Printf("✅ CreateSession: Session created - id=%s", view.ID)
	writeJSON(w, "CreateSession", http.StatusCreated, view)
}

// Session handles GET and DELETE /canvas/sessions/{sid}
func (c *CanvasController) Session(w http.ResponseWriter, r *http.Request) {
	sid := r.PathValue("sid")
	switch r.Method {
	case http.MethodGet:
		view, err := c.sessions.Get(sid)
		if err != nil {
			writeError(w, "GetSession", err)
			return
		}
		writeJSON(w, "GetSession", http.StatusOK, view)
	case http.MethodDelete:
		log.Printf("📥 DeleteSession: Received request for session %s", sid)
		if err := c.sessions.Delete(sid); err != nil {
			writeError(w, "DeleteSession", err)
			return
		}
		log.Printf("✅ DeleteSession: Session %s closed", sid)
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w, "Session", r)
	}
}

// Bounds handles PUT /canvas/sessions/{sid}/bounds
func (c *CanvasController) Bounds(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w, "Bounds", r)
		return
	}

	var req models.BoundsRequest
	if !decodeBody(w, r, "Bounds", &req) {
		return
	}

	view, err := c.sessions.Resize(r.PathValue("sid"), req)
	if err != nil {
		writeError(w, "Bounds", err)
		return
	}
	writeJSON(w, "Bounds", http.StatusOK, view)
}

// Drop handles POST /canvas/sessions/{sid}/drops
// A release outside the canvas answers 204 and creates nothing.
func (c *CanvasController) Drop(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Drop: Received %s request to %s", r.Method, r.URL.Path)
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "Drop", r)
		return
	}

	var req models.DropRequest
	if !decodeBody(w, r, "Drop", &req) {
		return
	}

	placed, ok, err := c.sessions.Drop(r.Context(), r.PathValue("sid"), req)
	if err != nil {
		writeError(w, "Drop", err)
		return
	}
	if !ok {
		log.Printf("⚠️  Drop: Release point outside the canvas, nothing placed")
		w.WriteHeader(http.StatusNoContent)
		return
	}

	log.Printf("✅ Drop: Item placed - instance=%s item=%s at (%.0f, %.0f)", placed.InstanceID, placed.CatalogItemID, placed.X, placed.Y)
	writeJSON(w, "Drop", http.StatusCreated, placed)
}

// RemoveItem handles DELETE /canvas/sessions/{sid}/items/{iid}
func (c *CanvasController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w, "RemoveItem", r)
		return
	}

	view, err := c.sessions.RemoveItem(r.PathValue("sid"), r.PathValue("iid"))
	if err != nil {
		writeError(w, "RemoveItem", err)
		return
	}
	writeJSON(w, "RemoveItem", http.StatusOK, view)
}

// Drag handles POST /canvas/sessions/{sid}/items/{iid}/drag/{action}
// where action is start, move, release or cancel
func (c *CanvasController) Drag(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "Drag", r)
		return
	}

	sid, iid := r.PathValue("sid"), r.PathValue("iid")
	switch action := r.PathValue("action"); action {
	case "start":
		state, err := c.sessions.StartDrag(sid, iid)
		if err != nil {
			writeError(w, "DragStart", err)
			return
		}
		writeJSON(w, "DragStart", http.StatusOK, state)
	case "move":
		var req models.DragMoveRequest
		if !decodeBody(w, r, "DragMove", &req) {
			return
		}
		state, err := c.sessions.MoveDrag(sid, iid, req)
		if err != nil {
			writeError(w, "DragMove", err)
			return
		}
		writeJSON(w, "DragMove", http.StatusOK, state)
	case "release":
		item, err := c.sessions.ReleaseDrag(sid, iid)
		if err != nil {
			writeError(w, "DragRelease", err)
			return
		}
		log.Printf("✅ DragRelease: Item %s committed at (%.0f, %.0f)", item.InstanceID, item.X, item.Y)
		writeJSON(w, "DragRelease", http.StatusOK, item)
	case "cancel":
		state, err := c.sessions.CancelDrag(sid, iid)
		if err != nil {
			writeError(w, "DragCancel", err)
			return
		}
		writeJSON(w, "DragCancel", http.StatusOK, state)
	default:
		log.Printf("❌ Drag: Unknown action %q", action)
		http.Error(w, "Not found", http.StatusNotFound)
	}
}

// Clear handles POST /canvas/sessions/{sid}/clear
func (c *CanvasController) Clear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "Clear", r)
		return
	}

	view, err := c.sessions.Clear(r.PathValue("sid"))
	if err != nil {
		writeError(w, "Clear", err)
		return
	}
	writeJSON(w, "Clear", http.StatusOK, view)
}

// SaveForm handles POST (open) and DELETE (cancel) /canvas/sessions/{sid}/save-form
func (c *CanvasController) SaveForm(w http.ResponseWriter, r *http.Request) {
	sid := r.PathValue("sid")
	switch r.Method {
	case http.MethodPost:
		form, err := c.sessions.OpenSaveForm(sid)
		if err != nil {
			writeError(w, "OpenSaveForm", err)
			return
		}
		writeJSON(w, "OpenSaveForm", http.StatusOK, form)
	case http.MethodDelete:
		form, err := c.sessions.CancelSaveForm(sid)
		if err != nil {
			writeError(w, "CancelSaveForm", err)
			return
		}
		writeJSON(w, "CancelSaveForm", http.StatusOK, form)
	default:
		methodNotAllowed(w, "SaveForm", r)
	}
}

// Save handles POST /canvas/sessions/{sid}/save
func (c *CanvasController) Save(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 SaveOutfit: Received %s request to %s", r.Method, r.URL.Path)
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "SaveOutfit", r)
		return
	}

	var req models.SaveOutfitRequest
	if !decodeBody(w, r, "SaveOutfit", &req) {
		return
	}

	outfit, err := c.sessions.Save(r.Context(), r.PathValue("sid"), req)
	if err != nil {
		writeError(w, "SaveOutfit", err)
		return
	}

	log.Printf("✅ SaveOutfit: Outfit saved - id=%s name=%q", outfit.ID, outfit.Name)
	writeJSON(w, "SaveOutfit", http.StatusCreated, outfit)
}

// Draft handles POST (store) and GET (restore) /canvas/sessions/{sid}/draft
func (c *CanvasController) Draft(w http.ResponseWriter, r *http.Request) {
	sid := r.PathValue("sid")
	switch r.Method {
	case http.MethodPost:
		view, err := c.sessions.SaveDraft(r.Context(), sid)
		if err != nil {
			writeError(w, "SaveDraft", err)
			return
		}
		writeJSON(w, "SaveDraft", http.StatusOK, view)
	case http.MethodGet:
		view, err := c.sessions.LoadDraft(r.Context(), sid)
		if err != nil {
			writeError(w, "LoadDraft", err)
			return
		}
		writeJSON(w, "LoadDraft", http.StatusOK, view)
	default:
		methodNotAllowed(w, "Draft", r)
	}
}

// Preview handles GET /canvas/sessions/{sid}/preview.png
func (c *CanvasController) Preview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "Preview", r)
		return
	}

	sid := r.PathValue("sid")
	layout, items, err := c.sessions.Snapshot(sid)
	if err != nil {
		writeError(w, "Preview", err)
		return
	}

	png, err := c.preview.RenderPNG(r.Context(), layout, items)
	if err != nil {
		writeError(w, "Preview", err)
		return
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	writeBinary(w, "Preview", "image/png", fmt.Sprintf("canvas_%s.png", sid), png)
}
