package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"armario-outfits/canvas"
	"armario-outfits/models"
	"armario-outfits/repository"
)

// CatalogLookup resolves catalog items dropped by id
type CatalogLookup interface {
	Lookup(ctx context.Context, id string) (models.CatalogItem, error)
}

// session is one composition: a surface, its in-flight drags and the save dialog.
// mu serializes every event of the session.
type session struct {
	mu      sync.Mutex
	id      string
	surface *canvas.Surface
	drags   map[string]*canvas.DragController
	form    models.SaveFormState
	saving  bool

	// lastUsed is the UnixNano time of the last lookup
	lastUsed atomic.Int64
}

func (s *session) view() models.SessionView {
	layout := s.surface.Layout()
	return models.SessionView{
		ID:       s.id,
		Width:    layout.Width,
		Height:   layout.Height,
		Items:    s.surface.Items(),
		CanSave:  !s.surface.IsEmpty(),
		SaveForm: s.form,
	}
}

func (s *session) controller(instanceID string) (*canvas.DragController, error) {
	if c, ok := s.drags[instanceID]; ok {
		return c, nil
	}
	if _, ok := s.surface.Item(instanceID); !ok {
		return nil, fmt.Errorf("%w: %s", canvas.ErrItemNotFound, instanceID)
	}
	c := canvas.NewDragController(instanceID, s.surface, s.surface.Layout().DragScale)
	s.drags[instanceID] = c
	return c, nil
}

func dragState(c *canvas.DragController) models.DragStateResponse {
	return models.DragStateResponse{
		InstanceID: c.InstanceID(),
		State:      c.State().String(),
		Live:       c.Live(),
		Scale:      c.Scale(),
	}
}

// SessionService holds the canvas sessions of the server.
// Implements SessionServiceInterface.
type SessionService struct {
	mu       sync.RWMutex
	sessions map[string]*session
	layout   canvas.Layout
	outfits  OutfitServiceInterface
	catalog  CatalogLookup
	drafts   repository.DraftRepositoryInterface
	now      func() time.Time
}

// NewSessionService creates a new SessionService.
// drafts may be nil, in which case draft operations return ErrDraftsDisabled.
func NewSessionService(layout canvas.Layout, outfits OutfitServiceInterface, catalog CatalogLookup, drafts repository.DraftRepositoryInterface) *SessionService {
	return &SessionService{
		sessions: make(map[string]*session),
		layout:   layout.WithDefaults(),
		outfits:  outfits,
		catalog:  catalog,
		drafts:   drafts,
		now:      time.Now,
	}
}

// Ensure SessionService implements SessionServiceInterface
var _ SessionServiceInterface = (*SessionService)(nil)

func (s *SessionService) lookup(id string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	sess.lastUsed.Store(s.now().UnixNano())
	return sess, nil
}

// Create opens a new empty session. Zero bounds use the configured layout.
func (s *SessionService) Create(req models.CreateSessionRequest) (models.SessionView, error) {
	layout := s.layout
	if req.Width > 0 {
		layout.Width = req.Width
	}
	if req.Height > 0 {
		layout.Height = req.Height
	}
	if err := layout.Validate(); err != nil {
		return models.SessionView{}, &ValidationError{Field: "bounds", Message: err.Error()}
	}

	sess := &session{
		id:      uuid.NewString(),
		surface: canvas.NewSurface(layout),
		drags:   make(map[string]*canvas.DragController),
	}
	sess.lastUsed.Store(s.now().UnixNano())

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	log.Printf("✓ Canvas session created: id=%s bounds=%.0fx%.0f", sess.id, layout.Width, layout.Height)
	return sess.view(), nil
}

// Get returns the current view of a session
func (s *SessionService) Get(id string) (models.SessionView, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return models.SessionView{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.view(), nil
}

// Delete closes a session
func (s *SessionService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(s.sessions, id)
	return nil
}

// ExpireIdle closes every session not looked up for longer than maxIdle and
// returns their ids. Busy sessions and sessions with a save in flight are kept.
func (s *SessionService) ExpireIdle(maxIdle time.Duration) []string {
	cutoff := s.now().Add(-maxIdle).UnixNano()

	s.mu.Lock()
	defer s.mu.Unlock()
	var expired []string
	for id, sess := range s.sessions {
		if sess.lastUsed.Load() > cutoff {
			continue
		}
		if !sess.mu.TryLock() {
			continue
		}
		saving := sess.saving
		sess.mu.Unlock()
		if saving {
			continue
		}
		delete(s.sessions, id)
		expired = append(expired, id)
	}
	return expired
}

// RunExpiry sweeps idle sessions every interval until ctx is done.
// Drafts of expired sessions are deleted with them.
func (s *SessionService) RunExpiry(ctx context.Context, maxIdle, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx, maxIdle)
		}
	}
}

func (s *SessionService) sweep(ctx context.Context, maxIdle time.Duration) {
	expired := s.ExpireIdle(maxIdle)
	if len(expired) == 0 {
		return
	}
	log.Printf("🧹 Expired %d idle canvas sessions", len(expired))
	if s.drafts == nil {
		return
	}
	for _, id := range expired {
		if err := s.drafts.DeleteDraft(ctx, id); err != nil {
			log.Printf("⚠️  Expiry: failed to delete draft of session %s: %v", id, err)
		}
	}
}

// Resize applies new canvas bounds and re-clamps every placed item
func (s *SessionService) Resize(id string, req models.BoundsRequest) (models.SessionView, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return models.SessionView{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.surface.Resize(req.Width, req.Height); err != nil {
		return models.SessionView{}, &ValidationError{Field: "bounds", Message: err.Error()}
	}
	for _, c := range sess.drags {
		c.Refresh()
	}
	return sess.view(), nil
}

// Drop hands a picker release to the session canvas.
// ok is false when the release point is outside the drop region.
func (s *SessionService) Drop(ctx context.Context, id string, req models.DropRequest) (placed models.PlacedItem, ok bool, err error) {
	sess, err := s.lookup(id)
	if err != nil {
		return models.PlacedItem{}, false, err
	}

	var item models.CatalogItem
	switch {
	case req.Item != nil:
		item = *req.Item
	case strings.TrimSpace(req.ItemID) != "":
		if s.catalog == nil {
			return models.PlacedItem{}, false, fmt.Errorf("%w: %s", ErrCatalogItemNotFound, req.ItemID)
		}
		item, err = s.catalog.Lookup(ctx, req.ItemID)
		if err != nil {
			return models.PlacedItem{}, false, err
		}
	default:
		return models.PlacedItem{}, false, &ValidationError{Field: "item", Message: "item or itemId is required"}
	}

	release := models.Point{X: req.StartX + req.DX, Y: req.StartY + req.DY}
	if req.X != nil && req.Y != nil {
		release = models.Point{X: *req.X, Y: *req.Y}
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return canvas.HandOff(sess.surface, item, release)
}

// RemoveItem deletes a placed item; removing an unknown item is a no-op
func (s *SessionService) RemoveItem(id, instanceID string) (models.SessionView, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return models.SessionView{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.surface.RemoveItem(instanceID) {
		delete(sess.drags, instanceID)
	}
	return sess.view(), nil
}

// Clear empties the canvas and drops every in-flight drag
func (s *SessionService) Clear(id string) (models.SessionView, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return models.SessionView{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.surface.Clear()
	sess.drags = make(map[string]*canvas.DragController)
	return sess.view(), nil
}

// StartDrag begins dragging a placed item
func (s *SessionService) StartDrag(id, instanceID string) (models.DragStateResponse, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return models.DragStateResponse{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	c, err := sess.controller(instanceID)
	if err != nil {
		return models.DragStateResponse{}, err
	}
	if err := c.Start(); err != nil {
		return models.DragStateResponse{}, err
	}
	return dragState(c), nil
}

// MoveDrag records the cumulative delta of a drag in progress
func (s *SessionService) MoveDrag(id, instanceID string, req models.DragMoveRequest) (models.DragStateResponse, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return models.DragStateResponse{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	c, err := sess.controller(instanceID)
	if err != nil {
		return models.DragStateResponse{}, err
	}
	if _, err := c.Move(req.DX, req.DY); err != nil {
		return models.DragStateResponse{}, err
	}
	return dragState(c), nil
}

// ReleaseDrag commits the dragged position of an item
func (s *SessionService) ReleaseDrag(id, instanceID string) (models.PlacedItem, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return models.PlacedItem{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	c, err := sess.controller(instanceID)
	if err != nil {
		return models.PlacedItem{}, err
	}
	return c.Release()
}

// CancelDrag abandons a drag without writing anything
func (s *SessionService) CancelDrag(id, instanceID string) (models.DragStateResponse, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return models.DragStateResponse{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	c, err := sess.controller(instanceID)
	if err != nil {
		return models.DragStateResponse{}, err
	}
	c.Cancel()
	return dragState(c), nil
}

// OpenSaveForm opens the save dialog; an empty canvas cannot be saved
func (s *SessionService) OpenSaveForm(id string) (models.SaveFormState, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return models.SaveFormState{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.surface.IsEmpty() {
		return sess.form, canvas.ErrEmptyCanvas
	}
	sess.form.Open = true
	return sess.form, nil
}

// CancelSaveForm closes the save dialog and leaves the canvas untouched
func (s *SessionService) CancelSaveForm(id string) (models.SaveFormState, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return models.SaveFormState{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.form.Open = false
	return sess.form, nil
}

// Save submits the session canvas as an outfit.
// The store call runs outside the session lock on a snapshot. On success the
// canvas is cleared only if nothing changed it meanwhile; on failure the
// session keeps its pre-submit state and the form stays open with its values.
func (s *SessionService) Save(ctx context.Context, id string, req models.SaveOutfitRequest) (*models.Outfit, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if sess.saving {
		sess.mu.Unlock()
		return nil, ErrSaveInProgress
	}
	if sess.surface.IsEmpty() {
		sess.mu.Unlock()
		return nil, canvas.ErrEmptyCanvas
	}
	sess.saving = true
	sess.form.Name = req.Name
	sess.form.Occasion = req.Occasion
	sess.form.PlannedDate = req.PlannedDate
	snapshot := sess.surface.Items()
	generation := sess.surface.Generation()
	sess.mu.Unlock()

	outfit, err := s.outfits.Submit(ctx, snapshot, req)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.saving = false
	if err != nil {
		return nil, err
	}

	if sess.surface.Generation() == generation {
		sess.surface.Clear()
		sess.drags = make(map[string]*canvas.DragController)
	} else {
		log.Printf("⚠️  Save: session %s changed during save, keeping canvas", id)
	}
	sess.form = models.SaveFormState{}

	if s.drafts != nil {
		if err := s.drafts.DeleteDraft(ctx, id); err != nil {
			log.Printf("⚠️  Save: failed to delete draft of session %s: %v", id, err)
		}
	}
	return outfit, nil
}

// SaveDraft stores the current canvas of a session
func (s *SessionService) SaveDraft(ctx context.Context, id string) (models.SessionView, error) {
	if s.drafts == nil {
		return models.SessionView{}, ErrDraftsDisabled
	}
	sess, err := s.lookup(id)
	if err != nil {
		return models.SessionView{}, err
	}

	sess.mu.Lock()
	view := sess.view()
	sess.mu.Unlock()

	if err := s.drafts.SaveDraft(ctx, id, view.Items); err != nil {
		return models.SessionView{}, err
	}
	return view, nil
}

// LoadDraft replaces the session canvas with its stored draft.
// Items are re-validated and re-clamped to the current bounds.
func (s *SessionService) LoadDraft(ctx context.Context, id string) (models.SessionView, error) {
	if s.drafts == nil {
		return models.SessionView{}, ErrDraftsDisabled
	}
	sess, err := s.lookup(id)
	if err != nil {
		return models.SessionView{}, err
	}

	items, err := s.drafts.GetDraft(ctx, id)
	if err != nil {
		return models.SessionView{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.surface.Restore(items); err != nil {
		return models.SessionView{}, err
	}
	sess.drags = make(map[string]*canvas.DragController)
	return sess.view(), nil
}

// LoadOutfit places a stored outfit onto a new session
func (s *SessionService) LoadOutfit(ctx context.Context, outfitID string) (models.SessionView, error) {
	outfit, err := s.outfits.GetOutfit(ctx, outfitID)
	if err != nil {
		return models.SessionView{}, err
	}
	items, err := s.outfits.Reconstruct(ctx, outfit)
	if err != nil {
		return models.SessionView{}, err
	}

	view, err := s.Create(models.CreateSessionRequest{})
	if err != nil {
		return models.SessionView{}, err
	}
	sess, err := s.lookup(view.ID)
	if err != nil {
		return models.SessionView{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.surface.Restore(items); err != nil {
		return models.SessionView{}, err
	}
	log.Printf("✓ Outfit %s loaded into session %s: items=%d", outfitID, sess.id, len(items))
	return sess.view(), nil
}

// Snapshot returns the layout and items of a session for rendering
func (s *SessionService) Snapshot(id string) (canvas.Layout, []models.PlacedItem, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return canvas.Layout{}, nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.surface.Layout(), sess.surface.Items(), nil
}

// IsNotFound reports whether err means an unknown session, item, outfit or draft
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, canvas.ErrItemNotFound) ||
		errors.Is(err, ErrCatalogItemNotFound) ||
		errors.Is(err, ErrOutfitNotFound) ||
		errors.Is(err, repository.ErrDraftNotFound)
}
