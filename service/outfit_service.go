package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"armario-outfits/canvas"
	"armario-outfits/models"
)

const plannedDateLayout = "2006-01-02"

// OutfitService validates canvas compositions and persists them as outfits.
// Implements OutfitServiceInterface.
type OutfitService struct {
	store           StoreClientInterface
	userID          string
	defaultOccasion string
	layout          canvas.Layout
}

// NewOutfitService creates a new OutfitService.
// layout is used to reconstruct stored outfits onto a canvas.
func NewOutfitService(store StoreClientInterface, userID, defaultOccasion string, layout canvas.Layout) *OutfitService {
	return &OutfitService{
		store:           store,
		userID:          userID,
		defaultOccasion: defaultOccasion,
		layout:          layout,
	}
}

// Ensure OutfitService implements OutfitServiceInterface
var _ OutfitServiceInterface = (*OutfitService)(nil)

// BuildPayload validates the save form and items and builds the store payload
func (s *OutfitService) BuildPayload(items []models.PlacedItem, req models.SaveOutfitRequest) (models.CreateOutfitPayload, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.CreateOutfitPayload{}, &ValidationError{Field: "name", Message: "Please enter a name for your outfit."}
	}

	plannedDate := strings.TrimSpace(req.PlannedDate)
	if plannedDate != "" {
		if _, err := time.Parse(plannedDateLayout, plannedDate); err != nil {
			return models.CreateOutfitPayload{}, &ValidationError{Field: "plannedDate", Message: "Planned date must be formatted as YYYY-MM-DD."}
		}
	}

	if err := canvas.ValidateItems(items); err != nil {
		return models.CreateOutfitPayload{}, err
	}

	occasion := strings.TrimSpace(req.Occasion)
	if occasion == "" {
		occasion = s.defaultOccasion
	}

	payload := models.CreateOutfitPayload{
		Name:        name,
		Occasion:    occasion,
		PlannedDate: plannedDate,
		User:        s.userID,
		Items:       make([]models.OutfitItem, 0, len(items)),
	}
	for _, item := range items {
		payload.Items = append(payload.Items, models.OutfitItem{
			CatalogItemID: item.CatalogItemID,
			X:             item.X,
			Y:             item.Y,
			Width:         item.Width,
			Height:        item.Height,
			Rotation:      item.Rotation,
			ZIndex:        item.ZIndex,
		})
	}
	return payload, nil
}

// Submit validates and creates the outfit. Store failures come back as a
// TransportError whose message is the store's own.
func (s *OutfitService) Submit(ctx context.Context, items []models.PlacedItem, req models.SaveOutfitRequest) (*models.Outfit, error) {
	if len(items) == 0 {
		return nil, canvas.ErrEmptyCanvas
	}

	payload, err := s.BuildPayload(items, req)
	if err != nil {
		log.Printf("❌ SaveOutfit: validation failed: %v", err)
		return nil, err
	}

	log.Printf("📋 SaveOutfit: submitting name=%q occasion=%q items=%d", payload.Name, payload.Occasion, len(payload.Items))
	outfit, err := s.store.CreateOutfit(ctx, payload)
	if err != nil {
		log.Printf("❌ SaveOutfit: store rejected outfit: %v", err)
		var transportErr *TransportError
		if errors.As(err, &transportErr) {
			return nil, err
		}
		return nil, &TransportError{Op: "create outfit", Err: err}
	}

	log.Printf("✅ SaveOutfit: outfit saved id=%s", outfit.ID)
	return outfit, nil
}

// Save submits the surface and clears it only when the store accepted the outfit
func (s *OutfitService) Save(ctx context.Context, surface *canvas.Surface, req models.SaveOutfitRequest) (*models.Outfit, error) {
	if surface.IsEmpty() {
		return nil, canvas.ErrEmptyCanvas
	}
	outfit, err := s.Submit(ctx, surface.Items(), req)
	if err != nil {
		return nil, err
	}
	surface.Clear()
	return outfit, nil
}

// Reconstruct turns a stored outfit back into placed items with fresh
// instance ids. Display names and images are filled from the catalog when it
// can be fetched.
func (s *OutfitService) Reconstruct(ctx context.Context, outfit *models.Outfit) ([]models.PlacedItem, error) {
	catalog := make(map[string]models.CatalogItem)
	if items, err := s.store.ListItems(ctx); err != nil {
		log.Printf("⚠️  Reconstruct: catalog unavailable, placing items without names: %v", err)
	} else {
		for _, item := range items {
			catalog[item.ID] = item
		}
	}

	placed := make([]models.PlacedItem, 0, len(outfit.Items))
	for _, item := range outfit.Items {
		entry := catalog[item.CatalogItemID]
		placed = append(placed, models.PlacedItem{
			CatalogItemID: item.CatalogItemID,
			ImageRef:      entry.ImageRef,
			DisplayName:   entry.Name,
			X:             item.X,
			Y:             item.Y,
			Width:         item.Width,
			Height:        item.Height,
			Rotation:      item.Rotation,
			ZIndex:        item.ZIndex,
		})
	}

	surface := canvas.NewSurface(s.layout)
	if err := surface.Restore(placed); err != nil {
		return nil, fmt.Errorf("failed to reconstruct outfit %s: %w", outfit.ID, err)
	}
	return surface.Items(), nil
}

// ListOutfits returns the outfits stored for the configured user
func (s *OutfitService) ListOutfits(ctx context.Context) ([]models.Outfit, error) {
	outfits, err := s.store.ListOutfits(ctx)
	if err != nil {
		return nil, err
	}
	if s.userID == "" {
		return outfits, nil
	}

	owned := make([]models.Outfit, 0, len(outfits))
	for _, outfit := range outfits {
		if outfit.User == "" || outfit.User == s.userID {
			owned = append(owned, outfit)
		}
	}
	return owned, nil
}

// GetOutfit returns one stored outfit
func (s *OutfitService) GetOutfit(ctx context.Context, id string) (*models.Outfit, error) {
	return s.store.GetOutfit(ctx, id)
}
