package service

import (
	"context"

	"armario-outfits/canvas"
	"armario-outfits/models"
)

// OutfitServiceInterface defines the contract for persisting compositions as outfits
type OutfitServiceInterface interface {
	// Submit validates items and the save form, then creates the outfit in the store.
	// Nothing is sent when validation fails.
	Submit(ctx context.Context, items []models.PlacedItem, req models.SaveOutfitRequest) (*models.Outfit, error)
	// Save submits the surface contents and clears the surface on success only.
	Save(ctx context.Context, surface *canvas.Surface, req models.SaveOutfitRequest) (*models.Outfit, error)
	Reconstruct(ctx context.Context, outfit *models.Outfit) ([]models.PlacedItem, error)
	ListOutfits(ctx context.Context) ([]models.Outfit, error)
	GetOutfit(ctx context.Context, id string) (*models.Outfit, error)
}
