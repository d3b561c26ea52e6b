package repository

import (
	"context"

	"armario-outfits/models"
)

// DraftRepositoryInterface defines the contract for canvas draft storage
type DraftRepositoryInterface interface {
	SaveDraft(ctx context.Context, sessionID string, items []models.PlacedItem) error
	GetDraft(ctx context.Context, sessionID string) ([]models.PlacedItem, error)
	DeleteDraft(ctx context.Context, sessionID string) error
}
