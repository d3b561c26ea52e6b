package service

import (
	"context"

	"armario-outfits/models"
)

// PickerServiceInterface defines the contract for the item source picker
type PickerServiceInterface interface {
	CatalogLookup
	Items(ctx context.Context, category, query string) ([]models.CatalogItem, error)
	CategoryItems(ctx context.Context, categoryID, query string) ([]models.CatalogItem, error)
	Categories(ctx context.Context) ([]models.Category, error)
	Thumbnail(ctx context.Context, itemID, size string) ([]byte, error)
}

// Ensure PickerService implements PickerServiceInterface
var _ PickerServiceInterface = (*PickerService)(nil)
