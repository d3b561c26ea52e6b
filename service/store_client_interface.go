package service

import (
	"context"

	"armario-outfits/models"
)

// StoreClientInterface defines the contract for the external closet store
type StoreClientInterface interface {
	ListItems(ctx context.Context) ([]models.CatalogItem, error)
	ListItemsByType(ctx context.Context, typeID string) ([]models.CatalogItem, error)
	ListItemTypes(ctx context.Context) ([]models.Category, error)
	CreateOutfit(ctx context.Context, payload models.CreateOutfitPayload) (*models.Outfit, error)
	ListOutfits(ctx context.Context) ([]models.Outfit, error)
	GetOutfit(ctx context.Context, id string) (*models.Outfit, error)
	FetchImage(ctx context.Context, ref string) ([]byte, error)
}
