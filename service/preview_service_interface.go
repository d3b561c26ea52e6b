package service

import (
	"context"

	"armario-outfits/canvas"
	"armario-outfits/models"
)

// PreviewServiceInterface defines the contract for rendering compositions
type PreviewServiceInterface interface {
	RenderPNG(ctx context.Context, layout canvas.Layout, items []models.PlacedItem) ([]byte, error)
	RenderPDF(ctx context.Context, outfit *models.Outfit, layout canvas.Layout, items []models.PlacedItem) ([]byte, error)
}

// Ensure PreviewService implements PreviewServiceInterface
var _ PreviewServiceInterface = (*PreviewService)(nil)
