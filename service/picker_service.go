package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"armario-outfits/canvas"
	"armario-outfits/models"
)

// PickerService supplies draggable catalog entries to the composer.
// Filtering and search run over the fetched list and never touch a canvas.
type PickerService struct {
	store    StoreClientInterface
	cacheDir string
}

// NewPickerService creates a new PickerService.
// Optimized thumbnails are cached under cacheDir.
func NewPickerService(store StoreClientInterface, cacheDir string) *PickerService {
	return &PickerService{
		store:    store,
		cacheDir: cacheDir,
	}
}

// Items returns the catalog filtered by category and name search
func (s *PickerService) Items(ctx context.Context, category, query string) ([]models.CatalogItem, error) {
	items, err := s.store.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	return canvas.FilterCatalog(items, category, query), nil
}

// CategoryItems returns the items of one category as the store groups them
func (s *PickerService) CategoryItems(ctx context.Context, categoryID, query string) ([]models.CatalogItem, error) {
	items, err := s.store.ListItemsByType(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category %s: %w", categoryID, err)
	}
	return canvas.FilterCatalog(items, "", query), nil
}

// Categories returns the item types of the store
func (s *PickerService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.store.ListItemTypes(ctx)
}

// Lookup resolves a catalog item by id
func (s *PickerService) Lookup(ctx context.Context, id string) (models.CatalogItem, error) {
	id = strings.TrimSpace(id)
	items, err := s.store.ListItems(ctx)
	if err != nil {
		return models.CatalogItem{}, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}
	return models.CatalogItem{}, fmt.Errorf("%w: %s", ErrCatalogItemNotFound, id)
}

// Thumbnail returns an optimized JPEG of a catalog item image, cached on disk
func (s *PickerService) Thumbnail(ctx context.Context, itemID, size string) ([]byte, error) {
	size = NormalizeThumbnailSize(size)
	cachePath := GetCachePath(s.cacheDir, itemID, size)
	if CacheExists(cachePath) {
		data, err := ReadFromCache(cachePath)
		if err == nil {
			return data, nil
		}
		log.Printf("⚠️  Thumbnail: cache read failed for %s, regenerating: %v", cachePath, err)
	}

	item, err := s.Lookup(ctx, itemID)
	if err != nil {
		return nil, err
	}

	raw, err := s.store.FetchImage(ctx, item.ImageRef)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image for item %s: %w", itemID, err)
	}

	optimized, err := OptimizeImage(raw, size)
	if err != nil {
		return nil, fmt.Errorf("failed to optimize image for item %s: %w", itemID, err)
	}

	if err := SaveToCache(cachePath, optimized); err != nil {
		log.Printf("⚠️  Thumbnail: %v", err)
	}
	return optimized, nil
}
