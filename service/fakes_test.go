package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"armario-outfits/models"
)

// fakeStore is an in-memory StoreClientInterface recording every outfit it receives
type fakeStore struct {
	mu        sync.Mutex
	items     []models.CatalogItem
	types     []models.Category
	outfits   []models.Outfit
	created   []models.CreateOutfitPayload
	images    map[string][]byte
	createErr error
	listErr   error
	// block, when set, is waited on inside CreateOutfit
	block chan struct{}
}

func newFakeStore(items ...models.CatalogItem) *fakeStore {
	return &fakeStore{items: items, images: make(map[string][]byte)}
}

func (f *fakeStore) ListItems(ctx context.Context) ([]models.CatalogItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.CatalogItem(nil), f.items...), nil
}

func (f *fakeStore) ListItemsByType(ctx context.Context, typeID string) ([]models.CatalogItem, error) {
	items, err := f.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.CatalogItem
	for _, item := range items {
		if item.Type == typeID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeStore) ListItemTypes(ctx context.Context) ([]models.Category, error) {
	return f.types, nil
}

func (f *fakeStore) CreateOutfit(ctx context.Context, payload models.CreateOutfitPayload) (*models.Outfit, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, payload)
	if f.createErr != nil {
		return nil, f.createErr
	}
	outfit := models.Outfit{
		ID:          "outfit-" + payload.Name,
		Name:        payload.Name,
		Occasion:    payload.Occasion,
		PlannedDate: payload.PlannedDate,
		User:        payload.User,
		Items:       payload.Items,
	}
	f.outfits = append(f.outfits, outfit)
	return &outfit, nil
}

func (f *fakeStore) ListOutfits(ctx context.Context) ([]models.Outfit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Outfit(nil), f.outfits...), nil
}

func (f *fakeStore) GetOutfit(ctx context.Context, id string) (*models.Outfit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, outfit := range f.outfits {
		if outfit.ID == id {
			found := outfit
			return &found, nil
		}
	}
	return nil, ErrOutfitNotFound
}

func (f *fakeStore) FetchImage(ctx context.Context, ref string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.images[ref]
	if !ok {
		return nil, &TransportError{Op: "fetch image", StatusCode: 404}
	}
	return data, nil
}

func (f *fakeStore) createdCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

// pngBytes returns a solid-colour PNG of the given size
func pngBytes(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

var (
	miniDress = models.CatalogItem{ID: "abc123", Name: "Mini Dress", ImageRef: "/img/abc123.png", Type: "dresses"}
	denim     = models.CatalogItem{ID: "def456", Name: "Denim Jacket", ImageRef: "/img/def456.png", Type: "jackets"}
)
