package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"armario-outfits/models"
)

// maxImageBytes bounds image downloads from the store
const maxImageBytes = 20 << 20

// StoreClient talks to the external closet store over its REST interface.
// Implements StoreClientInterface.
type StoreClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewStoreClient creates a StoreClient with a bounded request timeout
func NewStoreClient(baseURL string, timeout time.Duration) *StoreClient {
	return &StoreClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Ensure StoreClient implements StoreClientInterface
var _ StoreClientInterface = (*StoreClient)(nil)

// ListItems handles GET /items
func (c *StoreClient) ListItems(ctx context.Context) ([]models.CatalogItem, error) {
	return c.listItems(ctx, "list items", "/items")
}

// ListItemsByType handles GET /itemType/{id}/items
func (c *StoreClient) ListItemsByType(ctx context.Context, typeID string) ([]models.CatalogItem, error) {
	return c.listItems(ctx, "list items by type", "/itemType/"+url.PathEscape(typeID)+"/items")
}

func (c *StoreClient) listItems(ctx context.Context, op, path string) ([]models.CatalogItem, error) {
	body, err := c.do(ctx, op, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	raw, err := decodeCollection[rawCatalogItem](body, "items", "data")
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("decode items: %w", err)}
	}

	items := make([]models.CatalogItem, 0, len(raw))
	for _, r := range raw {
		items = append(items, r.normalize())
	}
	log.Printf("🔍 Store: %s returned %d items", op, len(items))
	return items, nil
}

// ListItemTypes handles GET /itemType
func (c *StoreClient) ListItemTypes(ctx context.Context) ([]models.Category, error) {
	const op = "list item types"
	body, err := c.do(ctx, op, http.MethodGet, "/itemType", nil)
	if err != nil {
		return nil, err
	}
	raw, err := decodeCollection[rawCategory](body, "itemTypes", "data")
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("decode item types: %w", err)}
	}

	categories := make([]models.Category, 0, len(raw))
	for _, r := range raw {
		categories = append(categories, r.normalize())
	}
	return categories, nil
}

// CreateOutfit handles POST /outfits
func (c *StoreClient) CreateOutfit(ctx context.Context, payload models.CreateOutfitPayload) (*models.Outfit, error) {
	const op = "create outfit"
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode outfit: %w", err)
	}

	body, err := c.do(ctx, op, http.MethodPost, "/outfits", encoded)
	if err != nil {
		return nil, err
	}

	raw, err := decodeDocument[rawOutfit](body, "outfit", "data")
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("decode outfit: %w", err)}
	}
	outfit := raw.normalize()
	log.Printf("✅ Store: outfit created id=%s items=%d", outfit.ID, len(outfit.Items))
	return &outfit, nil
}

// ListOutfits handles GET /outfits
func (c *StoreClient) ListOutfits(ctx context.Context) ([]models.Outfit, error) {
	const op = "list outfits"
	body, err := c.do(ctx, op, http.MethodGet, "/outfits", nil)
	if err != nil {
		return nil, err
	}
	raw, err := decodeCollection[rawOutfit](body, "outfits", "data")
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("decode outfits: %w", err)}
	}

	outfits := make([]models.Outfit, 0, len(raw))
	for _, r := range raw {
		outfits = append(outfits, r.normalize())
	}
	return outfits, nil
}

// GetOutfit handles GET /outfits/{id}
func (c *StoreClient) GetOutfit(ctx context.Context, id string) (*models.Outfit, error) {
	const op = "get outfit"
	body, err := c.do(ctx, op, http.MethodGet, "/outfits/"+url.PathEscape(id), nil)
	if err != nil {
		var transportErr *TransportError
		if errors.As(err, &transportErr) && transportErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrOutfitNotFound, id)
		}
		return nil, err
	}

	raw, err := decodeDocument[rawOutfit](body, "outfit", "data")
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("decode outfit: %w", err)}
	}
	outfit := raw.normalize()
	return &outfit, nil
}

// FetchImage loads the bytes behind an image reference.
// Absolute URLs are fetched as-is, data URIs are decoded, and relative paths
// are resolved against the store base URL.
func (c *StoreClient) FetchImage(ctx context.Context, ref string) ([]byte, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("empty image reference")
	}

	if strings.HasPrefix(ref, "data:") {
		return decodeDataURI(ref)
	}

	target := ref
	if !strings.HasPrefix(ref, "http://") && !strings.HasPrefix(ref, "https://") {
		target = c.baseURL + "/" + strings.TrimLeft(ref, "/")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build image request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "fetch image", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Op: "fetch image", StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	return data, nil
}

// do issues a request and returns the body of a 2xx response.
// Non-2xx responses become a TransportError carrying the store's {message}.
func (c *StoreClient) do(ctx context.Context, op, method, path string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("❌ Store: %s %s failed: %v", method, path, err)
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := storeErrorMessage(body)
		log.Printf("❌ Store: %s %s returned %d: %s", method, path, resp.StatusCode, message)
		return nil, &TransportError{Op: op, StatusCode: resp.StatusCode, Message: message}
	}
	return body, nil
}

// storeErrorMessage extracts {message} (or {error}) from an error payload
func storeErrorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return ""
}

func decodeDataURI(ref string) ([]byte, error) {
	comma := strings.IndexByte(ref, ',')
	if comma < 0 {
		return nil, fmt.Errorf("malformed data URI")
	}
	meta, data := ref[len("data:"):comma], ref[comma+1:]
	if !strings.HasSuffix(meta, ";base64") {
		decoded, err := url.PathUnescape(data)
		if err != nil {
			return nil, fmt.Errorf("malformed data URI: %w", err)
		}
		return []byte(decoded), nil
	}
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("malformed base64 data URI: %w", err)
	}
	return decoded, nil
}
