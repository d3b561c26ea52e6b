package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"image"
	"image/color"
	"log"
	"math"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/disintegration/imaging"

	"armario-outfits/canvas"
	"armario-outfits/models"
)

// ImageFetcher loads the bytes behind an image reference
type ImageFetcher interface {
	FetchImage(ctx context.Context, ref string) ([]byte, error)
}

// PreviewService renders compositions to images and printable sheets
type PreviewService struct {
	images     ImageFetcher
	chromePath string
}

// NewPreviewService creates a new PreviewService.
// chromePath may be empty, in which case common install paths are probed.
func NewPreviewService(images ImageFetcher, chromePath string) *PreviewService {
	return &PreviewService{
		images:     images,
		chromePath: chromePath,
	}
}

// stackingOrder returns items sorted by zIndex; equal zIndex keeps insertion order
func stackingOrder(items []models.PlacedItem) []models.PlacedItem {
	ordered := make([]models.PlacedItem, len(items))
	copy(ordered, items)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ZIndex < ordered[j].ZIndex
	})
	return ordered
}

// RenderPNG composites the placed items onto a white canvas the size of layout.
// Items whose image cannot be loaded are drawn as a grey placeholder.
func (s *PreviewService) RenderPNG(ctx context.Context, layout canvas.Layout, items []models.PlacedItem) ([]byte, error) {
	limit := layout.Limit()
	if layout.Width > limit || layout.Height > limit {
		return nil, &ValidationError{Field: "bounds", Message: fmt.Sprintf("preview size %vx%v exceeds the %v limit", layout.Width, layout.Height, limit)}
	}
	width, height := int(layout.Width), int(layout.Height)
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid preview size %dx%d", width, height)
	}

	dst := imaging.New(width, height, color.White)
	for _, item := range stackingOrder(items) {
		tile := s.loadTile(ctx, item, limit)
		if item.Rotation != 0 {
			// imaging rotates counter-clockwise, canvas rotation is clockwise
			tile = imaging.Rotate(tile, -item.Rotation, color.Transparent)
		}
		dst = imaging.Overlay(dst, tile, image.Pt(int(item.X), int(item.Y)), 1.0)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, dst, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}
	log.Printf("✓ Preview rendered: %dx%d, items=%d, output_size=%d bytes", width, height, len(items), buf.Len())
	return buf.Bytes(), nil
}

// tileSide converts an item dimension to pixels, bounded by limit
func tileSide(v, fallback, limit float64) int {
	if v <= 0 {
		v = fallback
	}
	return int(math.Min(v, limit))
}

func (s *PreviewService) loadTile(ctx context.Context, item models.PlacedItem, limit float64) image.Image {
	w := tileSide(item.Width, canvas.DefaultItemWidth, limit)
	h := tileSide(item.Height, canvas.DefaultItemHeight, limit)
	placeholder := imaging.New(w, h, color.NRGBA{R: 0xe6, G: 0xe6, B: 0xe6, A: 0xff})

	if item.ImageRef == "" {
		return placeholder
	}
	data, err := s.images.FetchImage(ctx, item.ImageRef)
	if err != nil {
		log.Printf("⚠️  Preview: image for %s unavailable: %v", item.CatalogItemID, err)
		return placeholder
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		log.Printf("⚠️  Preview: image for %s undecodable: %v", item.CatalogItemID, err)
		return placeholder
	}
	return imaging.Resize(img, w, h, imaging.Lanczos)
}

var lookbookTemplate = template.Must(template.New("lookbook").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { margin: 0; font-family: Helvetica, Arial, sans-serif; }
  header { padding: 24px 32px 8px; }
  h1 { margin: 0; font-size: 28px; }
  .meta { color: #666; font-size: 14px; margin-top: 4px; }
  .board { position: relative; margin: 16px 32px; background: #fff; border: 1px solid #ddd; width: {{.Width}}px; height: {{.Height}}px; }
  .item { position: absolute; }
  .item img { width: 100%; height: 100%; object-fit: contain; border-radius: 6px; }
  ul { margin: 0 32px; padding: 0; list-style: none; font-size: 14px; }
</style>
</head>
<body>
<header>
  <h1>{{.Name}}</h1>
  <div class="meta">{{.Occasion}}{{if .PlannedDate}} · {{.PlannedDate}}{{end}}</div>
</header>
<div class="board">
{{range .Items}}  <div class="item" style="left: {{.X}}px; top: {{.Y}}px; width: {{.Width}}px; height: {{.Height}}px; z-index: {{.ZIndex}}; transform: rotate({{.Rotation}}deg);">{{if .Src}}<img src="{{.Src}}">{{end}}</div>
{{end}}</div>
<ul>
{{range .Items}}{{if .Name}}  <li>{{.Name}}</li>
{{end}}{{end}}</ul>
</body>
</html>`))

type lookbookItem struct {
	Name                          string
	Src                           template.URL
	X, Y, Width, Height, Rotation float64
	ZIndex                        int
}

type lookbookData struct {
	Name          string
	Occasion      string
	PlannedDate   string
	Width, Height float64
	Items         []lookbookItem
}

// RenderLookbookHTML renders the printable sheet of an outfit with its images
// embedded as data URIs
func (s *PreviewService) RenderLookbookHTML(ctx context.Context, outfit *models.Outfit, layout canvas.Layout, items []models.PlacedItem) (string, error) {
	data := lookbookData{
		Name:        outfit.Name,
		Occasion:    outfit.Occasion,
		PlannedDate: outfit.PlannedDate,
		Width:       layout.Width,
		Height:      layout.Height,
	}
	for _, item := range stackingOrder(items) {
		entry := lookbookItem{
			Name:     item.DisplayName,
			X:        item.X,
			Y:        item.Y,
			Width:    item.Width,
			Height:   item.Height,
			Rotation: item.Rotation,
			ZIndex:   item.ZIndex,
		}
		if item.ImageRef != "" {
			raw, err := s.images.FetchImage(ctx, item.ImageRef)
			if err != nil {
				log.Printf("⚠️  Lookbook: image for %s unavailable: %v", item.CatalogItemID, err)
			} else {
				entry.Src = template.URL("data:" + http.DetectContentType(raw) + ";base64," + base64.StdEncoding.EncodeToString(raw))
			}
		}
		data.Items = append(data.Items, entry)
	}

	var buf bytes.Buffer
	if err := lookbookTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render lookbook: %w", err)
	}
	return buf.String(), nil
}

// detectChromePath checks the configured path, then common installation paths
func (s *PreviewService) detectChromePath() string {
	if s.chromePath != "" {
		if _, err := os.Stat(s.chromePath); err == nil {
			return s.chromePath
		}
	}
	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// RenderPDF prints the lookbook sheet of an outfit with headless Chrome
func (s *PreviewService) RenderPDF(ctx context.Context, outfit *models.Outfit, layout canvas.Layout, items []models.PlacedItem) ([]byte, error) {
	html, err := s.RenderLookbookHTML(ctx, outfit, layout, items)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.NoSandbox)
	if chromePath := s.detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	var pdfBuf []byte
	err = chromedp.Run(chromedpCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4 portrait
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	log.Printf("✓ Lookbook PDF rendered for outfit %s: %d bytes", outfit.ID, len(pdfBuf))
	return pdfBuf, nil
}
