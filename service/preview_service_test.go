package service

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"armario-outfits/canvas"
	"armario-outfits/models"
)

func TestPreviewService_RenderPNG(t *testing.T) {
	store := newFakeStore()
	store.images["/img/red.png"] = pngBytes(t, 40, 40, color.NRGBA{R: 255, A: 255})
	svc := NewPreviewService(store, "")
	layout := canvas.Layout{Width: 300, Height: 200}.WithDefaults()

	items := []models.PlacedItem{
		{InstanceID: "p1", CatalogItemID: "a", ImageRef: "/img/red.png", X: 10, Y: 10, Width: 50, Height: 50, ZIndex: 1},
		{InstanceID: "p2", CatalogItemID: "b", ImageRef: "/img/missing.png", X: 200, Y: 100, Width: 40, Height: 40, ZIndex: 1},
	}

	data, err := svc.RenderPNG(context.Background(), layout, items)
	if err != nil {
		t.Fatalf("RenderPNG returned error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 300 || img.Bounds().Dy() != 200 {
		t.Fatalf("size = %v, want 300x200", img.Bounds())
	}

	tests := []struct {
		name string
		x, y int
		want color.NRGBA
	}{
		{name: "background", x: 150, y: 5, want: color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{name: "item image", x: 30, y: 30, want: color.NRGBA{R: 255, A: 255}},
		{name: "placeholder for missing image", x: 220, y: 120, want: color.NRGBA{R: 0xe6, G: 0xe6, B: 0xe6, A: 0xff}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := color.NRGBAModel.Convert(img.At(tt.x, tt.y)).(color.NRGBA)
			if !closeColor(got, tt.want) {
				t.Fatalf("pixel (%d, %d) = %+v, want %+v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestPreviewService_RenderPNGRejectsEmptyLayout(t *testing.T) {
	svc := NewPreviewService(newFakeStore(), "")
	if _, err := svc.RenderPNG(context.Background(), canvas.Layout{}, nil); err == nil {
		t.Fatal("RenderPNG accepted a zero-size layout")
	}
}

func TestPreviewService_RenderPNGRejectsOversizedLayout(t *testing.T) {
	svc := NewPreviewService(newFakeStore(), "")
	layouts := []canvas.Layout{
		{Width: 1e10, Height: 1e10},
		{Width: 800, Height: 600, MaxDimension: 500},
	}
	for _, layout := range layouts {
		_, err := svc.RenderPNG(context.Background(), layout, nil)
		var validationErr *ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("RenderPNG(%vx%v) err = %v, want ValidationError", layout.Width, layout.Height, err)
		}
	}
}

func TestTileSide(t *testing.T) {
	tests := []struct {
		v, fallback, limit float64
		want               int
	}{
		{v: 120, fallback: 200, limit: 4096, want: 120},
		{v: 0, fallback: 200, limit: 4096, want: 200},
		{v: 1e12, fallback: 200, limit: 4096, want: 4096},
	}
	for _, tt := range tests {
		if got := tileSide(tt.v, tt.fallback, tt.limit); got != tt.want {
			t.Fatalf("tileSide(%v, %v, %v) = %d, want %d", tt.v, tt.fallback, tt.limit, got, tt.want)
		}
	}
}

func TestStackingOrder(t *testing.T) {
	items := []models.PlacedItem{
		{InstanceID: "top", ZIndex: 3},
		{InstanceID: "first", ZIndex: 1},
		{InstanceID: "second", ZIndex: 1},
	}
	ordered := stackingOrder(items)
	got := []string{ordered[0].InstanceID, ordered[1].InstanceID, ordered[2].InstanceID}
	want := []string{"first", "second", "top"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
	if items[0].InstanceID != "top" {
		t.Fatal("stackingOrder modified its input")
	}
}

func TestPreviewService_RenderLookbookHTML(t *testing.T) {
	store := newFakeStore()
	store.images["/img/red.png"] = pngBytes(t, 4, 4, color.NRGBA{R: 255, A: 255})
	svc := NewPreviewService(store, "")

	outfit := &models.Outfit{ID: "o1", Name: "Brunch <Sunday>", Occasion: "Weekend", PlannedDate: "2024-12-01"}
	items := []models.PlacedItem{
		{CatalogItemID: "a", DisplayName: "Mini Dress", ImageRef: "/img/red.png", X: 70, Y: 170, Width: 200, Height: 200, ZIndex: 1},
		{CatalogItemID: "b", DisplayName: "Lost Scarf", ImageRef: "/img/missing.png", X: 10, Y: 10, Width: 200, Height: 200, ZIndex: 1},
	}

	html, err := svc.RenderLookbookHTML(context.Background(), outfit, canvas.DefaultLayout(), items)
	if err != nil {
		t.Fatalf("RenderLookbookHTML returned error: %v", err)
	}

	for _, want := range []string{
		"Brunch &lt;Sunday&gt;",
		"Weekend",
		"2024-12-01",
		"<li>Mini Dress</li>",
		"<li>Lost Scarf</li>",
		`src="data:image/png;base64,`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("lookbook HTML missing %q", want)
		}
	}
	if strings.Count(html, "<img ") != 1 {
		t.Errorf("expected one embedded image, got %d", strings.Count(html, "<img "))
	}
}

func closeColor(a, b color.NRGBA) bool {
	near := func(x, y uint8) bool {
		d := int(x) - int(y)
		return d >= -2 && d <= 2
	}
	return near(a.R, b.R) && near(a.G, b.G) && near(a.B, b.B) && near(a.A, b.A)
}
