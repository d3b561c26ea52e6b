package canvas

import (
	"fmt"

	"armario-outfits/models"
	"armario-outfits/utils"
)

// Default layout values, taken from the mobile composer
const (
	DefaultWidth         = 390.0
	DefaultHeight        = 422.0
	DefaultMargin        = 10.0
	DefaultInset         = 70.0
	DefaultHandleHalf    = 30.0
	DefaultDropTolerance = 50.0
	DefaultItemWidth     = 200.0
	DefaultItemHeight    = 200.0
	DefaultDragScale     = 1.1
	DefaultZIndex        = 1
	DefaultMaxDimension  = 4096.0
)

// Layout describes the canvas region and its clamp constants.
// The canvas occupies the screen from (0, 0) to (Width, Height); the picker
// overlay starts at Height.
type Layout struct {
	Width         float64 `toml:"width" json:"width"`
	Height        float64 `toml:"height" json:"height"`
	Margin        float64 `toml:"margin" json:"margin"`
	Inset         float64 `toml:"inset" json:"inset"`
	HandleHalf    float64 `toml:"handle_half" json:"handleHalf"`
	DropTolerance float64 `toml:"drop_tolerance" json:"dropTolerance"`
	ItemWidth     float64 `toml:"item_width" json:"itemWidth"`
	ItemHeight    float64 `toml:"item_height" json:"itemHeight"`
	DragScale     float64 `toml:"drag_scale" json:"dragScale"`
	MaxDimension  float64 `toml:"max_dimension" json:"maxDimension"`
}

// DefaultLayout returns the layout of a typical phone screen with the picker
// covering the lower half
func DefaultLayout() Layout {
	return Layout{
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		Margin:        DefaultMargin,
		Inset:         DefaultInset,
		HandleHalf:    DefaultHandleHalf,
		DropTolerance: DefaultDropTolerance,
		ItemWidth:     DefaultItemWidth,
		ItemHeight:    DefaultItemHeight,
		DragScale:     DefaultDragScale,
		MaxDimension:  DefaultMaxDimension,
	}
}

// WithDefaults fills every zero field from DefaultLayout
func (l Layout) WithDefaults() Layout {
	d := DefaultLayout()
	if l.Width == 0 {
		l.Width = d.Width
	}
	if l.Height == 0 {
		l.Height = d.Height
	}
	if l.Margin == 0 {
		l.Margin = d.Margin
	}
	if l.Inset == 0 {
		l.Inset = d.Inset
	}
	if l.HandleHalf == 0 {
		l.HandleHalf = d.HandleHalf
	}
	if l.DropTolerance == 0 {
		l.DropTolerance = d.DropTolerance
	}
	if l.ItemWidth == 0 {
		l.ItemWidth = d.ItemWidth
	}
	if l.ItemHeight == 0 {
		l.ItemHeight = d.ItemHeight
	}
	if l.DragScale == 0 {
		l.DragScale = d.DragScale
	}
	if l.MaxDimension == 0 {
		l.MaxDimension = d.MaxDimension
	}
	return l
}

// Limit returns the largest accepted canvas or item dimension
func (l Layout) Limit() float64 {
	if l.MaxDimension > 0 {
		return l.MaxDimension
	}
	return DefaultMaxDimension
}

// Validate checks that the layout describes a usable region
func (l Layout) Validate() error {
	if l.MaxDimension < 0 {
		return fmt.Errorf("max dimension must not be negative, got %v", l.MaxDimension)
	}
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("canvas size must be positive, got %vx%v", l.Width, l.Height)
	}
	if limit := l.Limit(); l.Width > limit || l.Height > limit {
		return fmt.Errorf("canvas size %vx%v exceeds the %v limit", l.Width, l.Height, limit)
	}
	if l.Margin < 0 || l.Inset < 0 || l.HandleHalf < 0 || l.DropTolerance < 0 {
		return fmt.Errorf("canvas margins must not be negative")
	}
	if l.ItemWidth <= 0 || l.ItemHeight <= 0 {
		return fmt.Errorf("item size must be positive, got %vx%v", l.ItemWidth, l.ItemHeight)
	}
	if limit := l.Limit(); l.ItemWidth > limit || l.ItemHeight > limit {
		return fmt.Errorf("item size %vx%v exceeds the %v limit", l.ItemWidth, l.ItemHeight, limit)
	}
	return nil
}

// ClampX constrains x to [Margin, Width-Inset]
func (l Layout) ClampX(x float64) float64 {
	return utils.Clamp(x, l.Margin, l.Width-l.Inset)
}

// ClampY constrains y to [Margin, Height-Inset]
func (l Layout) ClampY(y float64) float64 {
	return utils.Clamp(y, l.Margin, l.Height-l.Inset)
}

// ClampPoint constrains both coordinates of p
func (l Layout) ClampPoint(p models.Point) models.Point {
	return models.Point{X: l.ClampX(p.X), Y: l.ClampY(p.Y)}
}

// AcceptsDrop reports whether a release point counts as a canvas drop.
// Drops slightly into the picker overlay still count.
func (l Layout) AcceptsDrop(p models.Point) bool {
	return p.Y < l.Height+l.DropTolerance
}
