package models

// Point is a position in canvas-local (or screen) coordinates
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PlacedItem is one occurrence of a catalog item positioned on the canvas
type PlacedItem struct {
	InstanceID    string  `json:"instanceId"`
	CatalogItemID string  `json:"catalogItemId"`
	ImageRef      string  `json:"imageRef"`
	DisplayName   string  `json:"displayName"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	Rotation      float64 `json:"rotation"`
	ZIndex        int     `json:"zIndex"`
}

// Position returns the committed top-left corner of the item
func (p PlacedItem) Position() Point {
	return Point{X: p.X, Y: p.Y}
}
