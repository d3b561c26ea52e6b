package models

// CreateSessionRequest represents the optional body for creating a canvas session
type CreateSessionRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// BoundsRequest represents the body for resizing a canvas session
type BoundsRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DropRequest represents a picker drag released over the screen.
// Either Item is provided inline, or ItemID is resolved against the catalog.
// The release point is Start + (DX, DY) when a delta is given, else (X, Y).
type DropRequest struct {
	Item   *CatalogItem `json:"item,omitempty"`
	ItemID string       `json:"itemId,omitempty"`
	StartX float64      `json:"startX"`
	StartY float64      `json:"startY"`
	DX     float64      `json:"dx"`
	DY     float64      `json:"dy"`
	X      *float64     `json:"x,omitempty"`
	Y      *float64     `json:"y,omitempty"`
}

// DragMoveRequest carries the cumulative pointer delta since the drag started
type DragMoveRequest struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// DragStateResponse describes the live render state of a dragged item
type DragStateResponse struct {
	InstanceID string  `json:"instanceId"`
	State      string  `json:"state"`
	Live       Point   `json:"live"`
	Scale      float64 `json:"scale"`
}

// SaveFormState is the save dialog state of a session
type SaveFormState struct {
	Open        bool   `json:"open"`
	Name        string `json:"name"`
	Occasion    string `json:"occasion"`
	PlannedDate string `json:"plannedDate"`
}

// SessionView is the rendering view of a canvas session
type SessionView struct {
	ID       string        `json:"id"`
	Width    float64       `json:"width"`
	Height   float64       `json:"height"`
	Items    []PlacedItem  `json:"items"`
	CanSave  bool          `json:"canSave"`
	SaveForm SaveFormState `json:"saveForm"`
}
