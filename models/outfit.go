package models

// OutfitItem is the persisted transform of one placed item.
// Instance identifiers are not part of it: the store assigns its own identity.
type OutfitItem struct {
	CatalogItemID string  `json:"item"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	Rotation      float64 `json:"rotation"`
	ZIndex        int     `json:"zIndex"`
}

// CreateOutfitPayload is the body sent to POST /outfits on the store
type CreateOutfitPayload struct {
	Name        string       `json:"name"`
	Occasion    string       `json:"occasion"`
	PlannedDate string       `json:"plannedDate,omitempty"`
	User        string       `json:"user"`
	Items       []OutfitItem `json:"items"`
}

// Outfit represents an outfit as returned by the store
type Outfit struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Occasion    string       `json:"occasion"`
	PlannedDate string       `json:"plannedDate,omitempty"`
	User        string       `json:"user,omitempty"`
	Items       []OutfitItem `json:"items"`
}

// SaveOutfitRequest represents the save form submitted by the user
type SaveOutfitRequest struct {
	Name        string `json:"name"`
	Occasion    string `json:"occasion"`
	PlannedDate string `json:"plannedDate"`
}
