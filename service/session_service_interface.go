package service

import (
	"context"

	"armario-outfits/canvas"
	"armario-outfits/models"
)

// SessionServiceInterface defines the contract for canvas session handling
type SessionServiceInterface interface {
	Create(req models.CreateSessionRequest) (models.SessionView, error)
	Get(id string) (models.SessionView, error)
	Delete(id string) error
	Resize(id string, req models.BoundsRequest) (models.SessionView, error)
	Drop(ctx context.Context, id string, req models.DropRequest) (models.PlacedItem, bool, error)
	RemoveItem(id, instanceID string) (models.SessionView, error)
	Clear(id string) (models.SessionView, error)

	StartDrag(id, instanceID string) (models.DragStateResponse, error)
	MoveDrag(id, instanceID string, req models.DragMoveRequest) (models.DragStateResponse, error)
	ReleaseDrag(id, instanceID string) (models.PlacedItem, error)
	CancelDrag(id, instanceID string) (models.DragStateResponse, error)

	OpenSaveForm(id string) (models.SaveFormState, error)
	CancelSaveForm(id string) (models.SaveFormState, error)
	Save(ctx context.Context, id string, req models.SaveOutfitRequest) (*models.Outfit, error)

	SaveDraft(ctx context.Context, id string) (models.SessionView, error)
	LoadDraft(ctx context.Context, id string) (models.SessionView, error)
	LoadOutfit(ctx context.Context, outfitID string) (models.SessionView, error)
	Snapshot(id string) (canvas.Layout, []models.PlacedItem, error)
}
