package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"armario-outfits/models"
)

// ErrDraftNotFound is returned when a session has no stored draft
var ErrDraftNotFound = errors.New("draft not found")

// DraftRepository stores unsaved canvas compositions in PostgreSQL
type DraftRepository struct {
	conn *sql.DB
}

// NewDraftRepository creates a new DraftRepository on an open connection
func NewDraftRepository(conn *sql.DB) *DraftRepository {
	return &DraftRepository{conn: conn}
}

// Ensure DraftRepository implements DraftRepositoryInterface
var _ DraftRepositoryInterface = (*DraftRepository)(nil)

// EnsureSchema creates the canvas_drafts table if it does not exist
func (r *DraftRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS canvas_drafts (
			session_id TEXT PRIMARY KEY,
			items      JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := r.conn.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create canvas_drafts table: %w", err)
	}
	return nil
}

// SaveDraft inserts or replaces the draft of a session
func (r *DraftRepository) SaveDraft(ctx context.Context, sessionID string, items []models.PlacedItem) error {
	if items == nil {
		items = []models.PlacedItem{}
	}
	encoded, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}

	query := `
		INSERT INTO canvas_drafts (session_id, items, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (session_id)
		DO UPDATE SET items = EXCLUDED.items, updated_at = NOW()
	`
	if _, err := r.conn.ExecContext(ctx, query, sessionID, string(encoded)); err != nil {
		log.Printf("❌ Error saving draft for session %s: %v", sessionID, err)
		return fmt.Errorf("failed to save draft: %w", err)
	}

	log.Printf("✓ Draft saved: session=%s items=%d", sessionID, len(items))
	return nil
}

// GetDraft returns the stored draft of a session
func (r *DraftRepository) GetDraft(ctx context.Context, sessionID string) ([]models.PlacedItem, error) {
	var raw []byte
	query := `SELECT items FROM canvas_drafts WHERE session_id = $1`
	err := r.conn.QueryRowContext(ctx, query, sessionID).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrDraftNotFound, sessionID)
		}
		log.Printf("❌ Error fetching draft for session %s: %v", sessionID, err)
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	var items []models.PlacedItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to decode draft: %w", err)
	}
	return items, nil
}

// DeleteDraft removes the draft of a session; deleting a missing draft is not an error
func (r *DraftRepository) DeleteDraft(ctx context.Context, sessionID string) error {
	if _, err := r.conn.ExecContext(ctx, `DELETE FROM canvas_drafts WHERE session_id = $1`, sessionID); err != nil {
		log.Printf("❌ Error deleting draft for session %s: %v", sessionID, err)
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}
