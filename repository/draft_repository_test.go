package repository

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"

	"armario-outfits/models"
)

// openTestDB connects to DRAFTS_TEST_DATABASE_URL or skips the test
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("DRAFTS_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("DRAFTS_TEST_DATABASE_URL not set")
	}
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := conn.PingContext(context.Background()); err != nil {
		t.Skipf("database unavailable: %v", err)
	}
	return conn
}

func TestDraftRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewDraftRepository(openTestDB(t))
	if err := repo.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}

	sessionID := "test-" + t.Name()
	t.Cleanup(func() { repo.DeleteDraft(ctx, sessionID) })

	items := []models.PlacedItem{
		{InstanceID: "p1", CatalogItemID: "abc123", DisplayName: "Mini Dress", X: 70, Y: 170, Width: 200, Height: 200, ZIndex: 1},
	}
	if err := repo.SaveDraft(ctx, sessionID, items); err != nil {
		t.Fatalf("SaveDraft: %v", err)
	}

	// Saving again replaces the draft
	items[0].X = 90
	if err := repo.SaveDraft(ctx, sessionID, items); err != nil {
		t.Fatalf("second SaveDraft: %v", err)
	}

	got, err := repo.GetDraft(ctx, sessionID)
	if err != nil {
		t.Fatalf("GetDraft: %v", err)
	}
	if len(got) != 1 || got[0] != items[0] {
		t.Fatalf("GetDraft = %+v, want %+v", got, items)
	}

	if err := repo.DeleteDraft(ctx, sessionID); err != nil {
		t.Fatalf("DeleteDraft: %v", err)
	}
	if _, err := repo.GetDraft(ctx, sessionID); !errors.Is(err, ErrDraftNotFound) {
		t.Fatalf("GetDraft after delete err = %v, want ErrDraftNotFound", err)
	}
}
