package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"armario-outfits/app/controller"
	"armario-outfits/app/router"
	"armario-outfits/config"
	"armario-outfits/db"
	"armario-outfits/repository"
	"armario-outfits/service"
)

// Initialize wires the services and returns the HTTP handler of the application.
// The returned cleanup closes the database connection when drafts are enabled.
func Initialize(ctx context.Context, cfg *config.Config) (http.Handler, func(), error) {
	cleanup := func() {}

	// Drafts are optional: without database variables the server runs without them
	var drafts repository.DraftRepositoryInterface
	if err := db.InitDB(ctx); err != nil {
		if !errors.Is(err, db.ErrNotConfigured) {
			return nil, cleanup, fmt.Errorf("failed to initialize database: %w", err)
		}
		log.Printf("⚠️  Database not configured, canvas drafts are disabled")
	} else {
		draftRepo := repository.NewDraftRepository(db.DB)
		if err := draftRepo.EnsureSchema(ctx); err != nil {
			db.CloseDB()
			return nil, cleanup, err
		}
		drafts = draftRepo
		cleanup = func() {
			if err := db.CloseDB(); err != nil {
				log.Printf("⚠️  Error closing database: %v", err)
			}
		}
	}

	return NewHandler(ctx, cfg, service.NewStoreClient(cfg.StoreBaseURL, cfg.StoreTimeout), drafts), cleanup, nil
}

// NewHandler builds the services and routes on top of a store client.
// drafts may be nil. Idle sessions are swept until ctx is done.
func NewHandler(ctx context.Context, cfg *config.Config, store service.StoreClientInterface, drafts repository.DraftRepositoryInterface) http.Handler {
	outfitService := service.NewOutfitService(store, cfg.StoreUserID, cfg.DefaultOccasion, cfg.Layout)
	pickerService := service.NewPickerService(store, cfg.ImageCacheDir)
	previewService := service.NewPreviewService(store, cfg.ChromePath)
	sessionService := service.NewSessionService(cfg.Layout, outfitService, pickerService, drafts)
	if cfg.SessionIdleTimeout > 0 && cfg.SessionSweepInterval > 0 {
		go sessionService.RunExpiry(ctx, cfg.SessionIdleTimeout, cfg.SessionSweepInterval)
		log.Printf("✓ Idle canvas sessions expire after %s", cfg.SessionIdleTimeout)
	}

	controllers := &router.Controllers{
		Canvas:  controller.NewCanvasController(sessionService, previewService),
		Catalog: controller.NewCatalogController(pickerService),
		Outfit:  controller.NewOutfitController(outfitService, sessionService, previewService, cfg.Layout),
	}

	mux := http.NewServeMux()
	router.SetupRoutes(mux, controllers)
	return mux
}
