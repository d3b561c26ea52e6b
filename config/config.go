// Package config builds the service configuration from the environment and an
// optional TOML canvas layout file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"armario-outfits/canvas"
)

const (
	defaultPort          = "8080"
	defaultStoreBaseURL  = "http://localhost:3000"
	defaultStoreTimeout  = 15 * time.Second
	defaultOccasion      = "Casual"
	defaultImageCacheDir = "cache/images"
	defaultIdleTimeout   = 2 * time.Hour
	defaultSweepInterval = 5 * time.Minute
	layoutFileEnv        = "CANVAS_LAYOUT_FILE"
	storeTimeoutEnv      = "STORE_TIMEOUT"
	idleTimeoutEnv       = "SESSION_IDLE_TIMEOUT"
	sweepIntervalEnv     = "SESSION_SWEEP_INTERVAL"
)

// Config is the explicit configuration passed to every component at construction
type Config struct {
	Port            string
	StoreBaseURL    string
	StoreUserID     string
	StoreTimeout    time.Duration
	DefaultOccasion string
	ImageCacheDir   string
	ChromePath      string
	Layout          canvas.Layout

	// SessionIdleTimeout is how long an untouched canvas session is kept; 0 keeps sessions forever
	SessionIdleTimeout   time.Duration
	SessionSweepInterval time.Duration
}

// Load reads the configuration from environment variables.
// The canvas layout is read from CANVAS_LAYOUT_FILE when set.
func Load() (Config, error) {
	cfg := Config{
		Port:            strings.TrimPrefix(envOr("PORT", defaultPort), ":"),
		StoreBaseURL:    strings.TrimRight(envOr("STORE_BASE_URL", defaultStoreBaseURL), "/"),
		StoreUserID:     strings.TrimSpace(os.Getenv("STORE_USER_ID")),
		DefaultOccasion: envOr("DEFAULT_OCCASION", defaultOccasion),
		ImageCacheDir:   envOr("IMAGE_CACHE_DIR", defaultImageCacheDir),
		ChromePath:      strings.TrimSpace(os.Getenv("CHROME_PATH")),
		Layout:          canvas.DefaultLayout(),
	}

	var err error
	if cfg.StoreTimeout, err = durationEnv(storeTimeoutEnv, defaultStoreTimeout, false); err != nil {
		return Config{}, err
	}
	if cfg.SessionIdleTimeout, err = durationEnv(idleTimeoutEnv, defaultIdleTimeout, true); err != nil {
		return Config{}, err
	}
	if cfg.SessionSweepInterval, err = durationEnv(sweepIntervalEnv, defaultSweepInterval, false); err != nil {
		return Config{}, err
	}

	if path := strings.TrimSpace(os.Getenv(layoutFileEnv)); path != "" {
		layout, err := LoadLayout(path)
		if err != nil {
			return Config{}, err
		}
		cfg.Layout = layout
	}

	return cfg, nil
}

// durationEnv parses a Go duration from key, returning def when it is unset.
// Zero is accepted only when allowZero is set; negative values never are.
func durationEnv(key string, def time.Duration, allowZero bool) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if d < 0 || (d == 0 && !allowZero) {
		return 0, fmt.Errorf("%s must be positive, got %s", key, raw)
	}
	return d, nil
}

// LoadLayout parses a TOML canvas layout file, falling back to defaults when
// the file is missing or a field is omitted
func LoadLayout(path string) (canvas.Layout, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return canvas.DefaultLayout(), nil
		}
		return canvas.Layout{}, fmt.Errorf("open layout: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return canvas.Layout{}, fmt.Errorf("read layout: %w", err)
	}

	var raw struct {
		Canvas canvas.Layout `toml:"canvas"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return canvas.Layout{}, fmt.Errorf("parse layout: %w", err)
	}

	layout := raw.Canvas.WithDefaults()
	if err := layout.Validate(); err != nil {
		return canvas.Layout{}, fmt.Errorf("invalid layout: %w", err)
	}
	return layout, nil
}

// MarshalLayout encodes layout in the format LoadLayout reads
func MarshalLayout(layout canvas.Layout) ([]byte, error) {
	raw := struct {
		Canvas canvas.Layout `toml:"canvas"`
	}{Canvas: layout}
	out, err := toml.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("encode layout: %w", err)
	}
	return out, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
