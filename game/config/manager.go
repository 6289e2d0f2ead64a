package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Variant names a built-in settings profile. The combined server runs the
// pengstrike and climbandwin variants side by side; the standalone server
// runs climbandwin-standalone alone.
type Variant string

const (
	VariantPengstrike            Variant = "pengstrike"
	VariantClimbandwin           Variant = "climbandwin"
	VariantClimbandwinStandalone Variant = "climbandwin-standalone"
)

// PaletteKind selects which color set a game scope assigns to joiners.
type PaletteKind string

const (
	PaletteNone PaletteKind = "none" // players carry no color
	PaletteInt  PaletteKind = "int"  // 0xRRGGBB integers
	PaletteHex  PaletteKind = "hex"  // "#rrggbb" strings
)

// GameSettings holds the tunable behavior of one game scope.
type GameSettings struct {
	SpawnHeight    float64     `json:"spawnHeight"`
	Palette        PaletteKind `json:"palette"`
	Balls          bool        `json:"balls"`
	BallLifetimeMS int         `json:"ballLifetimeMs"`
}

// BallLifetime returns the configured ball lifetime as a duration.
func (s GameSettings) BallLifetime() time.Duration {
	return time.Duration(s.BallLifetimeMS) * time.Millisecond
}

// Validate checks that the settings are internally consistent.
func (s GameSettings) Validate() error {
	switch s.Palette {
	case PaletteNone, PaletteInt, PaletteHex:
	default:
		return fmt.Errorf("%w: unknown palette kind %q", ErrInvalidConfig, s.Palette)
	}
	if s.BallLifetimeMS < 0 {
		return fmt.Errorf("%w: ball lifetime must not be negative", ErrInvalidConfig)
	}
	return nil
}

func defaultSettings(v Variant) (GameSettings, bool) {
	switch v {
	case VariantPengstrike:
		return GameSettings{SpawnHeight: 1, Palette: PaletteNone, Balls: true, BallLifetimeMS: 10000}, true
	case VariantClimbandwin:
		return GameSettings{SpawnHeight: 1, Palette: PaletteHex}, true
	case VariantClimbandwinStandalone:
		return GameSettings{SpawnHeight: 10, Palette: PaletteInt}, true
	default:
		return GameSettings{}, false
	}
}

// Manager resolves game settings, overlaying JSON files from the config
// directory onto the built-in defaults. Resolved settings are cached.
type Manager struct {
	configDir string
	mu        sync.RWMutex
	cache     map[Variant]GameSettings
}

// NewManager creates a settings manager rooted at configDir. The directory
// does not have to exist; variants then resolve to their defaults.
func NewManager(configDir string) *Manager {
	return &Manager{
		configDir: configDir,
		cache:     make(map[Variant]GameSettings),
	}
}

// Settings returns the effective settings for a variant. Overrides come from
// <configDir>/<variant>.json; only fields present in the file replace the
// defaults.
func (m *Manager) Settings(v Variant) (GameSettings, error) {
	m.mu.RLock()
	if s, ok := m.cache[v]; ok {
		m.mu.RUnlock()
		return s, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if s, ok := m.cache[v]; ok {
		return s, nil
	}

	s, ok := defaultSettings(v)
	if !ok {
		return GameSettings{}, fmt.Errorf("%w: unknown variant %q", ErrInvalidConfig, v)
	}

	path := filepath.Join(m.configDir, string(v)+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return GameSettings{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		if err := json.Unmarshal(data, &s); err != nil {
			return GameSettings{}, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
		}
	}

	if err := s.Validate(); err != nil {
		return GameSettings{}, fmt.Errorf("%s: %w", path, err)
	}

	m.cache[v] = s
	return s, nil
}
