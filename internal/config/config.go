package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/justyntemme/launchgrid/internal/catalog"
)

// Config holds all user-configurable settings loaded from config.json
type Config struct {
	Grid    GridConfig    `json:"grid"`
	Folder  FolderConfig  `json:"folder"`
	Gesture GestureConfig `json:"gesture"`
	Catalog CatalogConfig `json:"catalog"`
	Icons   IconsConfig   `json:"icons"`
	Store   StoreConfig   `json:"store"`
	Window  WindowConfig  `json:"window"`
	Hotkeys HotkeysConfig `json:"hotkeys"`
}

// GridConfig sizes the main grid. Lengths are in dp.
type GridConfig struct {
	Columns       int     `json:"columns"`
	Rows          int     `json:"rows"`
	IconSize      float32 `json:"iconSize"`
	LabelHeight   float32 `json:"labelHeight"`
	ColumnSpacing float32 `json:"columnSpacing"`
	RowSpacing    float32 `json:"rowSpacing"`
	HPadding      float32 `json:"hPadding"` // left and right page margin
	VPadding      float32 `json:"vPadding"` // top margin
}

// PageSize is the number of slots per page.
func (g GridConfig) PageSize() int { return g.Columns * g.Rows }

// FolderConfig sizes the expanded folder overlay.
type FolderConfig struct {
	Columns int     `json:"columns"`
	Rows    int     `json:"rows"`
	Width   float32 `json:"width"`
}

func (f FolderConfig) PageSize() int { return f.Columns * f.Rows }

// GestureConfig tunes drag and swipe recognition.
type GestureConfig struct {
	DragThreshold  float32 `json:"dragThreshold"`  // pointer travel before a press becomes a drag
	SwipeThreshold float32 `json:"swipeThreshold"` // fraction of page width that flips a page
	EdgeMargin     float32 `json:"edgeMargin"`     // width of the auto-paging strip while dragging
	EdgeDelayMs    int     `json:"edgeDelayMs"`    // dwell time in the strip before paging
	ScrollQuietMs  int     `json:"scrollQuietMs"`  // idle time that ends a trackpad swipe
}

func (g GestureConfig) EdgeDelay() time.Duration {
	return time.Duration(g.EdgeDelayMs) * time.Millisecond
}

func (g GestureConfig) ScrollQuiet() time.Duration {
	return time.Duration(g.ScrollQuietMs) * time.Millisecond
}

// CatalogConfig controls application discovery and the default layout.
type CatalogConfig struct {
	Dirs        []string `json:"dirs"`
	FirstPage   []string `json:"firstPage"`
	Tools       []string `json:"tools"`
	ToolsFolder string   `json:"toolsFolder"`
	Watch       bool     `json:"watch"`
	DebounceMs  int      `json:"debounceMs"`
}

func (c CatalogConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// IconsConfig controls icon loading.
type IconsConfig struct {
	Size       int      `json:"size"`       // pixels
	MaxEntries int      `json:"maxEntries"` // 0 = unbounded
	ThemeDirs  []string `json:"themeDirs,omitempty"`
}

// StoreConfig selects the layout persistence backend.
type StoreConfig struct {
	Backend string `json:"backend"` // "json" | "sqlite"
	Path    string `json:"path,omitempty"`
}

// WindowConfig holds window behavior.
type WindowConfig struct {
	Fullscreen      bool   `json:"fullscreen"`
	HideOnFocusLoss bool   `json:"hideOnFocusLoss"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	Theme           string `json:"theme"` // "dark" | "light"
}

// Manager handles loading, saving, and accessing configuration
type Manager struct {
	mu       sync.RWMutex
	config   *Config
	path     string
	parseErr error // Stores parsing error if config failed to load
}

// NewManager creates a new configuration manager
func NewManager() *Manager {
	return &Manager{
		config: DefaultConfig(),
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Grid: GridConfig{
			Columns:       7,
			Rows:          5,
			IconSize:      72,
			LabelHeight:   20,
			ColumnSpacing: 24,
			RowSpacing:    12,
			HPadding:      80,
			VPadding:      60,
		},
		Folder: FolderConfig{
			Columns: 4,
			Rows:    3,
			Width:   560,
		},
		Gesture: GestureConfig{
			DragThreshold:  8,
			SwipeThreshold: 0.15,
			EdgeMargin:     40,
			EdgeDelayMs:    600,
			ScrollQuietMs:  120,
		},
		Catalog: CatalogConfig{
			Dirs: catalog.DefaultDirs(),
			FirstPage: []string{
				"Safari", "Mail", "Messages", "Maps", "Photos", "FaceTime",
				"Calendar", "Contacts", "Reminders", "Notes", "Music", "App Store",
				"Firefox", "Files", "Text Editor", "Settings",
			},
			Tools: []string{
				"Activity Monitor", "Terminal", "Console", "Disk Utility",
				"System Information", "Script Editor", "System Monitor", "Disks",
			},
			ToolsFolder: "Tools",
			Watch:       true,
			DebounceMs:  500,
		},
		Icons: IconsConfig{
			Size:       128,
			MaxEntries: 0,
		},
		Store: StoreConfig{
			Backend: "json",
		},
		Window: WindowConfig{
			Fullscreen:      true,
			HideOnFocusLoss: true,
			Width:           1280,
			Height:          800,
			Theme:           "dark",
		},
		Hotkeys: DefaultHotkeys(),
	}
}

// ConfigPath returns the config file path: ~/.config/launchgrid/config.json
// This is consistent across all platforms (Windows, macOS, Linux)
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "launchgrid", "config.json")
}

// Load reads the configuration from the default config file.
func (m *Manager) Load() error {
	return m.LoadFrom(ConfigPath())
}

// LoadFrom reads the configuration from path
// If the file doesn't exist, creates it with defaults
// If parsing fails, stores the error and returns defaults
func (m *Manager) LoadFrom(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.path = path
	m.parseErr = nil

	// Ensure config directory exists
	configDir := filepath.Dir(m.path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		log.Error().Err(err).Str("dir", configDir).Msg("config: create directory")
		return err
	}

	data, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		log.Info().Str("path", m.path).Msg("config: creating default config")
		m.config = DefaultConfig()
		if saveErr := m.saveUnlocked(); saveErr != nil {
			log.Error().Err(saveErr).Msg("config: save default config")
			return saveErr
		}
		return nil
	}
	if err != nil {
		log.Error().Err(err).Str("path", m.path).Msg("config: read")
		return err
	}

	// Keys missing from the file keep their defaults.
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		// Store error for UI display, use defaults
		log.Warn().Err(err).Str("path", m.path).Msg("config: JSON parse error, using defaults")
		m.parseErr = err
		m.config = DefaultConfig()
		return nil // Don't return error - we're using defaults
	}

	cfg.normalize()
	log.Info().Str("path", m.path).Msg("config: loaded")
	m.config = cfg
	return nil
}

// normalize replaces values that would make the layout unusable with
// their defaults.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Grid.Columns <= 0 || c.Grid.Rows <= 0 {
		c.Grid.Columns, c.Grid.Rows = def.Grid.Columns, def.Grid.Rows
	}
	if c.Grid.IconSize <= 0 {
		c.Grid.IconSize = def.Grid.IconSize
	}
	if c.Folder.Columns <= 0 || c.Folder.Rows <= 0 {
		c.Folder.Columns, c.Folder.Rows = def.Folder.Columns, def.Folder.Rows
	}
	if c.Gesture.DragThreshold < 0 {
		c.Gesture.DragThreshold = def.Gesture.DragThreshold
	}
	if c.Gesture.SwipeThreshold <= 0 || c.Gesture.SwipeThreshold >= 1 {
		c.Gesture.SwipeThreshold = def.Gesture.SwipeThreshold
	}
	if c.Catalog.ToolsFolder == "" {
		c.Catalog.ToolsFolder = def.Catalog.ToolsFolder
	}
	if c.Icons.Size <= 0 {
		c.Icons.Size = def.Icons.Size
	}
	if c.Icons.MaxEntries < 0 {
		c.Icons.MaxEntries = 0
	}
	if c.Store.Backend != "json" && c.Store.Backend != "sqlite" {
		log.Warn().Str("backend", c.Store.Backend).Msg("config: unknown store backend, using json")
		c.Store.Backend = def.Store.Backend
	}
}

// saveUnlocked saves config without acquiring lock (caller must hold lock)
func (m *Manager) saveUnlocked() error {
	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.path, data, 0o644)
}

// Save writes the current configuration to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveUnlocked()
}

// Path returns the file the configuration was loaded from.
func (m *Manager) Path() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.path
}

// Get returns a copy of the current configuration
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.config == nil {
		return *DefaultConfig()
	}
	return *m.config
}

// ParseError returns the parsing error if config failed to load
func (m *Manager) ParseError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.parseErr
}

// SetStoreBackend switches the persistence backend and saves the config.
// A path set for the old backend is dropped so the new one uses its default.
func (m *Manager) SetStoreBackend(backend string) error {
	if backend != "json" && backend != "sqlite" {
		return fmt.Errorf("unknown store backend %q", backend)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.config == nil {
		m.config = DefaultConfig()
	}
	m.config.Store = StoreConfig{Backend: backend}
	return m.saveUnlocked()
}

// GenerateConfig backs up the config at path and writes a fresh default.
// Returns the backup path if a backup was created, or empty string if no existing config
func GenerateConfig(path string) (backupPath string, err error) {
	if _, err := os.Stat(path); err == nil {
		timestamp := time.Now().Format("20060102-150405")
		backupPath = filepath.Join(filepath.Dir(path), "config.backup."+timestamp+".json")

		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read existing config: %w", err)
		}
		if err := os.WriteFile(backupPath, data, 0o644); err != nil {
			return "", fmt.Errorf("failed to write backup: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return backupPath, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(DefaultConfig(), "", "  ")
	if err != nil {
		return backupPath, fmt.Errorf("failed to marshal default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return backupPath, fmt.Errorf("failed to write config: %w", err)
	}
	return backupPath, nil
}
