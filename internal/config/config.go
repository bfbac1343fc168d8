package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"selectmenu/internal/eventbus"
	"selectmenu/internal/selection"
)

// ErrInvalidPolicy is returned for a policy name other than "single" or "multi"
var ErrInvalidPolicy = errors.New("invalid selection policy")

// Config represents the application configuration
type Config struct {
	Version         int        `toml:"version"`
	Title           string     `toml:"title"`
	Policy          string     `toml:"policy"` // "single" or "multi"
	DismissOnSelect bool       `toml:"dismiss_on_select"`
	Preselected     []string   `toml:"preselected"` // item keys selected before the menu opens
	UISettings      UISettings `toml:"ui"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowHelp  bool   `toml:"show_help"`
	Height    int    `toml:"height"` // list rows; 0 follows the terminal
	Cursor    string `toml:"cursor"`
	Checked   string `toml:"checked"`
	Unchecked string `toml:"unchecked"`
}

// SelectionPolicy parses the configured policy
func (c *Config) SelectionPolicy() (selection.Policy, error) {
	return ParsePolicy(c.Policy)
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	if _, err := c.SelectionPolicy(); err != nil {
		return err
	}
	if c.UISettings.Height < 0 {
		return fmt.Errorf("ui.height must not be negative, got %d", c.UISettings.Height)
	}
	return nil
}

// ParsePolicy maps a policy name to a selection.Policy. Empty means single.
func ParsePolicy(name string) (selection.Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "single":
		return selection.Single, nil
	case "multi", "multiple":
		return selection.Multi, nil
	default:
		return selection.Single, fmt.Errorf("%w: %q", ErrInvalidPolicy, name)
	}
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "selectmenu", "config.toml")
}

// NewConfigService creates a config service for the default path
func NewConfigService() ConfigService {
	return NewConfigServiceAt(DefaultPath())
}

// NewConfigServiceAt creates a config service for a specific file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{
		bus:      eventbus.Nop(),
		filePath: path,
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigServiceAt(path).(*configService)
	if bus != nil {
		cs.bus = bus
	}
	return cs
}

// Path returns the file Load and Save use
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to defaults when the
// file does not exist
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Policy: cfg.Policy})
		return cfg, nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}

	cs.bus.Publish(eventbus.ConfigLoadedEvent{
		Path:   cs.filePath,
		Policy: cfg.Policy,
	})

	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})

	return nil
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:         1,
		Title:           "Select",
		Policy:          selection.Single.String(),
		DismissOnSelect: true,
		Preselected:     []string{},
		UISettings: UISettings{
			ShowHelp:  true,
			Cursor:    ">",
			Checked:   "[x]",
			Unchecked: "[ ]",
		},
	}
}
