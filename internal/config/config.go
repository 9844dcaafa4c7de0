package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"gqlpick/internal/eventbus"
)

// Config represents the application configuration
type Config struct {
	Version  int               `toml:"version"`
	Endpoint string            `toml:"endpoint"`
	Headers  map[string]string `toml:"headers"`
	Query    QuerySettings     `toml:"query"`
	UI       UISettings        `toml:"ui"`
}

// QuerySettings describes the list query and how to read its response
type QuerySettings struct {
	// Document is the GraphQL query text. File, when set, wins and is
	// read relative to the config file.
	Document      string `toml:"document"`
	File          string `toml:"file"`
	OperationName string `toml:"operation_name"`
	// Dot-paths into the response data, e.g. "users.items"
	ItemsPath      string `toml:"items_path"`
	PaginationPath string `toml:"pagination_path"`
	// Dot-paths into one item
	KeyPath   string `toml:"key_path"`
	LabelPath string `toml:"label_path"`
	PageSize  int    `toml:"page_size"`
	// One of cache-first, cache-and-network, network-only, no-cache
	CachePolicy string `toml:"cache_policy"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	DebounceMs   int    `toml:"debounce_ms"`
	BottomOffset int    `toml:"bottom_offset"`
	Placeholder  string `toml:"placeholder"`
	EmptyText    string `toml:"empty_text"`
}

// DefaultConfig returns the configuration used when no file exists
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Headers: map[string]string{},
		Query: QuerySettings{
			ItemsPath:      "items",
			PaginationPath: "pagination",
			KeyPath:        "id",
			LabelPath:      "name",
			PageSize:       10,
			CachePolicy:    "cache-first",
		},
		UI: UISettings{
			DebounceMs:   500,
			BottomOffset: 30,
			Placeholder:  "Type to search...",
			EmptyText:    "No results",
		},
	}
}

// Validate checks the parts the CLI cannot default
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("config: endpoint is required")
	}
	if c.Query.Document == "" && c.Query.File == "" {
		return fmt.Errorf("config: query.document or query.file is required")
	}
	if c.Query.ItemsPath == "" || c.Query.PaginationPath == "" {
		return fmt.Errorf("config: query.items_path and query.pagination_path are required")
	}
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a new config service
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	appDir := filepath.Join(configDir, "gqlpick")
	os.MkdirAll(appDir, 0755)

	return &configService{
		filePath: filepath.Join(appDir, "config.toml"),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// Load loads the configuration from the default path
func (cs *configService) Load() (*Config, error) {
	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to the default path
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads the configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cs.publishLoaded(cfg)
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Headers == nil {
		cfg.Headers = map[string]string{}
	}

	// Resolve a query file relative to the config file
	if cfg.Query.File != "" {
		queryPath := cfg.Query.File
		if !filepath.IsAbs(queryPath) {
			queryPath = filepath.Join(filepath.Dir(path), queryPath)
		}
		doc, err := os.ReadFile(queryPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read query file: %w", err)
		}
		cfg.Query.Document = string(doc)
	}

	cs.publishLoaded(cfg)
	return cfg, nil
}

// SaveToPath saves the configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: path})
	}
	return nil
}

func (cs *configService) publishLoaded(cfg *Config) {
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Endpoint: cfg.Endpoint})
	}
}
