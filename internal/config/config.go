package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/arcanaland/tcgoracle/internal/deck"
)

// DefaultMaxResults is how many cards a multi-result reply lists.
const DefaultMaxResults = 5

// Config represents the application configuration
type Config struct {
	Game            string               `toml:"game"`
	CardDir         string               `toml:"card_dir"`
	DeckDir         string               `toml:"deck_dir"`
	ImageDir        string               `toml:"image_dir"`
	ImageBaseURL    string               `toml:"image_base_url"`
	DeckShareBase   string               `toml:"deck_share_base"`
	HeaderPile      string               `toml:"header_pile"`
	FooterPile      string               `toml:"footer_pile"`
	TypeOrder       []string             `toml:"type_order"`
	MaxResults      int                  `toml:"max_results"`
	NoMatchMessages []string             `toml:"no_match_messages"`
	PropertyAliases map[string]AliasList `toml:"property_aliases"`
}

// AliasList holds the synonyms of one query property. In the config file it
// may be written as a single string or as an array of strings.
type AliasList []string

// UnmarshalTOML implements toml.Unmarshaler.
func (a *AliasList) UnmarshalTOML(data any) error {
	switch v := data.(type) {
	case string:
		*a = AliasList{v}
	case []any:
		list := make(AliasList, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return fmt.Errorf("alias must be a string, got %T", e)
			}
			list = append(list, s)
		}
		*a = list
	default:
		return fmt.Errorf("aliases must be a string or an array of strings, got %T", data)
	}
	return nil
}

// DeckOptions returns the pile and type settings used to render decks.
func (c *Config) DeckOptions() deck.Options {
	return deck.Options{
		HeaderPile: c.HeaderPile,
		FooterPile: c.FooterPile,
		TypeOrder:  c.TypeOrder,
	}
}

// Aliases returns the property aliases keyed by canonical name.
func (c *Config) Aliases() map[string][]string {
	out := make(map[string][]string, len(c.PropertyAliases))
	for k, v := range c.PropertyAliases {
		out[k] = []string(v)
	}
	return out
}

// CardLibrary returns the directory holding the set index and set files.
func (c *Config) CardLibrary() string {
	if c.CardDir != "" {
		return c.CardDir
	}
	return GetCardDir()
}

// DeckLibrary returns the directory holding deck files.
func (c *Config) DeckLibrary() string {
	if c.DeckDir != "" {
		return c.DeckDir
	}
	return GetDeckLibraryPath()
}

func (c *Config) applyDefaults() {
	if c.MaxResults <= 0 {
		c.MaxResults = DefaultMaxResults
	}
	if c.ImageBaseURL == "" {
		c.ImageBaseURL = "https://tcgbuilder.net/images"
	}
	if c.DeckShareBase == "" {
		c.DeckShareBase = "https://www.tcgbuilder.net/?deck="
	}
}

var configPathOverride string

// SetConfigFilePath makes LoadConfig read path instead of the XDG location.
func SetConfigFilePath(path string) {
	configPathOverride = path
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetXDGCacheHome returns XDG_CACHE_HOME or default path
func GetXDGCacheHome() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return xdgCache
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".cache")
}

// GetCardDir returns the default card library path
func GetCardDir() string {
	return filepath.Join(GetXDGDataHome(), "tcgoracle", "cards")
}

// GetDeckLibraryPath returns the default deck library path
func GetDeckLibraryPath() string {
	return filepath.Join(GetXDGDataHome(), "tcgoracle", "decks")
}

// GetCacheDir returns the cache directory
func GetCacheDir() string {
	return filepath.Join(GetXDGCacheHome(), "tcgoracle")
}

// GetANSICacheDir returns the directory holding converted card art
func GetANSICacheDir() string {
	return filepath.Join(GetCacheDir(), "ansi_cache")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	if configPathOverride != "" {
		return configPathOverride
	}
	return filepath.Join(GetXDGConfigHome(), "tcgoracle", "config.toml")
}

// LoadConfig loads the config file, creating a default one when it is missing
func LoadConfig() (*Config, error) {
	configPath := GetConfigFilePath()

	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		return createDefaultConfig(configPath)
	}

	return LoadConfigFile(configPath)
}

// LoadConfigFile decodes a config file
func LoadConfigFile(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}
	config.applyDefaults()
	return &config, nil
}

// DefaultConfig returns the configuration written on first run
func DefaultConfig() *Config {
	config := &Config{
		HeaderPile: "",
		FooterPile: "Side",
		TypeOrder:  []string{},
		NoMatchMessages: []string{
			"Maybe it's still in the booster pack.",
			"Check the spelling and try again.",
		},
		PropertyAliases: map[string]AliasList{},
	}
	config.applyDefaults()
	return config
}

// createDefaultConfig creates a default config file
func createDefaultConfig(configPath string) (*Config, error) {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %w", err)
	}

	config := DefaultConfig()

	file, err := os.Create(configPath)
	if err != nil {
		return nil, fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return nil, fmt.Errorf("error encoding config: %w", err)
	}

	return config, nil
}

// GetDeckPath returns the path to a deck file, either in the deck library or
// a path given directly
func (c *Config) GetDeckPath(code string) (string, error) {
	deckPath := filepath.Join(c.DeckLibrary(), code+".json")
	if _, err := os.Stat(deckPath); err == nil {
		return deckPath, nil
	}

	if info, err := os.Stat(code); err == nil && !info.IsDir() {
		return code, nil
	}

	return "", fmt.Errorf("%w: %s", deck.ErrNotFound, code)
}
