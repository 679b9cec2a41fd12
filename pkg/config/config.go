/*
Package config manages TOML config for the headlinks service.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/Darsh-A/obsidian-auto-headers/internal/utils"
)

// Config holds the entire config structure.
type Config struct {
	Suggest SuggestConfig `toml:"suggest"`
	Index   IndexConfig   `toml:"index"`
	Server  ServerConfig  `toml:"server"`
}

// SuggestConfig has matching and link-insertion options.
type SuggestConfig struct {
	MinChars              int  `toml:"min_chars"`
	Fuzzy                 bool `toml:"fuzzy"`
	MinFuzzyScore         int  `toml:"min_fuzzy_score"`
	CaseSensitive         bool `toml:"case_sensitive"`
	InsertAlias           bool `toml:"insert_alias"`
	ShowFolder            bool `toml:"show_folder"`
	MaxPhraseWords        int  `toml:"max_phrase_words"`
	MaxSuggestions        int  `toml:"max_suggestions"`
	SuppressWhenPopupOpen bool `toml:"suppress_when_popup_open"`
}

// IndexConfig holds reindexing options.
type IndexConfig struct {
	DebounceMs int      `toml:"debounce_ms"`
	Extensions []string `toml:"extensions"`
}

// ServerConfig has IPC related options.
type ServerConfig struct {
	MaxLimit int `toml:"max_limit"`
	MaxQuery int `toml:"max_query"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
// 4. builtin defaults
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		execDir, execErr := utils.GetExecutableDir()
		if execErr != nil {
			return "", execErr
		}
		return execDir, nil
	}
	primaryPath := filepath.Join(homeDir, ".config", "headlinks")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	// Not conventional, fallback from ~/.config if not writable
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "headlinks")
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/headlinks/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Suggest: SuggestConfig{
			MinChars:              3,
			Fuzzy:                 true,
			MinFuzzyScore:         20,
			CaseSensitive:         false,
			InsertAlias:           false,
			ShowFolder:            true,
			MaxPhraseWords:        3,
			MaxSuggestions:        10,
			SuppressWhenPopupOpen: true,
		},
		Index: IndexConfig{
			DebounceMs: 120,
			Extensions: []string{".md", ".markdown"},
		},
		Server: ServerConfig{
			MaxLimit: 64,
			MaxQuery: 120,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file. Decoding over the defaults struct means
// loaded values shallow-merge over built-ins; omitted keys keep their
// defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return nil, err
	}
	return config, nil
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Update changes the runtime-adjustable suggest values and saves to file
func (c *Config) Update(configPath string, minChars, maxSuggestions *int, fuzzy, insertAlias *bool) error {
	suggest := &c.Suggest
	if minChars != nil {
		suggest.MinChars = *minChars
	}
	if maxSuggestions != nil {
		suggest.MaxSuggestions = *maxSuggestions
	}
	if fuzzy != nil {
		suggest.Fuzzy = *fuzzy
	}
	if insertAlias != nil {
		suggest.InsertAlias = *insertAlias
	}
	if configPath == "" {
		return nil
	}
	return SaveConfig(c, configPath)
}
