/*
Package config manages TOML config for elscan services.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/rdayan/elscan/internal/utils"
)

// Config holds the entire config structure
type Config struct {
	Search SearchConfig `toml:"search"`
	Chain  ChainConfig  `toml:"chain"`
	Server ServerConfig `toml:"server"`
	CLI    CliConfig    `toml:"cli"`
}

// SearchConfig bounds equidistant searches.
type SearchConfig struct {
	MaxSkipSpan int    `toml:"max_skip_span"`
	MaxResults  int    `toml:"max_results"`
	LetterClass string `toml:"letter_class"`
}

// ChainConfig bounds chain searches.
type ChainConfig struct {
	DefaultWindow int `toml:"default_window"`
	MaxWindow     int `toml:"max_window"`
}

// ServerConfig has IPC server related options.
type ServerConfig struct {
	MaxLimit    int `toml:"max_limit"`
	MaxTermLen  int `toml:"max_term_len"`
	MaxTextSize int `toml:"max_text_size"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultSkipMin int `toml:"default_skip_min"`
	DefaultSkipMax int `toml:"default_skip_max"`
	DefaultLimit   int `toml:"default_limit"`
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
	primaryPath := filepath.Join(homeDir, ".config", "elscan")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	// Not conventional, fallback from ~/.config if not writable
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "elscan")
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
// 2. Default path: [UserConfigDir]/elscan/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	var config *Config
	var err error

	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err = LoadConfig(customConfigPath)
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

	config, err = InitConfig(defaultPath)
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
		Search: SearchConfig{
			MaxSkipSpan: 500,
			MaxResults:  256,
			LetterClass: "letters",
		},
		Chain: ChainConfig{
			DefaultWindow: 50,
			MaxWindow:     2000,
		},
		Server: ServerConfig{
			MaxLimit:    256,
			MaxTermLen:  60,
			MaxTextSize: 4 << 20,
		},
		CLI: CliConfig{
			DefaultSkipMin: 1,
			DefaultSkipMax: 100,
			DefaultLimit:   24,
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

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse salvages whatever valid sections a broken file still has
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "search"); ok {
		extractSearchConfig(section, &config.Search)
	}
	if section, ok := utils.ExtractSection(tempConfig, "chain"); ok {
		extractChainConfig(section, &config.Chain)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	return config, nil
}

func extractSearchConfig(data map[string]any, search *SearchConfig) {
	if val, ok := utils.ExtractInt64(data, "max_skip_span"); ok {
		search.MaxSkipSpan = val
	}
	if val, ok := utils.ExtractInt64(data, "max_results"); ok {
		search.MaxResults = val
	}
	if val, ok := data["letter_class"].(string); ok {
		search.LetterClass = val
	}
}

func extractChainConfig(data map[string]any, chain *ChainConfig) {
	if val, ok := utils.ExtractInt64(data, "default_window"); ok {
		chain.DefaultWindow = val
	}
	if val, ok := utils.ExtractInt64(data, "max_window"); ok {
		chain.MaxWindow = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "max_term_len"); ok {
		server.MaxTermLen = val
	}
	if val, ok := utils.ExtractInt64(data, "max_text_size"); ok {
		server.MaxTextSize = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "default_skip_min"); ok {
		cli.DefaultSkipMin = val
	}
	if val, ok := utils.ExtractInt64(data, "default_skip_max"); ok {
		cli.DefaultSkipMax = val
	}
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	configDir := filepath.Dir(defaultPath)
	if err := utils.EnsureDir(configDir); err != nil {
		return err
	}
	config := DefaultConfig()
	return utils.SaveTOMLFile(config, defaultPath)
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

// Update changes the runtime-adjustable limits and saves to file
func (c *Config) Update(configPath string, maxSkipSpan, maxResults, maxWindow *int) error {
	if maxSkipSpan != nil {
		c.Search.MaxSkipSpan = *maxSkipSpan
	}
	if maxResults != nil {
		c.Search.MaxResults = *maxResults
	}
	if maxWindow != nil {
		c.Chain.MaxWindow = *maxWindow
	}
	return SaveConfig(c, configPath)
}
