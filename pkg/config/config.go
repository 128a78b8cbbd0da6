/*
Package config manages TOML config for SpellServe services.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/arlochr/spellserve/internal/utils"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Dict    DictConfig    `toml:"dict"`
	Checker CheckerConfig `toml:"checker"`
	CLI     CliConfig     `toml:"cli"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxLimit      int `toml:"max_limit"`
	MaxWordLength int `toml:"max_word_length"`
	CacheSize     int `toml:"cache_size"`
}

// DictConfig holds dictionary options.
type DictConfig struct {
	Path     string `toml:"path"`
	MaxWords int    `toml:"max_words"`
}

// CheckerConfig holds engine tuning options.
type CheckerConfig struct {
	FPRate    float64 `toml:"fp_rate"`
	MaxRadius int     `toml:"max_radius"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	SuggestLimit int  `toml:"suggest_limit"`
	NoFilter     bool `toml:"no_filter"`
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
	primaryPath := filepath.Join(homeDir, ".config", "spellserve")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	// Not conventional, fallback from ~/.config if not writable
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "spellserve")
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
// 2. Default path: [UserConfigDir]/spellserve/config.toml
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
		Server: ServerConfig{
			MaxLimit:      64,
			MaxWordLength: 64,
			CacheSize:     1024,
		},
		Dict: DictConfig{
			Path:     "dictionary.txt",
			MaxWords: 50000,
		},
		Checker: CheckerConfig{
			FPRate:    0.01,
			MaxRadius: 2,
		},
		CLI: CliConfig{
			SuggestLimit: 8,
			NoFilter:     false,
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

// tryPartialParse attempts to parse a TOML file
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if serverSection, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(serverSection, &config.Server)
	}
	if dictSection, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		extractDictConfig(dictSection, &config.Dict)
	}
	if checkerSection, ok := utils.ExtractSection(tempConfig, "checker"); ok {
		extractCheckerConfig(checkerSection, &config.Checker)
	}
	if cliSection, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(cliSection, &config.CLI)
	}
	return config, nil
}

// extractServerConfig extracts server configuration from a map
func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "max_word_length"); ok {
		server.MaxWordLength = val
	}
	if val, ok := utils.ExtractInt64(data, "cache_size"); ok {
		server.CacheSize = val
	}
}

// extractDictConfig extracts dictionary configuration from a map
func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		dict.Path = val
	}
	if val, ok := utils.ExtractInt64(data, "max_words"); ok {
		dict.MaxWords = val
	}
}

// extractCheckerConfig extracts engine configuration from a map
func extractCheckerConfig(data map[string]any, checker *CheckerConfig) {
	if val, ok := utils.ExtractFloat64(data, "fp_rate"); ok {
		checker.FPRate = val
	}
	if val, ok := utils.ExtractInt64(data, "max_radius"); ok {
		checker.MaxRadius = val
	}
}

// extractCliConfig extracts CLI config from a map
func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "suggest_limit"); ok {
		cli.SuggestLimit = val
	}
	if val, ok := utils.ExtractBool(data, "no_filter"); ok {
		cli.NoFilter = val
	}
}

// Validate clamps out-of-range values back to usable ones. Bad entries
// get a warning rather than a hard failure so a hand-edited config
// never refuses to start the service.
func (c *Config) Validate() {
	if c.Checker.FPRate <= 0 || c.Checker.FPRate >= 1 {
		log.Warnf("fp_rate %g is outside (0, 1), using %g", c.Checker.FPRate, DefaultConfig().Checker.FPRate)
		c.Checker.FPRate = DefaultConfig().Checker.FPRate
	}
	if c.Checker.MaxRadius < 1 {
		log.Warnf("max_radius %d is below 1, using %d", c.Checker.MaxRadius, DefaultConfig().Checker.MaxRadius)
		c.Checker.MaxRadius = DefaultConfig().Checker.MaxRadius
	}
	if c.Checker.MaxRadius > 5 {
		log.Warnf("max_radius %d is too costly, clamping to 5", c.Checker.MaxRadius)
		c.Checker.MaxRadius = 5
	}
	if c.Server.MaxLimit < 1 {
		c.Server.MaxLimit = DefaultConfig().Server.MaxLimit
	}
	if c.Server.MaxWordLength < 1 {
		c.Server.MaxWordLength = DefaultConfig().Server.MaxWordLength
	}
	if c.Server.CacheSize < 0 {
		c.Server.CacheSize = 0
	}
	if c.Dict.MaxWords < 0 {
		c.Dict.MaxWords = 0
	}
	if c.CLI.SuggestLimit < 1 {
		c.CLI.SuggestLimit = DefaultConfig().CLI.SuggestLimit
	}
	if c.CLI.SuggestLimit > c.Server.MaxLimit {
		c.CLI.SuggestLimit = c.Server.MaxLimit
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

// Update changes runtime-adjustable values and saves to file
func (c *Config) Update(configPath string, maxRadius, suggestLimit *int) error {
	if maxRadius != nil {
		c.Checker.MaxRadius = *maxRadius
	}
	if suggestLimit != nil {
		c.CLI.SuggestLimit = *suggestLimit
	}
	c.Validate()
	return SaveConfig(c, configPath)
}
