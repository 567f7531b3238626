package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/viper"

	"github.com/packwix/packwix/internal/branding"
	"github.com/packwix/packwix/internal/platform"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys.
const (
	KeyPackagesDir    = "packages_dir"
	KeyDataDir        = "data_dir"
	KeyOutputDir      = "output_dir"
	KeyPrefix         = "prefix"
	KeyPlatform       = "platform"
	KeyTargetPlatform = "target_platform"
	KeyTargetArch     = "target_arch"
	KeyLogLevel       = "log_level"
	KeyLogFormat      = "log_format"
)

// Config is the resolved configuration for a run.
type Config struct {
	PackagesDir    string `mapstructure:"packages_dir"`
	DataDir        string `mapstructure:"data_dir"`
	OutputDir      string `mapstructure:"output_dir"`
	Prefix         string `mapstructure:"prefix"`
	Platform       string `mapstructure:"platform"`
	TargetPlatform string `mapstructure:"target_platform"`
	TargetArch     string `mapstructure:"target_arch"`
	LogLevel       string `mapstructure:"log_level"`
	LogFormat      string `mapstructure:"log_format"`
}

// Defaults returns the value every key falls back to.
func Defaults() map[string]string {
	return map[string]string{
		KeyPackagesDir:    "packages",
		KeyDataDir:        "data",
		KeyOutputDir:      "output",
		KeyPrefix:         ".",
		KeyPlatform:       string(platform.Host()),
		KeyTargetPlatform: string(platform.Windows),
		KeyTargetArch:     string(platform.X86_64),
		KeyLogLevel:       "info",
		KeyLogFormat:      "text",
	}
}

// Keys returns every known setting key, sorted.
func Keys() []string {
	defaults := Defaults()
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsKey reports whether key is a known setting.
func IsKey(key string) bool {
	_, ok := Defaults()[key]
	return ok
}

// Dir returns the path to the packwix config directory (~/.packwix/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the user config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper from the config file and environment and decodes
// the result. An empty cfgFile means the user config file, which may be
// absent; an explicit cfgFile must exist.
func Load(cfgFile string) (*Config, error) {
	for key, value := range Defaults() {
		viper.SetDefault(key, value)
	}
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", cfgFile, err)
		}
	} else {
		viper.SetConfigFile(FilePath())
		viper.SetConfigType(fileType)
		if err := viper.ReadInConfig(); err != nil && !isNotExist(err) {
			return nil, fmt.Errorf("reading config file %s: %w", FilePath(), err)
		}
	}

	return Current()
}

// Current decodes the settings Viper holds right now, flags included.
func Current() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}

// HostPlatform returns the platform packwix runs on.
func (c *Config) HostPlatform() (platform.Platform, error) {
	return platform.ParsePlatform(c.Platform)
}

// Target returns the platform and architecture installers are built for.
func (c *Config) Target() (platform.Platform, platform.Architecture, error) {
	p, err := platform.ParsePlatform(c.TargetPlatform)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", KeyTargetPlatform, err)
	}
	a, err := platform.ParseArchitecture(c.TargetArch)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", KeyTargetArch, err)
	}
	return p, a, nil
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the user config file.
func Set(key, value string) error {
	if !IsKey(key) {
		return fmt.Errorf("unknown config key %q", key)
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	// Write only what the file already holds plus the new key, so defaults
	// and environment overrides are not persisted.
	file := viper.New()
	file.SetConfigFile(FilePath())
	file.SetConfigType(fileType)
	if err := file.ReadInConfig(); err != nil && !isNotExist(err) {
		return fmt.Errorf("reading config file: %w", err)
	}
	file.Set(key, value)
	viper.Set(key, value)

	if err := file.WriteConfigAs(FilePath()); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}
