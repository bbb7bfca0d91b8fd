package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/mitchelldurbincs/splitgrundy/internal/grundy"
	"github.com/mitchelldurbincs/splitgrundy/internal/listing"
)

var (
	// ErrBoundTooLarge is returned when table.max_size exceeds table.limit
	ErrBoundTooLarge = errors.New("bound too large")
	// ErrNoConfigFile is returned when watching without an existing config file
	ErrNoConfigFile = errors.New("no config file to watch")

	errEmptyConfig = errors.New("config file has no settings")
)

// sections are the top-level keys a config file may set
var sections = []string{"table", "output", "logging"}

// watchDebounce is how long the config file must stay quiet before a reload.
// Editors and os.WriteFile truncate before writing, so a single save shows
// up as several events.
var watchDebounce = 100 * time.Millisecond

// Config holds all configuration for the application
type Config struct {
	Table   TableConfig   `mapstructure:"table"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TableConfig holds table computation settings
type TableConfig struct {
	MaxSize int `mapstructure:"max_size"` // exclusive upper bound on board size
	Limit   int `mapstructure:"limit"`
}

// OutputConfig holds listing settings
type OutputConfig struct {
	Format    string `mapstructure:"format"`
	ZerosOnly bool   `mapstructure:"zeros_only"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("table.max_size", 500)
	v.SetDefault("table.limit", 1<<16)

	v.SetDefault("output.format", string(listing.FormatText))
	v.SetDefault("output.zeros_only", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Init initializes the configuration. An explicit configPath that does not
// exist falls back to defaults.
func Init(configPath string) error {
	v = viper.New()
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("grundy")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// GRUNDY_TABLE_MAX_SIZE, GRUNDY_OUTPUT_FORMAT, ...
	v.SetEnvPrefix("GRUNDY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
		case configPath != "" && errors.Is(err, fs.ErrNotExist):
		default:
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return load()
}

// load decodes viper state into a fresh Config and validates it
func load() error {
	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	cfg = c
	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// GetViper returns the viper instance, e.g. for binding command line flags
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// Reload re-reads bound flags and environment into the global config
func Reload() error {
	return load()
}

// Set allows runtime config updates
func Set(key string, value interface{}) error {
	v.Set(key, value)
	return load()
}

// ConfigFilePath returns the path of the config file, which may not exist
// when an explicit path fell back to defaults
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// ConfigFileExists reports whether the config file was found on disk
func ConfigFileExists() bool {
	path := v.ConfigFileUsed()
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// WatchConfig re-loads the config whenever the file changes, until ctx is
// done. onChange gets the new config, or the previous one together with the
// error when the edited file is invalid. Saves that leave the file without
// any settings are skipped. The returned channel is closed once the watcher
// has stopped.
func WatchConfig(ctx context.Context, onChange func(*Config, error)) (<-chan struct{}, error) {
	if !ConfigFileExists() {
		return nil, ErrNoConfigFile
	}
	path := filepath.Clean(v.ConfigFileUsed())

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create config watcher: %w", err)
	}
	// Watch the directory so editors that replace the file are still seen.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		defer watcher.Close()

		var settle <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(e.Name) != path || !(e.Has(fsnotify.Write) || e.Has(fsnotify.Create)) {
					continue
				}
				settle = time.After(watchDebounce)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				if onChange != nil {
					onChange(cfg, fmt.Errorf("watch %s: %w", path, err))
				}
			case <-settle:
				settle = nil
				err := reloadFile()
				if errors.Is(err, errEmptyConfig) {
					continue
				}
				if err != nil {
					err = fmt.Errorf("reload %s: %w", path, err)
				}
				if onChange != nil {
					onChange(cfg, err)
				}
			}
		}
	}()
	return stopped, nil
}

// reloadFile re-reads the config file and reloads the global config
func reloadFile() error {
	if err := v.ReadInConfig(); err != nil {
		return err
	}
	if !hasSettings() {
		return errEmptyConfig
	}
	return load()
}

func hasSettings() bool {
	for _, section := range sections {
		if v.InConfig(section) {
			return true
		}
	}
	return false
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if c.Table.MaxSize < 0 {
		return fmt.Errorf("table.max_size must be non-negative")
	}
	if c.Table.Limit <= 0 || c.Table.Limit > grundy.MaxSize {
		return fmt.Errorf("table.limit must be between 1 and %d", grundy.MaxSize)
	}
	if c.Table.MaxSize > c.Table.Limit {
		return fmt.Errorf("table.max_size %d exceeds table.limit %d: %w",
			c.Table.MaxSize, c.Table.Limit, ErrBoundTooLarge)
	}

	if _, err := listing.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json")
	}

	return nil
}
