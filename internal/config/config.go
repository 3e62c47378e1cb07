package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dshills/notebook/internal/config/loader"
)

// Layer names in increasing precedence.
const (
	LayerDefaults    = "defaults"
	LayerUser        = "user"
	LayerFile        = "file"
	LayerEnvironment = "environment"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "NOTEBOOK_"

// layer is one configuration source.
type layer struct {
	name string
	path string
	data map[string]any
}

// Config merges the configuration sources and exposes the result as a typed
// Settings value.
type Config struct {
	mu sync.RWMutex

	layers   []layer
	merged   map[string]any
	settings Settings

	userConfigDir string
	explicitPath  string
	env           loader.Loader
	fs            loader.FileSystem
}

// Option configures a Config instance.
type Option func(*Config)

// WithUserConfigDir sets the user configuration directory.
func WithUserConfigDir(dir string) Option {
	return func(c *Config) {
		c.userConfigDir = dir
	}
}

// WithFile adds an explicit configuration file that overrides the user file.
func WithFile(path string) Option {
	return func(c *Config) {
		c.explicitPath = path
	}
}

// WithEnvLoader replaces the environment loader. A nil loader disables
// environment overrides.
func WithEnvLoader(l loader.Loader) Option {
	return func(c *Config) {
		c.env = l
	}
}

// WithFileSystem sets the file system config files are read from.
func WithFileSystem(fs loader.FileSystem) Option {
	return func(c *Config) {
		if fs != nil {
			c.fs = fs
		}
	}
}

// New creates a Config holding the defaults. Call Load to read the other
// sources.
func New(opts ...Option) *Config {
	c := &Config{
		env: loader.NewEnvLoader(EnvPrefix),
		fs:  loader.DefaultFS(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.userConfigDir == "" {
		c.userConfigDir = defaultUserConfigDir()
	}

	c.layers = []layer{{name: LayerDefaults, data: defaultConfig()}}
	c.merged = defaultConfig()
	c.settings = DefaultSettings()
	return c
}

// Load reads every source, merges them and validates the result. When any
// step fails the previously loaded configuration stays in effect.
func (c *Config) Load(ctx context.Context) error {
	layers := []layer{{name: LayerDefaults, data: defaultConfig()}}

	if path := c.userConfigPath(); path != "" {
		data, err := loader.LoadFile(c.fs, path)
		if err != nil {
			return err
		}
		layers = append(layers, layer{name: LayerUser, path: path, data: data})
	}

	if c.explicitPath != "" {
		if _, err := c.fs.Stat(c.explicitPath); err != nil {
			return fmt.Errorf("config file %s: %w", c.explicitPath, err)
		}
		data, err := loader.LoadFile(c.fs, c.explicitPath)
		if err != nil {
			return err
		}
		layers = append(layers, layer{name: LayerFile, path: c.explicitPath, data: data})
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if c.env != nil {
		data, err := c.env.Load()
		if err != nil {
			return fmt.Errorf("loading environment: %w", err)
		}
		layers = append(layers, layer{name: LayerEnvironment, data: data})
	}

	merged := make(map[string]any)
	for _, l := range layers {
		merged = loader.DeepMerge(merged, loader.Clone(l.data))
	}

	settings, err := settingsFrom(merged)
	if err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	c.layers = layers
	c.merged = merged
	c.settings = settings
	c.mu.Unlock()
	return nil
}

// Settings returns the validated settings.
func (c *Config) Settings() Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings
}

// Layers returns the names of the loaded layers in precedence order.
func (c *Config) Layers() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, len(c.layers))
	for i, l := range c.layers {
		names[i] = l.name
	}
	return names
}

// Files returns the configuration files that were loaded, lowest
// precedence first.
func (c *Config) Files() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var files []string
	for _, l := range c.layers {
		if l.path != "" {
			files = append(files, l.path)
		}
	}
	return files
}

// WatchPaths returns the files a live reload should watch: the explicit
// file if one was given, plus the user file location.
func (c *Config) WatchPaths() []string {
	var paths []string
	if c.explicitPath != "" {
		paths = append(paths, c.explicitPath)
	}
	if p := c.userConfigPath(); p != "" {
		paths = append(paths, p)
	} else if c.userConfigDir != "" {
		paths = append(paths, filepath.Join(c.userConfigDir, "config.toml"))
	}
	return paths
}

// Merged returns a copy of the merged configuration map.
func (c *Config) Merged() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return loader.Clone(c.merged)
}

// Get returns the value at the given path from the merged configuration.
func (c *Config) Get(path string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return getPath(c.merged, path)
}

// GetString returns a string value at the given path.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", ErrSettingNotFound
	}
	return asString(path, v)
}

// GetInt returns an integer value at the given path.
func (c *Config) GetInt(path string) (int, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	return asInt(path, v)
}

// GetBool returns a boolean value at the given path.
func (c *Config) GetBool(path string) (bool, error) {
	v, ok := c.Get(path)
	if !ok {
		return false, ErrSettingNotFound
	}
	return asBool(path, v)
}

// userConfigPath returns the first existing config file in the user
// directory, or "".
func (c *Config) userConfigPath() string {
	if c.userConfigDir == "" {
		return ""
	}
	for _, name := range []string{"config.toml", "config.yaml", "config.yml"} {
		path := filepath.Join(c.userConfigDir, name)
		if _, err := c.fs.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// defaultUserConfigDir returns the default user configuration directory.
func defaultUserConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "notebook")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "notebook")
}

// getPath retrieves a value from a nested map using a dot-separated path.
func getPath(m map[string]any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	var current any = m

	for _, part := range parts {
		cm, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = cm[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func asString(path string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

func asInt(path string, v any) (int, error) {
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case uint64:
		return int(val), nil
	case float64:
		if val != float64(int(val)) {
			return 0, &TypeError{Path: path, Expected: "int", Actual: "float"}
		}
		return int(val), nil
	default:
		return 0, &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
	}
}

func asBool(path string, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
	}
	return b, nil
}

// typeName returns a human-readable type name for error messages.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case int, int64, uint64:
		return "int"
	case float64:
		return "float"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
