package config

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

type Config struct {
	Toolsets           []string       `toml:"toolsets"`
	ReadOnly           bool           `toml:"read_only"`
	DisableDestructive bool           `toml:"disable_destructive"`
	LogLevel           string         `toml:"log_level"`
	Transport          string         `toml:"transport"`
	ListenAddr         string         `toml:"listen_addr"`
	EnvFile            string         `toml:"env_file"`
	WatchConfig        bool           `toml:"watch_config"`
	Safety             SafetyConfig   `toml:"safety"`
	Timeouts           TimeoutsConfig `toml:"timeouts"`
	Cache              CacheConfig    `toml:"cache"`
	Policy             PolicyConfig   `toml:"policy"`
}

type SafetyConfig struct {
	AllowDestructiveTools []string `toml:"allow_destructive_tools"`
}

type TimeoutsConfig struct {
	DefaultSeconds int            `toml:"default_seconds"`
	MaxSeconds     int            `toml:"max_seconds"`
	PerTool        map[string]int `toml:"per_tool"`
}

type CacheConfig struct {
	ListTTLSeconds int `toml:"list_ttl_seconds"`
}

type PolicyConfig struct {
	AllowedTenants []string `toml:"allowed_tenants"`
	DeniedTools    []string `toml:"denied_tools"`
}

type Overrides struct {
	Toolsets           *[]string
	ReadOnly           *bool
	DisableDestructive *bool
	LogLevel           *string
	Transport          *string
	ListenAddr         *string
	EnvFile            *string
	WatchConfig        *bool
}

func DefaultConfig() Config {
	return Config{
		Toolsets:   []string{"tenant", "host", "service", "database", "bucket", "ecs"},
		LogLevel:   "info",
		Transport:  TransportStdio,
		ListenAddr: "127.0.0.1:8080",
	}
}

// DropInDir is the conventional drop-in directory for a config file:
// "<path>.d" next to it.
func DropInDir(path string) string {
	if path == "" {
		return ""
	}
	return path + ".d"
}

func Load(path string, dir string, overrides Overrides) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		fileCfg, err := readFile(path)
		if err != nil {
			return cfg, err
		}
		merge(&cfg, fileCfg)
	}

	if dir != "" {
		files, err := dropInFiles(dir)
		if err != nil {
			return cfg, err
		}
		for _, file := range files {
			fileCfg, err := readFile(file)
			if err != nil {
				return cfg, err
			}
			merge(&cfg, fileCfg)
		}
	}

	applyOverrides(&cfg, overrides)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Transport {
	case TransportStdio:
	case TransportHTTP:
		if strings.TrimSpace(c.ListenAddr) == "" {
			return errors.New("listen_addr is required for the http transport")
		}
	default:
		return errors.New("transport must be \"stdio\" or \"http\"")
	}
	if c.Timeouts.DefaultSeconds < 0 || c.Timeouts.MaxSeconds < 0 {
		return errors.New("timeouts must not be negative")
	}
	return nil
}

func readFile(path string) (Config, error) {
	var cfg Config
	if _, err := os.Stat(path); err != nil {
		return cfg, err
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func dropInFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".toml" {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func merge(dst *Config, src Config) {
	if len(src.Toolsets) > 0 {
		dst.Toolsets = append([]string{}, src.Toolsets...)
	}
	if src.ReadOnly {
		dst.ReadOnly = src.ReadOnly
	}
	if src.DisableDestructive {
		dst.DisableDestructive = src.DisableDestructive
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	if src.Transport != "" {
		dst.Transport = src.Transport
	}
	if src.ListenAddr != "" {
		dst.ListenAddr = src.ListenAddr
	}
	if src.EnvFile != "" {
		dst.EnvFile = src.EnvFile
	}
	if src.WatchConfig {
		dst.WatchConfig = src.WatchConfig
	}
	if len(src.Safety.AllowDestructiveTools) > 0 {
		dst.Safety.AllowDestructiveTools = append([]string{}, src.Safety.AllowDestructiveTools...)
	}
	if src.Timeouts.DefaultSeconds != 0 {
		dst.Timeouts.DefaultSeconds = src.Timeouts.DefaultSeconds
	}
	if src.Timeouts.MaxSeconds != 0 {
		dst.Timeouts.MaxSeconds = src.Timeouts.MaxSeconds
	}
	if len(src.Timeouts.PerTool) > 0 {
		if dst.Timeouts.PerTool == nil {
			dst.Timeouts.PerTool = map[string]int{}
		}
		for tool, seconds := range src.Timeouts.PerTool {
			dst.Timeouts.PerTool[tool] = seconds
		}
	}
	if src.Cache.ListTTLSeconds != 0 {
		dst.Cache.ListTTLSeconds = src.Cache.ListTTLSeconds
	}
	if len(src.Policy.AllowedTenants) > 0 {
		dst.Policy.AllowedTenants = append([]string{}, src.Policy.AllowedTenants...)
	}
	if len(src.Policy.DeniedTools) > 0 {
		dst.Policy.DeniedTools = append([]string{}, src.Policy.DeniedTools...)
	}
}

func applyOverrides(cfg *Config, overrides Overrides) {
	if overrides.Toolsets != nil {
		cfg.Toolsets = append([]string{}, (*overrides.Toolsets)...)
	}
	if overrides.ReadOnly != nil {
		cfg.ReadOnly = *overrides.ReadOnly
	}
	if overrides.DisableDestructive != nil {
		cfg.DisableDestructive = *overrides.DisableDestructive
	}
	if overrides.LogLevel != nil {
		cfg.LogLevel = *overrides.LogLevel
	}
	if overrides.Transport != nil {
		cfg.Transport = *overrides.Transport
	}
	if overrides.ListenAddr != nil {
		cfg.ListenAddr = *overrides.ListenAddr
	}
	if overrides.EnvFile != nil {
		cfg.EnvFile = *overrides.EnvFile
	}
	if overrides.WatchConfig != nil {
		cfg.WatchConfig = *overrides.WatchConfig
	}
}
