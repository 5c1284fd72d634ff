package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AppDirName is the directory created under os.UserConfigDir.
const AppDirName = "lofigirl-terminal"

const fileName = "config.yaml"

// EnvPrefix namespaces environment overrides, e.g. LOFIGIRL_THEME.
const EnvPrefix = "LOFIGIRL"

// ErrInvalidSetting is returned when a loaded value is out of range.
var ErrInvalidSetting = errors.New("invalid setting")

// Settings holds application configuration.
type Settings struct {
	AppName    string `mapstructure:"app_name"`
	AppVersion string `mapstructure:"app_version"`
	LogLevel   string `mapstructure:"log_level"`

	DefaultVolume     int    `mapstructure:"default_volume"`
	AudioQuality      string `mapstructure:"audio_quality"`
	AudioCacheEnabled bool   `mapstructure:"audio_cache_enabled"`
	AudioCacheDir     string `mapstructure:"audio_cache_dir"`

	ConnectionTimeout int `mapstructure:"connection_timeout"`
	RetryAttempts     int `mapstructure:"retry_attempts"`
	StreamBufferSize  int `mapstructure:"stream_buffer_size"`

	Theme          string `mapstructure:"theme"`
	TerminalFont   string `mapstructure:"terminal_font"`
	AsciiArt       string `mapstructure:"ascii_art"`
	ShowVisualizer bool   `mapstructure:"show_visualizer"`
	UpdateInterval int    `mapstructure:"update_interval"`
	UIStyle        string `mapstructure:"ui_style"`

	DefaultStation string `mapstructure:"default_station"`
	HistoryLimit   int    `mapstructure:"history_limit"`
	// LiveScan replaces the built-in stations with the channel's live streams.
	LiveScan bool `mapstructure:"live_scan"`

	DiscordPresence bool   `mapstructure:"discord_presence"`
	DiscordAppID    string `mapstructure:"discord_app_id"`

	DebugMode       bool `mapstructure:"debug_mode"`
	EnableProfiling bool `mapstructure:"enable_profiling"`

	// Dir is the directory the settings were loaded from.
	Dir string `mapstructure:"-"`
}

var defaults = map[string]any{
	"app_name":            "lofigirl-terminal",
	"app_version":         "0.1.0",
	"log_level":           "INFO",
	"default_volume":      50,
	"audio_quality":       "high",
	"audio_cache_enabled": false,
	"audio_cache_dir":     ".cache/audio",
	"connection_timeout":  30,
	"retry_attempts":      3,
	"stream_buffer_size":  4096,
	"theme":               "catppuccin-mocha",
	"terminal_font":       "",
	"ascii_art":           "lofi-girl-classic",
	"show_visualizer":     true,
	"update_interval":     1,
	"ui_style":            "full",
	"default_station":     "lofi-hip-hop",
	"history_limit":       50,
	"live_scan":           false,
	"discord_presence":    false,
	"discord_app_id":      "",
	"debug_mode":          false,
	"enable_profiling":    false,
}

type LoadOptions struct {
	// Dir overrides DefaultDir.
	Dir string
	// EnvFiles overrides the default .env lookup. Missing files are skipped.
	EnvFiles []string
	// Overrides win over every other source, e.g. values from CLI flags.
	Overrides map[string]any
}

// DefaultDir returns <user config dir>/lofigirl-terminal.
func DefaultDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, AppDirName), nil
}

// Load reads settings from, lowest to highest precedence: defaults,
// config.yaml, env files, environment variables and overrides.
func Load(opts LoadOptions) (Settings, error) {
	dir := opts.Dir
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return Settings{}, fmt.Errorf("locate config dir: %w", err)
		}
		dir = d
	}

	v := newViper(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	envFiles := opts.EnvFiles
	if envFiles == nil {
		envFiles = []string{".env", filepath.Join(dir, "config.env")}
	}
	for _, path := range envFiles {
		if err := mergeEnvFile(v, path); err != nil {
			return Settings{}, err
		}
	}

	for key := range defaults {
		upper := strings.ToUpper(key)
		if err := v.BindEnv(key, EnvPrefix+"_"+upper, upper); err != nil {
			return Settings{}, err
		}
	}
	for key, value := range opts.Overrides {
		v.Set(key, value)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode config: %w", err)
	}
	s.Dir = dir
	s.LogLevel = strings.ToUpper(s.LogLevel)
	s.AudioQuality = strings.ToLower(s.AudioQuality)
	s.UIStyle = strings.ToLower(s.UIStyle)

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func newViper(dir string) *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	return v
}

func mergeEnvFile(v *viper.Viper, path string) error {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	known := make(map[string]any, len(values))
	for name, value := range values {
		key := strings.ToLower(strings.TrimPrefix(strings.ToUpper(name), EnvPrefix+"_"))
		if _, ok := defaults[key]; ok {
			known[key] = value
		}
	}
	if len(known) == 0 {
		return nil
	}
	return v.MergeConfigMap(known)
}

// Validate checks value ranges and enumerations.
func (s Settings) Validate() error {
	switch s.LogLevel {
	case "DEBUG", "INFO", "WARNING", "ERROR", "CRITICAL":
	default:
		return invalid("log_level", s.LogLevel, "one of DEBUG, INFO, WARNING, ERROR, CRITICAL")
	}
	if err := checkRange("default_volume", s.DefaultVolume, 0, 100); err != nil {
		return err
	}
	switch s.AudioQuality {
	case "low", "medium", "high":
	default:
		return invalid("audio_quality", s.AudioQuality, "one of low, medium, high")
	}
	if err := checkRange("connection_timeout", s.ConnectionTimeout, 1, 300); err != nil {
		return err
	}
	if err := checkRange("retry_attempts", s.RetryAttempts, 0, 10); err != nil {
		return err
	}
	if err := checkRange("stream_buffer_size", s.StreamBufferSize, 1024, 65536); err != nil {
		return err
	}
	if err := checkRange("update_interval", s.UpdateInterval, 1, 10); err != nil {
		return err
	}
	if err := checkRange("history_limit", s.HistoryLimit, 1, 1000); err != nil {
		return err
	}
	switch s.UIStyle {
	case "full", "compact":
	default:
		return invalid("ui_style", s.UIStyle, "one of full, compact")
	}
	if s.DiscordPresence && strings.TrimSpace(s.DiscordAppID) == "" {
		return invalid("discord_app_id", s.DiscordAppID, "set when discord_presence is enabled")
	}
	return nil
}

// CacheDir resolves AudioCacheDir against the config dir when relative.
func (s Settings) CacheDir() string {
	if s.AudioCacheDir == "" || filepath.IsAbs(s.AudioCacheDir) {
		return s.AudioCacheDir
	}
	return filepath.Join(s.Dir, s.AudioCacheDir)
}

// ConfigPath is the YAML file Save writes to.
func (s Settings) ConfigPath() string {
	return filepath.Join(s.Dir, fileName)
}

// Configured reports whether a config file has been written under dir.
func Configured(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, fileName))
	return err == nil
}

// HistoryPath is the bbolt database holding listening history.
func (s Settings) HistoryPath() string {
	return filepath.Join(s.Dir, "history.db")
}

// Save persists key=value into config.yaml under dir, keeping other keys.
func Save(dir, key string, value any) error {
	return SaveValues(dir, map[string]any{key: value})
}

// SaveValues persists several keys in one write. Nothing is written when any
// key is unknown.
func SaveValues(dir string, values map[string]any) error {
	for key := range values {
		if _, ok := defaults[key]; !ok {
			return fmt.Errorf("%w: unknown key %q", ErrInvalidSetting, key)
		}
	}

	v := viper.New()
	v.SetConfigType("yaml")
	path := filepath.Join(dir, fileName)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	for key, value := range values {
		v.Set(key, value)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return v.WriteConfigAs(path)
}

// SaveTheme persists the theme slug.
func SaveTheme(dir, slug string) error {
	return Save(dir, "theme", slug)
}

// SaveArt persists the ASCII art id.
func SaveArt(dir, id string) error {
	return Save(dir, "ascii_art", id)
}

func checkRange(key string, value, lo, hi int) error {
	if value < lo || value > hi {
		return invalid(key, value, fmt.Sprintf("between %d and %d", lo, hi))
	}
	return nil
}

func invalid(key string, value any, want string) error {
	return fmt.Errorf("%w: %s=%v, must be %s", ErrInvalidSetting, key, value, want)
}
