// Package config provides Viper-based configuration loading for the game.
// Values come from an optional YAML file, then QUIZFIELD_* environment
// variables, on top of built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// WindowConfig holds window and logical screen settings.
type WindowConfig struct {
	Title  string `mapstructure:"title"`
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	// Scale multiplies the logical size to get the initial window size.
	Scale     int  `mapstructure:"scale"`
	Resizable bool `mapstructure:"resizable"`
}

// GameConfig holds the simulation constants.
type GameConfig struct {
	TileSize  int `mapstructure:"tile_size"`
	MoveSpeed int `mapstructure:"move_speed"` // pixels per frame while sliding
	// DialogCooldownFrames is how long a freshly opened dialog ignores input.
	DialogCooldownFrames int     `mapstructure:"dialog_cooldown_frames"`
	TransitionSpeed      float64 `mapstructure:"transition_speed"` // iris radius change per frame
	RevealSpeed          int     `mapstructure:"reveal_speed"`     // typewriter characters per frame, 0 = instant
	TextWidth            int     `mapstructure:"text_width"`       // dialog wrap width in characters
	StartMap             string  `mapstructure:"start_map"`
	StartX               int     `mapstructure:"start_x"`
	StartY               int     `mapstructure:"start_y"`
	DefaultMapWidth      int     `mapstructure:"default_map_width"`
	DefaultMapHeight     int     `mapstructure:"default_map_height"`
}

// DataConfig locates scenario packs on disk.
type DataConfig struct {
	Dir       string `mapstructure:"dir"`
	Pack      string `mapstructure:"pack"` // empty = offer every pack on the title screen
	Maps      string `mapstructure:"maps"`
	Dialogues string `mapstructure:"dialogues"`
	Font      string `mapstructure:"font"`
	FontSize  int    `mapstructure:"font_size"`
}

// SaveConfig selects and configures the save backend.
type SaveConfig struct {
	// Backend is "file" or "redis".
	Backend   string        `mapstructure:"backend"`
	Path      string        `mapstructure:"path"`
	RedisAddr string        `mapstructure:"redis_addr"`
	RedisKey  string        `mapstructure:"redis_key"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// AudioConfig holds sound settings.
type AudioConfig struct {
	Enabled    bool    `mapstructure:"enabled"`
	Dir        string  `mapstructure:"dir"`
	SampleRate int     `mapstructure:"sample_rate"`
	Volume     float64 `mapstructure:"volume"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// Config is the top-level application configuration.
type Config struct {
	Window  WindowConfig  `mapstructure:"window"`
	Game    GameConfig    `mapstructure:"game"`
	Data    DataConfig    `mapstructure:"data"`
	Save    SaveConfig    `mapstructure:"save"`
	Audio   AudioConfig   `mapstructure:"audio"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// Validate checks all configuration invariants and reports every violation.
func (c Config) Validate() error {
	var errs []string

	if err := validateWindow(c.Window); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateData(c.Data); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateSave(c.Save); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateWindow(w WindowConfig) error {
	var errs []string
	if w.Width < 1 || w.Height < 1 {
		errs = append(errs, fmt.Sprintf("window size must be positive, got %dx%d", w.Width, w.Height))
	}
	if w.Scale < 1 {
		errs = append(errs, fmt.Sprintf("window.scale must be >= 1, got %d", w.Scale))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if g.TileSize < 1 {
		errs = append(errs, fmt.Sprintf("game.tile_size must be >= 1, got %d", g.TileSize))
	}
	if g.MoveSpeed < 1 {
		errs = append(errs, fmt.Sprintf("game.move_speed must be >= 1, got %d", g.MoveSpeed))
	}
	if g.TileSize >= 1 && g.MoveSpeed > g.TileSize {
		errs = append(errs, "game.move_speed must not exceed game.tile_size")
	}
	if g.DialogCooldownFrames < 0 {
		errs = append(errs, "game.dialog_cooldown_frames must not be negative")
	}
	if g.TransitionSpeed <= 0 {
		errs = append(errs, fmt.Sprintf("game.transition_speed must be > 0, got %v", g.TransitionSpeed))
	}
	if g.RevealSpeed < 0 {
		errs = append(errs, "game.reveal_speed must not be negative")
	}
	if g.TextWidth < 8 {
		errs = append(errs, fmt.Sprintf("game.text_width must be >= 8, got %d", g.TextWidth))
	}
	if g.StartMap == "" {
		errs = append(errs, "game.start_map must not be empty")
	}
	if g.DefaultMapWidth < 1 || g.DefaultMapHeight < 1 {
		errs = append(errs, "game.default_map_width and game.default_map_height must be >= 1")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateData(d DataConfig) error {
	var errs []string
	if d.Dir == "" {
		errs = append(errs, "data.dir must not be empty")
	}
	if d.Maps == "" || d.Dialogues == "" {
		errs = append(errs, "data.maps and data.dialogues must not be empty")
	}
	if d.FontSize < 1 {
		errs = append(errs, fmt.Sprintf("data.font_size must be >= 1, got %d", d.FontSize))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateSave(s SaveConfig) error {
	switch s.Backend {
	case "file":
		if s.Path == "" {
			return errors.New("save.path must not be empty for the file backend")
		}
	case "redis":
		if s.RedisAddr == "" || s.RedisKey == "" {
			return errors.New("save.redis_addr and save.redis_key must not be empty for the redis backend")
		}
	default:
		return fmt.Errorf("save.backend must be one of [file, redis], got %q", s.Backend)
	}
	if s.Timeout < 0 {
		return errors.New("save.timeout must not be negative")
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from path (if it exists), applies QUIZFIELD_*
// environment overrides and validates the result. An empty path or a missing
// file yields the defaults.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetEnvPrefix("QUIZFIELD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("reading config file: %w", err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("checking config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults are static and always decode.
	_ = v.Unmarshal(&cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("window.title", "Tiny Quiz Field")
	v.SetDefault("window.width", 320)
	v.SetDefault("window.height", 240)
	v.SetDefault("window.scale", 3)
	v.SetDefault("window.resizable", true)

	v.SetDefault("game.tile_size", 16)
	v.SetDefault("game.move_speed", 4)
	v.SetDefault("game.dialog_cooldown_frames", 10)
	v.SetDefault("game.transition_speed", 8.0)
	v.SetDefault("game.reveal_speed", 2)
	v.SetDefault("game.text_width", 36)
	v.SetDefault("game.start_map", "world")
	v.SetDefault("game.start_x", 8)
	v.SetDefault("game.start_y", 8)
	v.SetDefault("game.default_map_width", 16)
	v.SetDefault("game.default_map_height", 12)

	v.SetDefault("data.dir", "data")
	v.SetDefault("data.pack", "")
	v.SetDefault("data.maps", "maps.json")
	v.SetDefault("data.dialogues", "dialogues.json")
	v.SetDefault("data.font", "")
	v.SetDefault("data.font_size", 12)

	v.SetDefault("save.backend", "file")
	v.SetDefault("save.path", "save.json")
	v.SetDefault("save.redis_addr", "localhost:6379")
	v.SetDefault("save.redis_key", "quizfield:save")
	v.SetDefault("save.timeout", "2s")

	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.dir", "sounds")
	v.SetDefault("audio.sample_rate", 44100)
	v.SetDefault("audio.volume", 0.5)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}
