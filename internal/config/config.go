// Package config handles client configuration loading and management.
package config

import "time"

// Config holds all client settings.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Graphics   GraphicsConfig   `yaml:"graphics"`
	Viewer     ViewerConfig     `yaml:"viewer"`
	Generation GenerationConfig `yaml:"generation"`
	Audio      AudioConfig      `yaml:"audio"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ServerConfig holds generation server connection settings.
type ServerConfig struct {
	BaseURL         string        `yaml:"base_url"`
	PollInterval    time.Duration `yaml:"poll_interval"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	DownloadTimeout time.Duration `yaml:"download_timeout"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
}

// ViewerConfig holds 3D viewer settings.
type ViewerConfig struct {
	Background    int     `yaml:"background"` // Palette index of the startup background
	PointSize     float32 `yaml:"point_size"`
	Wireframe     bool    `yaml:"wireframe"`
	ShowBounds    bool    `yaml:"show_bounds"`
	ShowStats     bool    `yaml:"show_stats"`
	ScreenshotDir string  `yaml:"screenshot_dir"`
}

// GenerationConfig holds text-to-3D request settings.
type GenerationConfig struct {
	DefaultQuality string `yaml:"default_quality"`
	EnhancePrompts bool   `yaml:"enhance_prompts"`
	OutputDir      string `yaml:"output_dir"`
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	Volume float32 `yaml:"volume"`
	Muted  bool    `yaml:"muted"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL:         "http://127.0.0.1:5000",
			PollInterval:    2 * time.Second,
			RequestTimeout:  15 * time.Second,
			DownloadTimeout: 120 * time.Second,
		},
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     800,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Viewer: ViewerConfig{
			Background:    0,
			PointSize:     3.0,
			Wireframe:     false,
			ShowBounds:    false,
			ShowStats:     false,
			ScreenshotDir: "screenshots",
		},
		Generation: GenerationConfig{
			DefaultQuality: "standard",
			EnhancePrompts: true,
			OutputDir:      "generated_models",
		},
		Audio: AudioConfig{
			Volume: 0.8,
			Muted:  false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
