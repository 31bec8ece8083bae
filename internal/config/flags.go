package config

import "flag"

// Flags shared by all binaries. They override both the defaults and
// the config file.
var (
	flagConfig     = flag.String("config", "", "Explicit config file path")
	flagServer     = flag.String("server", "", "Generation server base URL")
	flagQuality    = flag.String("quality", "", "Default generation quality (draft, standard or high)")
	flagWidth      = flag.Int("width", 0, "Window width in pixels")
	flagHeight     = flag.Int("height", 0, "Window height in pixels")
	flagWindowed   = flag.Bool("windowed", false, "Start windowed")
	flagFullscreen = flag.Bool("fullscreen", false, "Start fullscreen")
	flagMute       = flag.Bool("mute", false, "Start with audio muted")
	flagDebug      = flag.Bool("debug", false, "Debug logging plus the stats overlay")
)

// ParseFlags parses the command line. Call before Load.
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the path passed with -config, or empty.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags lays command line overrides on top of cfg. A -fullscreen
// next to -windowed wins.
func applyFlags(cfg *Config) {
	if *flagServer != "" {
		cfg.Server.BaseURL = *flagServer
	}
	if *flagQuality != "" {
		cfg.Generation.DefaultQuality = *flagQuality
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagMute {
		cfg.Audio.Muted = true
	}
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Viewer.ShowStats = true
	}
}
