package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagImages     = flag.String("images", "", "Image directory")
	flagDuration   = flag.Float64("duration", 0, "Transition duration in seconds")
	flagCurve      = flag.String("curve", "", "Easing curve name")
	flagHTTP       = flag.String("http", "", "Enable the HTTP control server on this address")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagImages != "" {
		cfg.Gallery.Dir = *flagImages
	}
	if *flagDuration > 0 {
		cfg.Animation.Duration = float32(*flagDuration)
	}
	if *flagCurve != "" {
		cfg.Animation.Curve = *flagCurve
		cfg.Animation.Keys = nil
	}
	if *flagHTTP != "" {
		cfg.Control.HTTP.Enabled = true
		cfg.Control.HTTP.Addr = *flagHTTP
	}
	if *flagWindowed {
		cfg.Display.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Display.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Display.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Display.Height = *flagHeight
	}
}
