package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagScene    = flag.String("scene", "", "Scene to show: grid, cluster, site or model")
	flagWidth    = flag.Int("width", 0, "Window width")
	flagHeight   = flag.Int("height", 0, "Window height")
	flagHeadless = flag.Bool("headless", false, "Render offscreen and write a snapshot")
	flagFrames   = flag.Int("frames", 0, "Frames to render in headless mode")
	flagSnapshot = flag.String("snapshot", "", "Snapshot PNG path for headless mode")
	flagModel    = flag.String("model", "", "Model manifest for the site and model scenes")
	flagDump     = flag.String("dump-config", "", "Write the effective config to this path and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// DumpPath returns the --dump-config target, if any.
func DumpPath() string {
	return *flagDump
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagScene != "" {
		cfg.Scene.Name = *flagScene
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagHeadless {
		cfg.Graphics.Headless = true
	}
	if *flagFrames > 0 {
		cfg.Graphics.Frames = *flagFrames
	}
	if *flagSnapshot != "" {
		cfg.Graphics.Snapshot = *flagSnapshot
	}
	if *flagModel != "" {
		cfg.Scene.Model = *flagModel
	}
}
