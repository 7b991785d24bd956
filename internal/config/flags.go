package config

import (
	"flag"
	"io"
)

// flags holds CLI overrides. Zero values mean "not given".
type flags struct {
	config   string
	debug    bool
	width    int
	height   int
	noVSync  bool
	fpsLimit float64
	software bool
	depth    bool
	air      string
	logFile  string
}

// newFlagSet declares the command-line flags on a fresh set bound to f.
func newFlagSet(name string, f *flags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&f.config, "config", "", "Path to config file")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug logging")
	fs.IntVar(&f.width, "width", 0, "Window width")
	fs.IntVar(&f.height, "height", 0, "Window height")
	fs.BoolVar(&f.noVSync, "no-vsync", false, "Present immediately instead of waiting for vertical sync")
	fs.Float64Var(&f.fpsLimit, "fps", 0, "CPU frame rate cap (0 = none)")
	fs.BoolVar(&f.software, "software", false, "Force the fallback software adapter")
	fs.BoolVar(&f.depth, "depth", false, "Enable the depth buffer")
	fs.StringVar(&f.air, "air", "", "Airborne policy: momentum_lock or free")
	fs.StringVar(&f.logFile, "log-file", "", "Also write logs to this rotating file")
	return fs
}

// apply applies CLI flag overrides to the config.
func (f *flags) apply(cfg *Config) {
	if f.debug {
		cfg.Logging.Level = "debug"
	}
	if f.width > 0 {
		cfg.Graphics.Width = f.width
	}
	if f.height > 0 {
		cfg.Graphics.Height = f.height
	}
	if f.noVSync {
		cfg.Graphics.VSync = false
	}
	if f.fpsLimit > 0 {
		cfg.Graphics.FPSLimit = f.fpsLimit
	}
	if f.software {
		cfg.Graphics.ForceSoftware = true
	}
	if f.depth {
		cfg.Graphics.DepthBuffer = true
	}
	if f.air != "" {
		cfg.Physics.AirPolicy = f.air
	}
	if f.logFile != "" {
		cfg.Logging.LogFile = f.logFile
	}
}
