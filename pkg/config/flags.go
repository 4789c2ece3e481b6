package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagWidth       = flag.Int("width", 0, "Image width in pixels")
	flagHeight      = flag.Int("height", 0, "Image height in pixels")
	flagSamples     = flag.Int("spp", 0, "Samples per pixel")
	flagBounces     = flag.Int("bounces", 0, "Maximum reflection bounces")
	flagTileSize    = flag.Int("tile", 0, "Tile size in pixels")
	flagThreads     = flag.Int("threads", 0, "Worker threads (0 = one per CPU)")
	flagSoftShadows = flag.Bool("soft-shadows", false, "Enable soft shadows")
	flagAO          = flag.Bool("ao", false, "Enable ambient occlusion")
	flagDOF         = flag.Bool("dof", false, "Enable depth of field")
	flagAperture    = flag.Float64("aperture", 0, "Lens radius for depth of field")
	flagFlat        = flag.Bool("flat-background", false, "Use the scene's flat background colour")
	flagPreset      = flag.String("shading", "", "Shading preset: 'default' or 'enhanced'")
	flagScene       = flag.String("scene", "", "Path to a YAML scene description")
	flagSkin        = flag.String("skin", "", "Path to a character skin PNG")
	flagOutput      = flag.String("out", "", "Output PNG path")
	flagScale       = flag.Int("scale", 0, "Integer upscale factor for the output PNG")
	flagLogFile     = flag.String("log-file", "", "Write logs to a rotating file")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies flags given on the command line over the config.
func applyFlags(cfg *Config) {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if set["width"] {
		cfg.Render.Width = *flagWidth
	}
	if set["height"] {
		cfg.Render.Height = *flagHeight
	}
	if set["spp"] {
		cfg.Render.SamplesPerPixel = *flagSamples
	}
	if set["bounces"] {
		cfg.Render.MaxBounces = *flagBounces
	}
	if set["tile"] {
		cfg.Render.TileSize = *flagTileSize
	}
	if set["threads"] {
		cfg.Render.Threads = *flagThreads
	}
	if set["soft-shadows"] {
		cfg.Shadows.Soft = *flagSoftShadows
	}
	if set["ao"] {
		cfg.AO.Enabled = *flagAO
	}
	if set["dof"] {
		cfg.DOF.Enabled = *flagDOF
	}
	if set["aperture"] {
		cfg.DOF.Aperture = *flagAperture
	}
	if *flagFlat {
		cfg.Background.Gradient = false
	}
	if *flagPreset != "" {
		cfg.Shading.Preset = *flagPreset
	}
	if *flagScene != "" {
		cfg.Scene.File = *flagScene
	}
	if *flagSkin != "" {
		cfg.Scene.Skin = *flagSkin
	}
	if *flagOutput != "" {
		cfg.Output.Path = *flagOutput
	}
	if set["scale"] {
		cfg.Output.Scale = *flagScale
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
