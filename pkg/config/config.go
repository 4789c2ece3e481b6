// Package config handles renderer configuration loading and management.
package config

// Config holds all settings for a render run.
type Config struct {
	Render     RenderConfig     `yaml:"render"`
	Shadows    ShadowConfig     `yaml:"shadows"`
	AO         AOConfig         `yaml:"ao"`
	DOF        DOFConfig        `yaml:"dof"`
	Background BackgroundConfig `yaml:"background"`
	Shading    ShadingConfig    `yaml:"shading"`
	Output     OutputConfig     `yaml:"output"`
	Scene      SceneConfig      `yaml:"scene"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// RenderConfig holds image size, sampling and scheduling settings.
type RenderConfig struct {
	Width           int `yaml:"width"`
	Height          int `yaml:"height"`
	MaxBounces      int `yaml:"max_bounces"`
	SamplesPerPixel int `yaml:"samples_per_pixel"`
	TileSize        int `yaml:"tile_size"`
	Threads         int `yaml:"threads"` // 0 = one per CPU
}

// ShadowConfig holds soft shadow settings.
type ShadowConfig struct {
	Soft    bool `yaml:"soft"`
	Samples int  `yaml:"samples"`
}

// AOConfig holds ambient occlusion settings.
type AOConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Samples   int     `yaml:"samples"`
	Radius    float64 `yaml:"radius"`
	Intensity float64 `yaml:"intensity"`
}

// DOFConfig holds depth of field settings.
type DOFConfig struct {
	Enabled       bool    `yaml:"enabled"`
	Aperture      float64 `yaml:"aperture"`
	FocusDistance float64 `yaml:"focus_distance"` // 0 = camera target
}

// BackgroundConfig holds the radial gradient background. Colours are hex strings.
type BackgroundConfig struct {
	Gradient bool    `yaml:"gradient"`
	Scale    float64 `yaml:"scale"`
	Center   string  `yaml:"center"`
	Edge     string  `yaml:"edge"`
}

// ShadingConfig selects a Blinn-Phong preset; explicit values override it.
type ShadingConfig struct {
	Preset    string   `yaml:"preset"` // "default" or "enhanced"
	Kd        *float64 `yaml:"kd,omitempty"`
	Ks        *float64 `yaml:"ks,omitempty"`
	Ambient   *float64 `yaml:"ambient,omitempty"`
	Shininess *float64 `yaml:"shininess,omitempty"`
}

// OutputConfig holds where and how the image is written.
type OutputConfig struct {
	Path  string `yaml:"path"`
	Scale int    `yaml:"scale"` // Integer nearest-neighbour upscale
}

// SceneConfig selects the scene to render. With neither set the plain white
// character is rendered.
type SceneConfig struct {
	File string `yaml:"file"` // YAML scene description
	Skin string `yaml:"skin"` // 64x64 or 64x32 skin PNG
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Width:           256,
			Height:          256,
			MaxBounces:      3,
			SamplesPerPixel: 1,
			TileSize:        32,
			Threads:         0,
		},
		Shadows: ShadowConfig{
			Soft:    false,
			Samples: 8,
		},
		AO: AOConfig{
			Enabled:   false,
			Samples:   8,
			Radius:    3.0,
			Intensity: 0.5,
		},
		DOF: DOFConfig{
			Enabled:  false,
			Aperture: 0.5,
		},
		Background: BackgroundConfig{
			Gradient: true,
			Center:   "#5973a6",
			Edge:     "#14141f",
		},
		Shading: ShadingConfig{
			Preset: PresetDefault,
		},
		Output: OutputConfig{
			Path:  "output/render.png",
			Scale: 1,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
