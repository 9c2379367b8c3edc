// Package config handles scene viewer configuration loading and management.
package config

import "time"

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Scene   SceneConfig   `yaml:"scene"`
	Assets  AssetsConfig  `yaml:"assets"`
	Debug   DebugConfig   `yaml:"debug"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// SceneConfig holds scene layout and animation settings.
type SceneConfig struct {
	TickInterval     time.Duration `yaml:"tick_interval"`
	CubeWidth        float32       `yaml:"cube_width"`
	GridStep         float32       `yaml:"grid_step"`
	GroupOffset      float32       `yaml:"group_offset"`
	CameraDistance   float32       `yaml:"camera_distance"`
	ZoomStep         float32       `yaml:"zoom_step"`
	SkyBoxWidth      float32       `yaml:"skybox_width"`
	SkyBoxDepthWrite bool          `yaml:"skybox_depth_write"`
	LightPosition    [4]float32    `yaml:"light_position"`
	LightPower       float32       `yaml:"light_power"`
}

// AssetsConfig holds asset lookup settings.
// Texture names starting with "builtin:" are generated instead of loaded.
type AssetsConfig struct {
	Dirs          []string `yaml:"dirs"`
	Mesh          string   `yaml:"mesh"`
	CubeTexture   string   `yaml:"cube_texture"`
	MeshTexture   string   `yaml:"mesh_texture"`
	SkyBoxTexture string   `yaml:"skybox_texture"`
	Watch         bool     `yaml:"watch"`
}

// DebugConfig holds developer tooling settings.
type DebugConfig struct {
	ScreenshotDir    string `yaml:"screenshot_dir"`
	ScreenshotPrefix string `yaml:"screenshot_prefix"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Scene Graph",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Scene: SceneConfig{
			TickInterval:   30 * time.Millisecond,
			CubeWidth:      0.7,
			GridStep:       2,
			GroupOffset:    8,
			CameraDistance: 5,
			ZoomStep:       0.25,
			SkyBoxWidth:    100,
			LightPosition:  [4]float32{0, 0, 0, 1},
			LightPower:     2,
		},
		Assets: AssetsConfig{
			Dirs:          []string{"assets", "."},
			Mesh:          "mesh/untitled.obj",
			CubeTexture:   "builtin:checker",
			MeshTexture:   "builtin:checker",
			SkyBoxTexture: "builtin:sky",
		},
		Debug: DebugConfig{
			ScreenshotDir:    "screenshots",
			ScreenshotPrefix: "scene",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
