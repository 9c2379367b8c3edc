package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 1280 || cfg.Window.Height != 720 {
		t.Errorf("expected 1280x720, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if cfg.Scene.TickInterval != 30*time.Millisecond {
		t.Errorf("expected tick interval 30ms, got %v", cfg.Scene.TickInterval)
	}
	if cfg.Scene.CubeWidth != 0.7 {
		t.Errorf("expected cube width 0.7, got %v", cfg.Scene.CubeWidth)
	}
	if cfg.Scene.GridStep != 2 || cfg.Scene.GroupOffset != 8 {
		t.Errorf("unexpected grid layout: step %v offset %v", cfg.Scene.GridStep, cfg.Scene.GroupOffset)
	}
	if cfg.Scene.CameraDistance != 5 || cfg.Scene.ZoomStep != 0.25 {
		t.Errorf("unexpected camera settings: %+v", cfg.Scene)
	}
	if cfg.Scene.SkyBoxWidth != 100 || cfg.Scene.SkyBoxDepthWrite {
		t.Errorf("unexpected sky box settings: %+v", cfg.Scene)
	}
	if cfg.Scene.LightPosition != [4]float32{0, 0, 0, 1} || cfg.Scene.LightPower != 2 {
		t.Errorf("unexpected light: %v %v", cfg.Scene.LightPosition, cfg.Scene.LightPower)
	}
	if cfg.Assets.Watch {
		t.Error("expected watch to be off by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
window:
  width: 1920
  height: 1080
  fullscreen: true

scene:
  tick_interval: 16ms
  cube_width: 1.5
  light_position: [1, 2, 3, 1]
  light_power: 4

assets:
  dirs: ["/srv/scene"]
  mesh: "teapot.obj"
  watch: true

logging:
  level: "debug"
  log_file: "scene.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 || !cfg.Window.Fullscreen {
		t.Errorf("window not loaded: %+v", cfg.Window)
	}
	if cfg.Window.Title != "Scene Graph" {
		t.Errorf("unset title should keep default, got %q", cfg.Window.Title)
	}
	if cfg.Scene.TickInterval != 16*time.Millisecond {
		t.Errorf("expected 16ms, got %v", cfg.Scene.TickInterval)
	}
	if cfg.Scene.CubeWidth != 1.5 {
		t.Errorf("expected cube width 1.5, got %v", cfg.Scene.CubeWidth)
	}
	if cfg.Scene.GridStep != 2 {
		t.Errorf("unset grid step should keep default, got %v", cfg.Scene.GridStep)
	}
	if cfg.Scene.LightPosition != [4]float32{1, 2, 3, 1} || cfg.Scene.LightPower != 4 {
		t.Errorf("light not loaded: %v %v", cfg.Scene.LightPosition, cfg.Scene.LightPower)
	}
	if len(cfg.Assets.Dirs) != 1 || cfg.Assets.Dirs[0] != "/srv/scene" {
		t.Errorf("dirs not loaded: %v", cfg.Assets.Dirs)
	}
	if cfg.Assets.Mesh != "teapot.obj" || !cfg.Assets.Watch {
		t.Errorf("assets not loaded: %+v", cfg.Assets)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "scene.log" {
		t.Errorf("logging not loaded: %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"negative height", func(c *Config) { c.Window.Height = -1 }},
		{"zero tick", func(c *Config) { c.Scene.TickInterval = 0 }},
		{"zero cube", func(c *Config) { c.Scene.CubeWidth = 0 }},
		{"zero sky box", func(c *Config) { c.Scene.SkyBoxWidth = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "windowed flag",
			setup: func() {
				*flagWindowed = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Fullscreen {
					t.Error("expected windowed with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 2560 || cfg.Window.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "mesh and watch flags",
			setup: func() {
				*flagMesh = "other.obj"
				*flagWatch = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Assets.Mesh != "other.obj" || !cfg.Assets.Watch {
					t.Errorf("assets overrides not applied: %+v", cfg.Assets)
				}
			},
			teardown: func() {
				*flagMesh = ""
				*flagWatch = false
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
window:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Scene.LightPower = 7
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Scene.LightPower != 7 {
		t.Errorf("expected light power 7 after reload, got %v", loaded.Scene.LightPower)
	}
	if loaded.Scene.TickInterval != cfg.Scene.TickInterval {
		t.Errorf("tick interval changed on reload: %v", loaded.Scene.TickInterval)
	}
}
