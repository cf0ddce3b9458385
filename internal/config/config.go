// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/sceneview/internal/engine/tween"
	"github.com/Faultbox/sceneview/internal/scene/geometry"
	"github.com/Faultbox/sceneview/internal/scene/variants"
	"github.com/Faultbox/sceneview/pkg/math"
)

// Config holds all viewer settings.
type Config struct {
	Graphics  GraphicsConfig  `yaml:"graphics"`
	Scene     SceneConfig     `yaml:"scene"`
	Selection SelectionConfig `yaml:"selection"`
	Controls  ControlsConfig  `yaml:"controls"`
	Mover     MoverConfig     `yaml:"mover"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FOV        float32 `yaml:"fov"`
	// Headless renders offscreen and writes a PNG instead of opening a window.
	Headless bool   `yaml:"headless"`
	Frames   int    `yaml:"frames"`   // Frames to run headless
	Snapshot string `yaml:"snapshot"` // PNG written after the last headless frame
}

// SceneConfig selects and tunes the scene variant.
type SceneConfig struct {
	Name         string   `yaml:"name"`
	Seed         uint64   `yaml:"seed"`
	ClusterCount int      `yaml:"cluster_count"`
	Palette      []string `yaml:"palette"` // Hex colors, cluster scene only
	Model        string   `yaml:"model"`   // Model manifest path
	AssetDirs    []string `yaml:"asset_dirs"`
}

// SelectionConfig holds highlight transition settings.
type SelectionConfig struct {
	Duration  float32 `yaml:"duration"`
	Ease      string  `yaml:"ease"`
	Accent    string  `yaml:"accent"`
	SpinSpeed float32 `yaml:"spin_speed"`
	// Raise and Focus override the scene's highlight placement when set.
	Raise []float32 `yaml:"raise,omitempty"`
	Focus []float32 `yaml:"focus,omitempty"`
}

// ControlsConfig holds camera and pointer settings.
type ControlsConfig struct {
	EnableDamping bool    `yaml:"enable_damping"`
	DampingFactor float32 `yaml:"damping_factor"`
	RotateSpeed   float32 `yaml:"rotate_speed"`
	ZoomSpeed     float32 `yaml:"zoom_speed"`
	ClickSlop     float32 `yaml:"click_slop"` // Max pointer travel of a click, pixels
	MoveKey       string  `yaml:"move_key"`
}

// MoverConfig holds the site walker path settings.
type MoverConfig struct {
	Radius          float32 `yaml:"radius"`
	Height          float32 `yaml:"height"`
	AngularStep     float32 `yaml:"angular_step"`
	TimeNormalized  bool    `yaml:"time_normalized"`
	AngularVelocity float32 `yaml:"angular_velocity"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:    1280,
			Height:   720,
			VSync:    true,
			FOV:      75,
			Frames:   120,
			Snapshot: "sceneview.png",
		},
		Scene: SceneConfig{
			Name:         variants.Grid,
			Seed:         1,
			ClusterCount: 9,
		},
		Selection: SelectionConfig{
			Duration:  0.5,
			Ease:      tween.DefaultEase,
			Accent:    "#ca37de",
			SpinSpeed: 0.5,
		},
		Controls: ControlsConfig{
			EnableDamping: true,
			DampingFactor: 0.05,
			RotateSpeed:   0.005,
			ZoomSpeed:     0.1,
			ClickSlop:     4,
			MoveKey:       "w",
		},
		Mover: MoverConfig{
			Radius:          20,
			Height:          0.1,
			AngularStep:     0.005,
			AngularVelocity: 0.3,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports settings the viewer cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: invalid size %dx%d", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Graphics.FOV <= 0 || c.Graphics.FOV >= 180 {
		errs = append(errs, fmt.Errorf("graphics: fov %v out of (0, 180)", c.Graphics.FOV))
	}
	if c.Graphics.Headless && c.Graphics.Frames <= 0 {
		errs = append(errs, errors.New("graphics: headless run needs frames > 0"))
	}

	known := false
	for _, name := range variants.Names {
		known = known || name == c.Scene.Name
	}
	if !known {
		errs = append(errs, fmt.Errorf("scene: unknown scene %q", c.Scene.Name))
	}
	if _, err := geometry.ParsePalette(c.Scene.Palette); err != nil {
		errs = append(errs, fmt.Errorf("scene: %w", err))
	}

	if c.Selection.Duration <= 0 {
		errs = append(errs, fmt.Errorf("selection: duration %v must be positive", c.Selection.Duration))
	}
	if _, err := tween.Ease(c.Selection.Ease); err != nil {
		errs = append(errs, fmt.Errorf("selection: %w", err))
	}
	if _, err := geometry.ParsePalette([]string{c.Selection.Accent}); err != nil {
		errs = append(errs, fmt.Errorf("selection: accent: %w", err))
	}
	if _, _, err := vec3(c.Selection.Raise); err != nil {
		errs = append(errs, fmt.Errorf("selection: raise: %w", err))
	}
	if _, _, err := vec3(c.Selection.Focus); err != nil {
		errs = append(errs, fmt.Errorf("selection: focus: %w", err))
	}

	if c.Controls.DampingFactor <= 0 || c.Controls.DampingFactor > 1 {
		errs = append(errs, fmt.Errorf("controls: damping factor %v out of (0, 1]", c.Controls.DampingFactor))
	}
	if c.Mover.Radius <= 0 {
		errs = append(errs, errors.New("mover: radius must be positive"))
	}
	return errors.Join(errs...)
}

// RaiseOffset returns the configured raise offset, if any.
func (s SelectionConfig) RaiseOffset() (math.Vec3, bool) {
	v, ok, _ := vec3(s.Raise)
	return v, ok
}

// FocusPoint returns the configured focus point, if any.
func (s SelectionConfig) FocusPoint() (math.Vec3, bool) {
	v, ok, _ := vec3(s.Focus)
	return v, ok
}

func vec3(v []float32) (math.Vec3, bool, error) {
	switch len(v) {
	case 0:
		return math.Vec3{}, false, nil
	case 3:
		return math.Vec3{X: v[0], Y: v[1], Z: v[2]}, true, nil
	default:
		return math.Vec3{}, false, fmt.Errorf("want 3 values, got %d", len(v))
	}
}
