// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/multierr"
)

// Config holds all viewer settings.
type Config struct {
	Graphics    GraphicsConfig    `yaml:"graphics"`
	Asset       AssetConfig       `yaml:"asset"`
	Camera      CameraConfig      `yaml:"camera"`
	Bloom       BloomConfig       `yaml:"bloom"`
	Interaction InteractionConfig `yaml:"interaction"`
	Sensor      SensorConfig      `yaml:"sensor"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
	Samples    int  `yaml:"samples"`
}

// AssetConfig points at the model to show.
type AssetConfig struct {
	ModelPath string `yaml:"model_path"`
}

// CameraConfig holds the camera and orbit control settings.
type CameraConfig struct {
	FOV         float32    `yaml:"fov"`
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
	Position    [3]float32 `yaml:"position,flow"`
	MinDistance float32    `yaml:"min_distance"`
	MaxDistance float32    `yaml:"max_distance"`
	Damping     float32    `yaml:"damping"`
	MaxPolarDeg float32    `yaml:"max_polar_deg"`
}

// BloomConfig tunes the glow pass on bloom-layer meshes.
type BloomConfig struct {
	Strength  float32 `yaml:"strength"`
	Radius    float32 `yaml:"radius"`
	Threshold float32 `yaml:"threshold"`
}

// InteractionConfig tunes the door, headlight and hazard behavior.
type InteractionConfig struct {
	DoorOpenDeg         float32       `yaml:"door_open_deg"`
	DoorDuration        time.Duration `yaml:"door_duration"`
	BlinkPeriod         time.Duration `yaml:"blink_period"`
	HeadlightBackOffset float32       `yaml:"headlight_back_offset"`
	HeadlightReach      float32       `yaml:"headlight_reach"`
	HazardColor         string        `yaml:"hazard_color"` // #RRGGBB
	HazardIntensity     float32       `yaml:"hazard_intensity"`
}

// SensorConfig holds the device orientation settings.
type SensorConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Sensitivity float32 `yaml:"sensitivity"`
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
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
			Samples:    4,
		},
		Asset: AssetConfig{
			ModelPath: "assets/car.glb",
		},
		Camera: CameraConfig{
			FOV:         50,
			Near:        0.1,
			Far:         1000,
			Position:    [3]float32{10, 5, 0},
			MinDistance: 1,
			MaxDistance: 20,
			Damping:     0.05,
			MaxPolarDeg: 90,
		},
		Bloom: BloomConfig{
			Strength:  1,
			Radius:    0,
			Threshold: 0,
		},
		Interaction: InteractionConfig{
			DoorOpenDeg:         50,
			DoorDuration:        time.Second,
			BlinkPeriod:         500 * time.Millisecond,
			HeadlightBackOffset: 0.3,
			HeadlightReach:      25,
			HazardColor:         "#FC8C03",
			HazardIntensity:     0.2,
		},
		Sensor: SensorConfig{
			Enabled:     false,
			Sensitivity: 1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// HazardRGB parses HazardColor.
func (c InteractionConfig) HazardRGB() (uint32, error) {
	s := strings.TrimPrefix(c.HazardColor, "#")
	if len(s) != 6 {
		return 0, fmt.Errorf("hazard color %q: want #RRGGBB", c.HazardColor)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("hazard color %q: %w", c.HazardColor, err)
	}
	return uint32(v), nil
}

// Validate reports settings the viewer cannot run with.
func (c *Config) Validate() error {
	var err error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("window size %dx%d", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Asset.ModelPath == "" {
		err = multierr.Append(err, errors.New("asset.model_path is empty"))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		err = multierr.Append(err, fmt.Errorf("camera clip range %v..%v", c.Camera.Near, c.Camera.Far))
	}
	if c.Camera.MinDistance > c.Camera.MaxDistance {
		err = multierr.Append(err, fmt.Errorf("camera distance range %v..%v", c.Camera.MinDistance, c.Camera.MaxDistance))
	}
	if c.Interaction.BlinkPeriod <= 0 {
		err = multierr.Append(err, fmt.Errorf("blink period %v", c.Interaction.BlinkPeriod))
	}
	if _, herr := c.Interaction.HazardRGB(); herr != nil {
		err = multierr.Append(err, herr)
	}
	return err
}
