// Package config handles viewer configuration loading and management.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/holoframe/internal/easing"
	"github.com/Faultbox/holoframe/internal/pose"
	"github.com/Faultbox/holoframe/pkg/math"
)

// Config holds all viewer settings.
type Config struct {
	Frame     FrameConfig     `yaml:"frame"`
	Animation AnimationConfig `yaml:"animation"`
	Gallery   GalleryConfig   `yaml:"gallery"`
	Display   DisplayConfig   `yaml:"display"`
	Control   ControlConfig   `yaml:"control"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// PoseConfig is a pose authored as a position and Euler angles in degrees.
type PoseConfig struct {
	Position [3]float32 `yaml:"position"`
	Rotation [3]float32 `yaml:"rotation"`
}

// Pose converts the authored values into a pose.
func (p PoseConfig) Pose() pose.Pose {
	return pose.Pose{
		Position: math.Vec3FromArray(p.Position),
		Rotation: math.QuatFromEuler(p.Rotation[0], p.Rotation[1], p.Rotation[2]),
	}
}

// FrameConfig holds the frame's starting pose and the floating reference pose.
type FrameConfig struct {
	Rest  PoseConfig `yaml:"rest"`
	Float PoseConfig `yaml:"float"`
	Size  [2]float32 `yaml:"size"` // world units; width follows image aspect when 0
}

// KeyConfig is one keyframe of a custom easing curve.
type KeyConfig struct {
	Time       float32 `yaml:"time"`
	Value      float32 `yaml:"value"`
	InTangent  float32 `yaml:"in_tangent"`
	OutTangent float32 `yaml:"out_tangent"`
}

// AnimationConfig holds transition timing.
type AnimationConfig struct {
	Duration float32     `yaml:"duration"` // seconds
	Curve    string      `yaml:"curve"`
	Keys     []KeyConfig `yaml:"keys"` // overrides Curve when set
}

// Options builds animator options, resolving the curve.
func (a AnimationConfig) Options() (pose.Options, error) {
	opts := pose.Options{Duration: a.Duration}
	if len(a.Keys) > 0 {
		keys := make([]easing.Key, len(a.Keys))
		for i, k := range a.Keys {
			keys[i] = easing.Key(k)
		}
		opts.Curve = easing.NewKeyframes(keys...)
		return opts, nil
	}
	curve, err := easing.Named(a.Curve)
	if err != nil {
		return opts, err
	}
	opts.Curve = curve
	return opts, nil
}

// GalleryConfig holds image directory settings.
type GalleryConfig struct {
	Dir            string   `yaml:"dir"`
	Patterns       []string `yaml:"patterns"`
	MaxTextureSize int      `yaml:"max_texture_size"`
}

// DisplayConfig holds window and rendering settings.
type DisplayConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	Background string  `yaml:"background"` // hex colour
	FOV        float32 `yaml:"fov"`        // vertical, degrees
}

// BackgroundColor parses Background. An empty value is black.
func (d DisplayConfig) BackgroundColor() (colorful.Color, error) {
	if d.Background == "" {
		return colorful.Color{}, nil
	}
	c, err := colorful.Hex(d.Background)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("display.background: %w", err)
	}
	return c, nil
}

// ControlConfig holds remote trigger settings.
type ControlConfig struct {
	HTTP HTTPConfig `yaml:"http"`
	MQTT MQTTConfig `yaml:"mqtt"`
}

// HTTPConfig holds the HTTP control server settings.
type HTTPConfig struct {
	Enabled      bool     `yaml:"enabled"`
	Addr         string   `yaml:"addr"`
	AllowOrigins []string `yaml:"allow_origins"`
}

// MQTTConfig holds the MQTT command bridge settings.
type MQTTConfig struct {
	Enabled  bool   `yaml:"enabled"`
	URL      string `yaml:"url"`
	ClientID string `yaml:"client_id"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Topic    string `yaml:"topic"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Frame: FrameConfig{
			Rest: PoseConfig{
				Position: [3]float32{0, 0, -3},
			},
			Float: PoseConfig{
				Position: [3]float32{0.6, 0.35, -1.8},
				Rotation: [3]float32{-8, -20, 0},
			},
			Size: [2]float32{0, 1.2},
		},
		Animation: AnimationConfig{
			Duration: pose.DefaultDuration,
			Curve:    easing.DefaultName,
		},
		Gallery: GalleryConfig{
			Dir:            filepath.Join(DataDir(), "images"),
			Patterns:       []string{"*.jpg", "*.jpeg"},
			MaxTextureSize: 4096,
		},
		Display: DisplayConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			Background: "#1a1a26",
			FOV:        60,
		},
		Control: ControlConfig{
			HTTP: HTTPConfig{
				Enabled:      false,
				Addr:         "127.0.0.1:8740",
				AllowOrigins: []string{"*"},
			},
			MQTT: MQTTConfig{
				Enabled:  false,
				URL:      "tcp://127.0.0.1:1883",
				ClientID: "holoframe",
				Topic:    "holoframe/command",
			},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
