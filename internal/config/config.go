// Package config handles meadow configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-meadow/engine/character"
)

// Config holds all settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Physics  PhysicsConfig  `yaml:"physics"`
	Shaders  ShadersConfig  `yaml:"shaders"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds window and rendering settings.
type GraphicsConfig struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	Title         string  `yaml:"title"`
	VSync         bool    `yaml:"vsync"`
	FPSLimit      float64 `yaml:"fps_limit"`
	ForceSoftware bool    `yaml:"force_software"`
	DepthBuffer   bool    `yaml:"depth_buffer"`
}

// CameraConfig holds orbit camera and look settings.
type CameraConfig struct {
	Distance        float32 `yaml:"distance"`
	HeightOffset    float32 `yaml:"height_offset"`
	FovDegrees      float32 `yaml:"fov_degrees"`
	Near            float32 `yaml:"near"`
	Far             float32 `yaml:"far"`
	LookSensitivity float32 `yaml:"look_sensitivity"`
}

// PhysicsConfig holds character controller tuning.
type PhysicsConfig struct {
	Gravity        float32 `yaml:"gravity"`
	RunSpeed       float32 `yaml:"run_speed"`
	JumpVelocity   float32 `yaml:"jump_velocity"`
	GroundY        float32 `yaml:"ground_y"`
	AirPolicy      string  `yaml:"air_policy"`
	AirSpeedFactor float32 `yaml:"air_speed_factor"`
}

// ShadersConfig holds optional WGSL overrides. Empty paths use the embedded programs.
type ShadersConfig struct {
	Sky string `yaml:"sky"`
	Lit string `yaml:"lit"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the stock meadow values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:  1280,
			Height: 720,
			Title:  "Meadow",
			VSync:  true,
		},
		Camera: CameraConfig{
			Distance:        6,
			HeightOffset:    0.9,
			FovDegrees:      50,
			Near:            0.05,
			Far:             500,
			LookSensitivity: 0.006,
		},
		Physics: PhysicsConfig{
			Gravity:        -18,
			RunSpeed:       5,
			JumpVelocity:   7.5,
			GroundY:        1,
			AirPolicy:      character.AirPolicyMomentumLock.String(),
			AirSpeedFactor: 0.6,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports every setting that cannot be used.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Graphics.FPSLimit < 0 {
		errs = append(errs, fmt.Errorf("graphics: fps_limit %v must not be negative", c.Graphics.FPSLimit))
	}
	if c.Camera.Distance <= 0 {
		errs = append(errs, fmt.Errorf("camera: distance %v must be positive", c.Camera.Distance))
	}
	if c.Camera.FovDegrees <= 0 || c.Camera.FovDegrees >= 180 {
		errs = append(errs, fmt.Errorf("camera: fov_degrees %v must be in (0, 180)", c.Camera.FovDegrees))
	}
	if c.Camera.Near <= 0 {
		errs = append(errs, fmt.Errorf("camera: near %v must be positive", c.Camera.Near))
	}
	if c.Camera.Near >= c.Camera.Far {
		errs = append(errs, fmt.Errorf("camera: near %v must be less than far %v", c.Camera.Near, c.Camera.Far))
	}
	if c.Physics.RunSpeed <= 0 {
		errs = append(errs, fmt.Errorf("physics: run_speed %v must be positive", c.Physics.RunSpeed))
	}
	if _, ok := character.ParseAirPolicy(c.Physics.AirPolicy); !ok {
		errs = append(errs, fmt.Errorf("physics: unknown air_policy %q", c.Physics.AirPolicy))
	}
	return errors.Join(errs...)
}

// CharacterOptions converts the physics section into character options.
func (c *Config) CharacterOptions() []character.CharacterBuilderOption {
	policy, _ := character.ParseAirPolicy(c.Physics.AirPolicy)
	return []character.CharacterBuilderOption{
		character.WithGravity(c.Physics.Gravity),
		character.WithRunSpeed(c.Physics.RunSpeed),
		character.WithJumpVelocity(c.Physics.JumpVelocity),
		character.WithGroundY(c.Physics.GroundY),
		character.WithAirPolicy(policy, c.Physics.AirSpeedFactor),
	}
}
