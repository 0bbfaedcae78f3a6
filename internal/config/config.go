package config

import (
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/armrig/internal/animate"
	"github.com/san-kum/armrig/internal/interact"
	"github.com/san-kum/armrig/internal/pointer"
	"github.com/san-kum/armrig/internal/rig"
)

const (
	DefaultSmoothing    = 0.1
	DefaultEpsilon      = 1e-6
	DefaultSettle       = 1e-9
	DefaultFOV          = 50.0
	DefaultAspect       = 16.0 / 9.0
	DefaultShoulderDeg  = 90.0
	DefaultElbowDeg     = 60.0
	DefaultBoneLength   = 2.0
	DefaultHandleRadius = 0.2
)

type Config struct {
	Rotator    string       `yaml:"rotator"`
	Constraint string       `yaml:"constraint"`
	Policy     string       `yaml:"press_policy"`
	Smoothing  float64      `yaml:"smoothing"`
	Epsilon    float64      `yaml:"epsilon"`
	Settle     float64      `yaml:"settle_epsilon"`
	Arm        ArmConfig    `yaml:"arm"`
	Camera     CameraConfig `yaml:"camera"`
	Limits     LimitsConfig `yaml:"limits"`
}

type ArmConfig struct {
	Base         [3]float64 `yaml:"base"`
	UpperLength  float64    `yaml:"upper_length"`
	LowerLength  float64    `yaml:"lower_length"`
	HandleRadius float64    `yaml:"handle_radius"`
}

type CameraConfig struct {
	Position [3]float64 `yaml:"position"`
	Target   [3]float64 `yaml:"target"`
	FOV      float64    `yaml:"fov"`
	Aspect   float64    `yaml:"aspect"`
}

// LimitsConfig holds symmetric swing limits in degrees.
type LimitsConfig struct {
	Shoulder float64 `yaml:"shoulder"`
	Elbow    float64 `yaml:"elbow"`
}

func DefaultConfig() *Config {
	return &Config{
		Rotator:    animate.KindRaycast,
		Constraint: string(rig.ConstraintEuler),
		Policy:     "switch",
		Smoothing:  DefaultSmoothing,
		Epsilon:    DefaultEpsilon,
		Settle:     DefaultSettle,
		Arm: ArmConfig{
			Base:         [3]float64{0, -1, 0},
			UpperLength:  DefaultBoneLength,
			LowerLength:  DefaultBoneLength,
			HandleRadius: DefaultHandleRadius,
		},
		Camera: CameraConfig{
			Position: [3]float64{4, 4, 4},
			FOV:      DefaultFOV,
			Aspect:   DefaultAspect,
		},
		Limits: LimitsConfig{
			Shoulder: DefaultShoulderDeg,
			Elbow:    DefaultElbowDeg,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Encode(f, cfg)
}

// Encode writes cfg as YAML.
func Encode(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

func (c *Config) Validate() error {
	if _, err := rig.ParseConstraintMode(c.Constraint); err != nil {
		return err
	}
	if _, err := interact.ParsePressPolicy(c.Policy); err != nil {
		return err
	}
	switch c.Rotator {
	case "", animate.KindRaycast, animate.KindDelta:
	default:
		return fmt.Errorf("unknown rotator %q", c.Rotator)
	}
	if err := c.Settings().Validate(); err != nil {
		return err
	}
	if c.Arm.UpperLength <= 0 || c.Arm.LowerLength <= 0 {
		return fmt.Errorf("bone lengths must be positive, got %f and %f", c.Arm.UpperLength, c.Arm.LowerLength)
	}
	if c.Arm.HandleRadius <= 0 {
		return fmt.Errorf("handle radius must be positive, got %f", c.Arm.HandleRadius)
	}
	if c.Limits.Shoulder < 0 || c.Limits.Shoulder > 180 || c.Limits.Elbow < 0 || c.Limits.Elbow > 180 {
		return fmt.Errorf("limits must be within [0, 180] degrees, got shoulder=%f elbow=%f", c.Limits.Shoulder, c.Limits.Elbow)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		return fmt.Errorf("camera fov must be in (0, 180), got %f", c.Camera.FOV)
	}
	if vec(c.Camera.Position).Sub(vec(c.Camera.Target)).Len() == 0 {
		return fmt.Errorf("camera position and target coincide")
	}
	return nil
}

func vec(a [3]float64) mgl64.Vec3 { return mgl64.Vec3{a[0], a[1], a[2]} }

// Dimensions returns the arm layout described by the config.
func (c *Config) Dimensions() rig.Dimensions {
	mode, _ := rig.ParseConstraintMode(c.Constraint)
	return rig.Dimensions{
		Base:         vec(c.Arm.Base),
		UpperLength:  c.Arm.UpperLength,
		LowerLength:  c.Arm.LowerLength,
		ShoulderDeg:  c.Limits.Shoulder,
		ElbowDeg:     c.Limits.Elbow,
		Constraint:   mode,
		HandleRadius: c.Arm.HandleRadius,
	}
}

func (c *Config) Settings() animate.Settings {
	policy, _ := interact.ParsePressPolicy(c.Policy)
	return animate.Settings{
		Smoothing:       c.Smoothing,
		ParallelEpsilon: c.Epsilon,
		SettleEpsilon:   c.Settle,
		Policy:          policy,
	}
}

func (c *Config) NewCamera() pointer.Camera {
	return pointer.NewCamera(vec(c.Camera.Position), vec(c.Camera.Target), c.Camera.FOV, c.Camera.Aspect)
}

// NewRotator builds the arm and the configured rotator around it.
func (c *Config) NewRotator() (animate.Rotator, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return animate.NewRotator(c.Rotator, rig.NewTwoBone(c.Dimensions()), c.Settings())
}
