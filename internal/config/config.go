package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt          = 0.1
	DefaultDuration    = 30.0
	DefaultTargetSpeed = 20.0
)

type Config struct {
	Vehicle    VehicleConfig    `yaml:"vehicle"`
	Loop       LoopConfig       `yaml:"loop"`
	Controller ControllerConfig `yaml:"controller"`
	Track      TrackConfig      `yaml:"track"`
}

type VehicleConfig struct {
	Mass          float64 `yaml:"mass"`
	MaxDriveForce float64 `yaml:"max_drive_force"`
	DragCoeff     float64 `yaml:"drag_coeff"`
	InitPosition  float64 `yaml:"init_position"`
	InitSpeed     float64 `yaml:"init_speed"`
}

type LoopConfig struct {
	Dt          float64 `yaml:"dt"`
	Duration    float64 `yaml:"duration"`
	TargetSpeed float64 `yaml:"target_speed"`
}

type ControllerConfig struct {
	Mode           string  `yaml:"mode"` // fuzzy or manual
	Resolution     float64 `yaml:"resolution"`
	ManualThrottle float64 `yaml:"manual_throttle"`
}

type TrackConfig struct {
	Enabled       bool    `yaml:"enabled"`
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	CornerSpeed   float64 `yaml:"corner_speed"`
	StraightSpeed float64 `yaml:"straight_speed"`
}

func DefaultConfig() *Config {
	return &Config{
		Vehicle: VehicleConfig{
			Mass:          400.0,
			MaxDriveForce: 4000.0,
			DragCoeff:     100.0,
		},
		Loop: LoopConfig{
			Dt:          DefaultDt,
			Duration:    DefaultDuration,
			TargetSpeed: DefaultTargetSpeed,
		},
		Controller: ControllerConfig{
			Mode:           "fuzzy",
			Resolution:     0.5,
			ManualThrottle: 50.0,
		},
		Track: TrackConfig{
			Enabled:       false,
			Width:         100.0,
			Height:        60.0,
			CornerSpeed:   15.0,
			StraightSpeed: 30.0,
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
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
