package config

// Presets are named starting points for common scenarios. Missing fields
// fall back to the defaults when applied.
var Presets = map[string]*Config{
	"cruise": {
		Vehicle: VehicleConfig{Mass: 400, MaxDriveForce: 4000, DragCoeff: 100},
		Loop:    LoopConfig{Dt: 0.1, Duration: 30.0, TargetSpeed: 20.0},
	},
	"sprint": {
		Vehicle: VehicleConfig{Mass: 400, MaxDriveForce: 4000, DragCoeff: 100},
		Loop:    LoopConfig{Dt: 0.1, Duration: 20.0, TargetSpeed: 35.0},
	},
	"heavy": {
		Vehicle: VehicleConfig{Mass: 1200, MaxDriveForce: 4000, DragCoeff: 100},
		Loop:    LoopConfig{Dt: 0.1, Duration: 60.0, TargetSpeed: 20.0},
	},
	"circuit": {
		Vehicle: VehicleConfig{Mass: 400, MaxDriveForce: 4000, DragCoeff: 100},
		Loop:    LoopConfig{Dt: 0.1, Duration: 120.0, TargetSpeed: 20.0},
		Track: TrackConfig{
			Enabled: true, Width: 100, Height: 60,
			CornerSpeed: 15.0, StraightSpeed: 30.0,
		},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	applied := *DefaultConfig()
	applied.Vehicle = cfg.Vehicle
	applied.Loop = cfg.Loop
	if cfg.Track.Enabled {
		applied.Track = cfg.Track
	}
	return &applied
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
