package storage

import (
	"encoding/json"
	"os"

	"github.com/pwasik/fuzzdrive/internal/drive"
)

type ExportData struct {
	ID          string             `json:"id"`
	Mode        string             `json:"mode"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	TargetSpeed float64            `json:"target_speed"`
	Steps       int                `json:"steps"`
	Samples     []drive.Sample     `json:"samples"`
	Metrics     map[string]float64 `json:"metrics"`
}

// ExportJSONStdout writes a run's full history to stdout as indented JSON.
func ExportJSONStdout(meta *RunMetadata, samples []drive.Sample, metrics map[string]float64) error {
	data := ExportData{
		ID:          meta.ID,
		Mode:        meta.Mode,
		Dt:          meta.Dt,
		Duration:    meta.Duration,
		TargetSpeed: meta.TargetSpeed,
		Steps:       len(samples),
		Samples:     samples,
		Metrics:     metrics,
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
