// Package storage persists simulation runs: one directory per run holding
// metadata.json and the per-tick history as history.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pwasik/fuzzdrive/internal/drive"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Timestamp   time.Time          `json:"timestamp"`
	Mode        string             `json:"mode"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	TargetSpeed float64            `json:"target_speed"`
	Track       bool               `json:"track"`
	Metrics     map[string]float64 `json:"metrics"`
}

var historyHeader = []string{"time", "position", "speed", "acceleration", "target", "speed_error", "throttle"}

func (s *Store) Save(mode string, dt, duration, targetSpeed float64, track bool, result *drive.Result) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Timestamp:   time.Now(),
		Mode:        mode,
		Dt:          dt,
		Duration:    duration,
		TargetSpeed: targetSpeed,
		Track:       track,
		Metrics:     result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "history.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(historyHeader); err != nil {
		return "", err
	}

	for _, smp := range result.Samples {
		row := []string{
			fmtFloat(smp.Time),
			fmtFloat(smp.Position),
			fmtFloat(smp.Speed),
			fmtFloat(smp.Acceleration),
			fmtFloat(smp.Target),
			fmtFloat(smp.SpeedError),
			fmtFloat(smp.Throttle),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadHistory reads a run's per-tick samples back from history.csv.
func (s *Store) LoadHistory(runID string) ([]drive.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "history.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []drive.Sample{}, nil
	}

	samples := make([]drive.Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < len(historyHeader) {
			continue
		}
		vals := make([]float64, len(historyHeader))
		ok := true
		for i := range vals {
			v, err := strconv.ParseFloat(record[i], 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}
		samples = append(samples, drive.Sample{
			Time:         vals[0],
			Position:     vals[1],
			Speed:        vals[2],
			Acceleration: vals[3],
			Target:       vals[4],
			SpeedError:   vals[5],
			Throttle:     vals[6],
		})
	}

	return samples, nil
}
