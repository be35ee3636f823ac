// Package storage persists finished runs: metadata plus the aggregated
// window samples. Particle state is never written; the simulation is
// ephemeral by design.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/membrane/internal/experiment"
	"github.com/san-kum/membrane/internal/osmo"
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
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Params    osmo.Params        `json:"params"`
	Capacity  int                `json:"capacity"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Seed      int64              `json:"seed"`
	Window    float64            `json:"window"`
	Regime    string             `json:"regime"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes one run directory: metadata.json and samples.csv.
func (s *Store) Save(cfg experiment.Config, regime string, result *experiment.Result) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Params:    cfg.Params.Clamped(),
		Capacity:  cfg.Capacity,
		Dt:        cfg.Dt,
		Duration:  cfg.Duration,
		Seed:      cfg.Seed,
		Window:    cfg.Window,
		Regime:    regime,
		Metrics:   result.Metrics,
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

	csvFile, err := os.Create(filepath.Join(runDir, "samples.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := gocsv.Marshal(result.Samples, csvFile); err != nil {
		return "", fmt.Errorf("writing samples: %w", err)
	}

	return runID, nil
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

func (s *Store) LoadSamples(runID string) ([]experiment.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	samples := make([]experiment.Sample, 0)
	if err := gocsv.Unmarshal(file, &samples); err != nil {
		return nil, fmt.Errorf("reading samples: %w", err)
	}

	return samples, nil
}
