package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

const (
	metadataFile = "metadata.json"
	pointsFile   = "points.txt"
)

// Store archives sampling runs under baseDir, one directory per run.
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
	ID        string         `json:"id"`
	Map       string         `json:"map"`
	Timestamp time.Time      `json:"timestamp"`
	Seed      int64          `json:"seed"`
	Trials    int            `json:"trials"`
	Transient int            `json:"transient"`
	Averaging int            `json:"averaging"`
	Step      float64        `json:"derivative_step"`
	Ranges    [3][2]float64  `json:"ranges"`
	P4        float64        `json:"p4"`
	Counts    map[string]int `json:"counts"`
	Elapsed   float64        `json:"elapsed_seconds"`
}

// Save writes meta and the chaotic table of one run and returns its ID.
// meta.ID and meta.Timestamp are filled in when empty.
func (s *Store) Save(meta RunMetadata, records []Record) (string, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("%s_%d", meta.Map, meta.Timestamp.UnixNano())
	}
	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(runDir, metadataFile), data, 0644); err != nil {
		return "", err
	}
	if err := WriteTable(filepath.Join(runDir, pointsFile), records); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// List returns archived runs, oldest first. Directories without readable
// metadata are skipped.
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadPoints(runID string) ([]Record, error) {
	return ReadTable(filepath.Join(s.baseDir, runID, pointsFile))
}
