package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/linalg"
	"github.com/san-kum/rigidsim/internal/sim"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
	scenarioFile   = "scenario.yaml"
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
	Scenario    string             `json:"scenario"`
	Description string             `json:"description,omitempty"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Steps       int                `json:"steps"`
	Bodies      []string           `json:"bodies"`
	Metrics     map[string]float64 `json:"metrics"`
	Errors      []string           `json:"errors,omitempty"`
}

// TrajectoryRow is one body at one instant.
type TrajectoryRow struct {
	Time float64 `csv:"time" json:"time"`
	Body string  `csv:"body" json:"body"`
	X    float64 `csv:"x" json:"x"`
	Y    float64 `csv:"y" json:"y"`
	Z    float64 `csv:"z" json:"z"`
	VX   float64 `csv:"vx" json:"vx"`
	VY   float64 `csv:"vy" json:"vy"`
	VZ   float64 `csv:"vz" json:"vz"`
}

// Rows flattens a result time-major, bodies in tracking order.
func Rows(result *sim.Result) []*TrajectoryRow {
	rows := make([]*TrajectoryRow, 0, len(result.Times)*len(result.Order))
	for i, t := range result.Times {
		for _, name := range result.Order {
			samples := result.Tracks[name]
			if i >= len(samples) {
				continue
			}
			p, v := samples[i].Position, samples[i].Velocity
			rows = append(rows, &TrajectoryRow{
				Time: t, Body: name,
				X: p[0], Y: p[1], Z: p[2],
				VX: v[0], VY: v[1], VZ: v[2],
			})
		}
	}
	return rows
}

// Tracks regroups rows by body, preserving row order.
func Tracks(rows []*TrajectoryRow) (times []float64, tracks map[string][]sim.Sample) {
	tracks = make(map[string][]sim.Sample)
	for _, r := range rows {
		if len(times) == 0 || times[len(times)-1] != r.Time {
			times = append(times, r.Time)
		}
		tracks[r.Body] = append(tracks[r.Body], sim.Sample{
			Position: linalg.Vec3{r.X, r.Y, r.Z},
			Velocity: linalg.Vec3{r.VX, r.VY, r.VZ},
		})
	}
	return times, tracks
}

func NewMetadata(id string, sc *config.Scenario, result *sim.Result) RunMetadata {
	meta := RunMetadata{
		ID:          id,
		Scenario:    sc.Name,
		Description: sc.Description,
		Timestamp:   time.Now(),
		Seed:        sc.Seed,
		Dt:          sc.Dt,
		Duration:    sc.Duration,
		Steps:       result.StepsTaken,
		Bodies:      result.Order,
		Metrics:     result.Metrics,
	}
	for _, err := range result.Errors {
		meta.Errors = append(meta.Errors, err.Error())
	}
	return meta
}

// Save writes the scenario, its metadata and its trajectory to a new run
// directory and returns the run ID.
func (s *Store) Save(sc *config.Scenario, result *sim.Result) (string, error) {
	runID, runDir, err := s.newRunDir(sc.Name)
	if err != nil {
		return "", err
	}

	meta := NewMetadata(runID, sc, result)
	if err := writeJSONFile(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	if err := config.Save(filepath.Join(runDir, scenarioFile), sc); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(runDir, trajectoryFile))
	if err != nil {
		return "", errors.Wrap(err, "creating trajectory")
	}
	defer f.Close()
	if err := WriteCSV(f, Rows(result)); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Store) newRunDir(name string) (string, string, error) {
	if err := s.Init(); err != nil {
		return "", "", errors.Wrapf(err, "creating %s", s.baseDir)
	}
	base := fmt.Sprintf("%s_%d", name, time.Now().Unix())
	runID := base
	for i := 2; ; i++ {
		runDir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			return runID, runDir, nil
		}
		if !os.IsExist(err) {
			return "", "", errors.Wrapf(err, "creating run %s", runID)
		}
		runID = fmt.Sprintf("%s_%d", base, i)
	}
}

func writeJSONFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrapf(err, "encoding %s", path)
	}
	return nil
}

// List returns every readable run, oldest first.
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

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, errors.Wrapf(err, "reading run %s", runID)
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, errors.Wrapf(err, "decoding run %s", runID)
	}
	return &meta, nil
}

func (s *Store) LoadScenario(runID string) (*config.Scenario, error) {
	return config.Load(filepath.Join(s.baseDir, runID, scenarioFile))
}

func (s *Store) LoadTrajectory(runID string) ([]*TrajectoryRow, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, errors.Wrapf(err, "opening trajectory of %s", runID)
	}
	defer f.Close()

	rows := make([]*TrajectoryRow, 0)
	if err := gocsv.Unmarshal(f, &rows); err != nil {
		return nil, errors.Wrapf(err, "decoding trajectory of %s", runID)
	}
	return rows, nil
}

func WriteCSV(w io.Writer, rows []*TrajectoryRow) error {
	if err := gocsv.Marshal(rows, w); err != nil {
		return errors.Wrap(err, "encoding trajectory")
	}
	return nil
}

// Export is the JSON document written by export-json.
type Export struct {
	Run        RunMetadata      `json:"run"`
	Trajectory []*TrajectoryRow `json:"trajectory"`
}

func WriteJSON(w io.Writer, meta RunMetadata, rows []*TrajectoryRow) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Export{Run: meta, Trajectory: rows}); err != nil {
		return errors.Wrap(err, "encoding export")
	}
	return nil
}
