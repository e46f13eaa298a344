package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/linalg"
	"github.com/san-kum/rigidsim/internal/sim"
)

func sampleResult() *sim.Result {
	return &sim.Result{
		Times: []float64{0, 0.5},
		Order: []string{"a", "b"},
		Tracks: map[string][]sim.Sample{
			"a": {
				{Position: linalg.Vec3{0, 1, 0}, Velocity: linalg.Vec3{0, 0, 0}},
				{Position: linalg.Vec3{0, 0.875, 0}, Velocity: linalg.Vec3{0, -0.5, 0}},
			},
			"b": {
				{Position: linalg.Vec3{2, 0, 0.25}, Velocity: linalg.Vec3{1, 0, 0}},
				{Position: linalg.Vec3{2.5, 0, 0.25}, Velocity: linalg.Vec3{1, 0, 0}},
			},
		},
		Metrics:    map[string]float64{"energy": 4.5},
		StepsTaken: 1,
		Errors:     []error{sim.SimError{Step: 1, Time: 0.5, Message: "bad"}},
	}
}

func TestRows(t *testing.T) {
	rows := Rows(sampleResult())
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}

	want := []struct {
		time float64
		body string
	}{{0, "a"}, {0, "b"}, {0.5, "a"}, {0.5, "b"}}
	for i, w := range want {
		if rows[i].Time != w.time || rows[i].Body != w.body {
			t.Errorf("row %d: got (%f, %s), want (%f, %s)", i, rows[i].Time, rows[i].Body, w.time, w.body)
		}
	}
	if rows[2].Y != 0.875 || rows[2].VY != -0.5 {
		t.Errorf("row 2 lost values: %+v", rows[2])
	}
}

func TestTracks(t *testing.T) {
	times, tracks := Tracks(Rows(sampleResult()))
	if len(times) != 2 || times[1] != 0.5 {
		t.Errorf("unexpected times %v", times)
	}
	if len(tracks["b"]) != 2 || tracks["b"][1].Position != (linalg.Vec3{2.5, 0, 0.25}) {
		t.Errorf("unexpected track b %v", tracks["b"])
	}
}

func TestSaveLoad(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "runs"))
	sc := config.GetPreset("rod")

	id, err := store.Save(sc, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(id, "rod_") {
		t.Errorf("unexpected run id %s", id)
	}

	meta, err := store.Load(id)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Scenario != "rod" || meta.Steps != 1 || meta.Metrics["energy"] != 4.5 {
		t.Errorf("metadata mismatch: %+v", meta)
	}
	if len(meta.Errors) != 1 || !strings.Contains(meta.Errors[0], "bad") {
		t.Errorf("errors not recorded: %v", meta.Errors)
	}

	rows, err := store.LoadTrajectory(id)
	if err != nil {
		t.Fatalf("load trajectory failed: %v", err)
	}
	orig := Rows(sampleResult())
	if len(rows) != len(orig) {
		t.Fatalf("expected %d rows, got %d", len(orig), len(rows))
	}
	for i := range orig {
		if *rows[i] != *orig[i] {
			t.Errorf("row %d: got %+v, want %+v", i, rows[i], orig[i])
		}
	}

	loaded, err := store.LoadScenario(id)
	if err != nil {
		t.Fatalf("load scenario failed: %v", err)
	}
	if loaded.Name != "rod" || len(loaded.Contacts) != 1 {
		t.Errorf("scenario mismatch: %+v", loaded)
	}
}

func TestSaveUniqueIDs(t *testing.T) {
	store := New(t.TempDir())
	sc := config.GetPreset("bounce")

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		id, err := store.Save(sc, sampleResult())
		if err != nil {
			t.Fatal(err)
		}
		if seen[id] {
			t.Fatalf("duplicate run id %s", id)
		}
		seen[id] = true
	}

	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 {
		t.Errorf("expected 3 runs, got %d", len(runs))
	}
}

func TestListSkipsBrokenRuns(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)
	if _, err := store.Save(config.GetPreset("bounce"), sampleResult()); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "broken"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken", "metadata.json"), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}

	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestListMissingDir(t *testing.T) {
	runs, err := New(filepath.Join(t.TempDir(), "nope")).List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected empty list, got %v, %v", runs, err)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := New(t.TempDir()).Load("ghost")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, Rows(sampleResult())); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "time,body,x,y,z,vx,vy,vz" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if len(lines) != 5 {
		t.Errorf("expected 5 lines, got %d", len(lines))
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	meta := NewMetadata("x", config.GetPreset("rod"), sampleResult())
	if err := WriteJSON(&buf, meta, Rows(sampleResult())); err != nil {
		t.Fatal(err)
	}

	var out Export
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if out.Run.ID != "x" || len(out.Trajectory) != 4 {
		t.Errorf("unexpected export %+v", out)
	}
}
