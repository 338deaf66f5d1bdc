package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/animsim/internal/particles"
	"github.com/san-kum/animsim/internal/sim"
)

const (
	KindParticles = "particles"
	KindCurve     = "curve"

	metadataFile  = "metadata.json"
	framesFile    = "frames.csv"
	particlesFile = "particles.csv"
	curveFile     = "curve.csv"
)

var ErrWrongKind = errors.New("storage: run holds a different kind of data")

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
	ID         string             `json:"id"`
	Kind       string             `json:"kind"`
	Name       string             `json:"name"`
	Timestamp  time.Time          `json:"timestamp"`
	Dt         float64            `json:"dt,omitempty"`
	Duration   float64            `json:"duration,omitempty"`
	Integrator string             `json:"integrator,omitempty"`
	Collision  string             `json:"collision,omitempty"`
	Evaluator  string             `json:"evaluator,omitempty"`
	Density    int                `json:"density,omitempty"`
	Steps      int                `json:"steps"`
	Stats      particles.Stats    `json:"stats"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
}

// RunInfo describes the scene a particle result came from.
type RunInfo struct {
	Name       string
	Dt         float64
	Duration   float64
	Integrator string
	Collision  string
}

// Frames is the per-frame series stored in frames.csv.
type Frames struct {
	Times     []float64
	Counts    []int
	Energies  []float64
	MaxSpeeds []float64
}

func format(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// newRunDir creates a fresh directory for name, suffixing the id if a run
// with the same timestamp already exists.
func (s *Store) newRunDir(name string, now time.Time) (string, string, error) {
	if err := s.Init(); err != nil {
		return "", "", err
	}
	base := fmt.Sprintf("%s_%s", name, now.Format("20060102-150405"))
	id := base
	for i := 2; ; i++ {
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return id, dir, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
		id = fmt.Sprintf("%s_%d", base, i)
	}
}

func writeMetadata(dir string, meta RunMetadata) error {
	f, err := os.Create(filepath.Join(dir, metadataFile))
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeCSV(path string, header []string, rows func(w *csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := rows(w); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// SaveRun stores a particle run: metadata, the per-frame series and the
// final particle pool.
func (s *Store) SaveRun(info RunInfo, result *sim.Result) (string, error) {
	now := time.Now()
	runID, runDir, err := s.newRunDir(info.Name, now)
	if err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Kind:       KindParticles,
		Name:       info.Name,
		Timestamp:  now,
		Dt:         info.Dt,
		Duration:   info.Duration,
		Integrator: info.Integrator,
		Collision:  info.Collision,
		Steps:      result.StepsTaken,
		Stats:      result.Stats,
		Metrics:    result.Metrics,
	}
	if err := writeMetadata(runDir, meta); err != nil {
		return "", err
	}

	err = writeCSV(filepath.Join(runDir, framesFile),
		[]string{"time", "count", "kinetic_energy", "max_speed"},
		func(w *csv.Writer) error {
			for i := range result.Times {
				row := []string{
					format(result.Times[i]),
					strconv.Itoa(result.Counts[i]),
					format(result.Energies[i]),
					format(result.MaxSpeeds[i]),
				}
				if err := w.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	if err != nil {
		return "", err
	}

	err = writeCSV(filepath.Join(runDir, particlesFile),
		[]string{"mass", "px", "py", "pz", "vx", "vy", "vz"},
		func(w *csv.Writer) error {
			for _, p := range result.Final {
				row := []string{format(p.Mass)}
				for _, v := range p.Position {
					row = append(row, format(v))
				}
				for _, v := range p.Velocity {
					row = append(row, format(v))
				}
				if err := w.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	if err != nil {
		return "", err
	}

	return runID, nil
}

// SaveCurve stores a sampled curve.
func (s *Store) SaveCurve(name, evaluator string, density int, samples []mgl64.Vec2) (string, error) {
	now := time.Now()
	runID, runDir, err := s.newRunDir(name, now)
	if err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Kind:      KindCurve,
		Name:      name,
		Timestamp: now,
		Evaluator: evaluator,
		Density:   density,
		Steps:     len(samples),
	}
	if err := writeMetadata(runDir, meta); err != nil {
		return "", err
	}

	err = writeCSV(filepath.Join(runDir, curveFile), []string{"x", "y"}, func(w *csv.Writer) error {
		for _, p := range samples {
			if err := w.Write([]string{format(p.X()), format(p.Y())}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return runID, nil
}

// List returns every stored run, oldest first.
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
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) readRecords(runID, kind, name string) ([][]float64, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	if meta.Kind != kind {
		return nil, fmt.Errorf("%w: %s is a %s run", ErrWrongKind, runID, meta.Kind)
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, name))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	if _, err := r.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return [][]float64{}, nil
		}
		return nil, err
	}

	rows := make([][]float64, 0)
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		row := make([]float64, 0, len(record))
		for _, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", name, len(rows)+2, err)
			}
			row = append(row, v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *Store) LoadFrames(runID string) (*Frames, error) {
	rows, err := s.readRecords(runID, KindParticles, framesFile)
	if err != nil {
		return nil, err
	}

	f := &Frames{
		Times:     make([]float64, 0, len(rows)),
		Counts:    make([]int, 0, len(rows)),
		Energies:  make([]float64, 0, len(rows)),
		MaxSpeeds: make([]float64, 0, len(rows)),
	}
	for _, row := range rows {
		if len(row) < 4 {
			continue
		}
		f.Times = append(f.Times, row[0])
		f.Counts = append(f.Counts, int(row[1]))
		f.Energies = append(f.Energies, row[2])
		f.MaxSpeeds = append(f.MaxSpeeds, row[3])
	}
	return f, nil
}

func (s *Store) LoadParticles(runID string) ([]particles.Particle, error) {
	rows, err := s.readRecords(runID, KindParticles, particlesFile)
	if err != nil {
		return nil, err
	}

	out := make([]particles.Particle, 0, len(rows))
	for _, row := range rows {
		if len(row) < 7 {
			continue
		}
		out = append(out, particles.Particle{
			Mass:     row[0],
			Position: mgl64.Vec3{row[1], row[2], row[3]},
			Velocity: mgl64.Vec3{row[4], row[5], row[6]},
		})
	}
	return out, nil
}

func (s *Store) LoadCurve(runID string) ([]mgl64.Vec2, error) {
	rows, err := s.readRecords(runID, KindCurve, curveFile)
	if err != nil {
		return nil, err
	}

	out := make([]mgl64.Vec2, 0, len(rows))
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		out = append(out, mgl64.Vec2{row[0], row[1]})
	}
	return out, nil
}
