package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/animsim/internal/sim"
)

type ExportData struct {
	Name       string             `json:"name"`
	Integrator string             `json:"integrator"`
	Collision  string             `json:"collision"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Steps      int                `json:"steps"`
	Times      []float64          `json:"times"`
	Counts     []int              `json:"counts"`
	Energies   []float64          `json:"kinetic_energy"`
	MaxSpeeds  []float64          `json:"max_speed"`
	Final      [][]float64        `json:"final"`
	Metrics    map[string]float64 `json:"metrics"`
}

// ExportJSON writes a run as a single JSON document. Final particles are
// flattened to [mass, px, py, pz, vx, vy, vz].
func ExportJSON(w io.Writer, info RunInfo, result *sim.Result) error {
	data := ExportData{
		Name:       info.Name,
		Integrator: info.Integrator,
		Collision:  info.Collision,
		Dt:         info.Dt,
		Duration:   info.Duration,
		Steps:      result.StepsTaken,
		Times:      result.Times,
		Counts:     result.Counts,
		Energies:   result.Energies,
		MaxSpeeds:  result.MaxSpeeds,
		Final:      make([][]float64, len(result.Final)),
		Metrics:    result.Metrics,
	}

	for i, p := range result.Final {
		data.Final[i] = []float64{
			p.Mass,
			p.Position.X(), p.Position.Y(), p.Position.Z(),
			p.Velocity.X(), p.Velocity.Y(), p.Velocity.Z(),
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
