package monitor

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ashishpoonia369/EVs/core/model"
)

// Summary aggregates the battery history of one vehicle.
type Summary struct {
	VehicleID string
	Readings  int
	Min       float64
	Mean      float64
	Last      float64
}

// Summarize groups history by vehicle, in first-seen order.
func Summarize(history []model.BatteryReading) []Summary {
	var order []string
	series := make(map[string][]float64)
	for _, r := range history {
		if _, ok := series[r.VehicleID]; !ok {
			order = append(order, r.VehicleID)
		}
		series[r.VehicleID] = append(series[r.VehicleID], r.Percentage)
	}
	out := make([]Summary, 0, len(order))
	for _, id := range order {
		vals := series[id]
		out = append(out, Summary{
			VehicleID: id,
			Readings:  len(vals),
			Min:       floats.Min(vals),
			Mean:      stat.Mean(vals, nil),
			Last:      vals[len(vals)-1],
		})
	}
	return out
}
