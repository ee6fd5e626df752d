package extract

import (
	"errors"

	"github.com/ashishpoonia369/EVs/core/model"
)

// Sink receives markers in emission order.
type Sink interface {
	Emit(m model.Marker) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(model.Marker) error

func (f SinkFunc) Emit(m model.Marker) error { return f(m) }

// Collector keeps every marker in memory.
type Collector struct {
	Markers []model.Marker
}

func (c *Collector) Emit(m model.Marker) error {
	c.Markers = append(c.Markers, m)
	return nil
}

// VehicleIDs returns the vehicles of the collected markers in order.
func (c *Collector) VehicleIDs() []string {
	ids := make([]string, len(c.Markers))
	for i, m := range c.Markers {
		ids[i] = m.VehicleID
	}
	return ids
}

type tee []Sink

// Tee forwards every marker to all sinks. All sinks are tried; their errors
// are joined.
func Tee(sinks ...Sink) Sink {
	return tee(sinks)
}

func (t tee) Emit(m model.Marker) error {
	var errs []error
	for _, s := range t {
		if err := s.Emit(m); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
