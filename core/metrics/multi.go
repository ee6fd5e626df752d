package metrics

import (
	"errors"

	"github.com/ashishpoonia369/EVs/core/model"
)

// MultiSink fans out events to several sinks. Every sink receives the event
// even if an earlier one fails; errors are joined.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

func (m *MultiSink) RecordExtraction(ev ExtractionEvent) error {
	return m.each(func(s Sink) error { return s.RecordExtraction(ev) })
}

func (m *MultiSink) RecordLowBattery(p []model.LowBatteryPosition) error {
	return m.each(func(s Sink) error { return s.RecordLowBattery(p) })
}

func (m *MultiSink) RecordReadings(r []model.BatteryReading) error {
	return m.each(func(s Sink) error { return s.RecordReadings(r) })
}

// Flush flushes every sink implementing Flusher.
func (m *MultiSink) Flush() error {
	return m.each(func(s Sink) error {
		if f, ok := s.(Flusher); ok {
			return f.Flush()
		}
		return nil
	})
}

func (m *MultiSink) each(fn func(Sink) error) error {
	var errs []error
	for _, s := range m.Sinks {
		if err := fn(s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Flush flushes s when it implements Flusher.
func Flush(s Sink) error {
	if f, ok := s.(Flusher); ok {
		return f.Flush()
	}
	return nil
}
