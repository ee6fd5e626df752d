package metrics

import (
	"time"

	"github.com/ashishpoonia369/EVs/core/model"
)

// ExtractionEvent summarises one extraction run.
type ExtractionEvent struct {
	Source         string
	Records        int
	Emitted        int
	MissingField   int
	ZeroMaximum    int
	ParseErrors    int
	Duplicates     int
	AboveThreshold int
	Duration       time.Duration
	Time           time.Time
}

// Sink records evs events.
type Sink interface {
	RecordExtraction(ev ExtractionEvent) error
	RecordLowBattery(positions []model.LowBatteryPosition) error
	RecordReadings(readings []model.BatteryReading) error
}

// Flusher is implemented by sinks that buffer data until the run ends.
type Flusher interface {
	Flush() error
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordExtraction(ExtractionEvent) error            { return nil }
func (NopSink) RecordLowBattery([]model.LowBatteryPosition) error { return nil }
func (NopSink) RecordReadings([]model.BatteryReading) error       { return nil }
