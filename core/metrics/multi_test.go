package metrics

import (
	"errors"
	"testing"

	"github.com/ashishpoonia369/EVs/core/model"
)

type recordSink struct {
	count   int
	flushed bool
	err     error
}

func (r *recordSink) RecordExtraction(ExtractionEvent) error {
	r.count++
	return r.err
}

func (r *recordSink) RecordLowBattery([]model.LowBatteryPosition) error {
	r.count++
	return r.err
}

func (r *recordSink) RecordReadings([]model.BatteryReading) error {
	r.count++
	return r.err
}

func (r *recordSink) Flush() error {
	r.flushed = true
	return nil
}

func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &recordSink{}
	m := NewMultiSink(s1, NopSink{}, s2)
	if err := m.RecordExtraction(ExtractionEvent{}); err != nil {
		t.Fatalf("record extraction: %v", err)
	}
	if err := m.RecordLowBattery(nil); err != nil {
		t.Fatalf("record low battery: %v", err)
	}
	if err := m.RecordReadings(nil); err != nil {
		t.Fatalf("record readings: %v", err)
	}
	if s1.count != 3 || s2.count != 3 {
		t.Fatalf("events not forwarded")
	}
	if err := Flush(m); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if !s1.flushed || !s2.flushed {
		t.Fatalf("flush not forwarded")
	}
}

func TestMultiSinkKeepsGoingOnError(t *testing.T) {
	boom := errors.New("boom")
	s1 := &recordSink{err: boom}
	s2 := &recordSink{}
	err := NewMultiSink(s1, s2).RecordExtraction(ExtractionEvent{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error, got %v", err)
	}
	if s2.count != 1 {
		t.Fatalf("second sink skipped")
	}
}
