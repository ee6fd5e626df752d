package sumo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ashishpoonia369/EVs/core/monitor"
)

// ReplaySession plays back a battery-output document one <timestep> at a
// time. It implements monitor.Session so recorded runs can be analysed
// without a live simulator. Only the current timestep is held in memory.
type ReplaySession struct {
	reader  *BatteryReader
	closer  io.Closer
	pending *BatteryRecord
	done    bool

	time     float64
	ids      []string
	vehicles map[string]BatteryRecord
}

// NewReplaySession replays r. closer, if non nil, is closed by Close.
func NewReplaySession(r io.Reader, closer io.Closer) *ReplaySession {
	return &ReplaySession{reader: NewBatteryReader(r), closer: closer}
}

// OpenReplay opens path (optionally gzipped) for replay.
func OpenReplay(path string) (*ReplaySession, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	return NewReplaySession(rc, rc), nil
}

func (s *ReplaySession) peek() (*BatteryRecord, error) {
	if s.pending != nil || s.done {
		return s.pending, nil
	}
	rec, err := s.reader.NextRecord()
	if errors.Is(err, io.EOF) {
		s.done = true
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.pending = &rec
	return s.pending, nil
}

// MinExpectedNumber returns 1 while unplayed timesteps remain and 0 after.
func (s *ReplaySession) MinExpectedNumber() (int, error) {
	rec, err := s.peek()
	if err != nil {
		return 0, err
	}
	if rec == nil {
		return 0, nil
	}
	return 1, nil
}

// Step loads the vehicles of the next timestep.
func (s *ReplaySession) Step(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	first, err := s.peek()
	if err != nil {
		return err
	}
	s.ids = s.ids[:0]
	s.vehicles = make(map[string]BatteryRecord)
	if first == nil {
		return nil
	}
	step := first.Step
	s.time = first.Time
	for {
		rec, err := s.peek()
		if err != nil {
			return err
		}
		if rec == nil || rec.Step != step {
			return nil
		}
		s.pending = nil
		id, ok := rec.Get(AttrID)
		if !ok {
			continue
		}
		if _, dup := s.vehicles[id]; !dup {
			s.ids = append(s.ids, id)
		}
		s.vehicles[id] = *rec
	}
}

// Time returns the time of the loaded timestep.
func (s *ReplaySession) Time() float64 { return s.time }

// VehicleIDs lists the vehicles of the loaded timestep in document order.
func (s *ReplaySession) VehicleIDs() ([]string, error) {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out, nil
}

// Parameter serves "device.battery.<attribute>" keys from the record.
func (s *ReplaySession) Parameter(id, key string) (string, error) {
	rec, ok := s.vehicles[id]
	if !ok {
		return "", fmt.Errorf("vehicle %s: %w", id, monitor.ErrUnknownVehicle)
	}
	name, ok := strings.CutPrefix(key, monitor.BatteryParamPrefix)
	if !ok {
		return "", fmt.Errorf("parameter %s not recorded", key)
	}
	v, ok := rec.Get(name)
	if !ok {
		return "", fmt.Errorf("vehicle %s: %w", id, monitor.ErrNoBattery)
	}
	return v, nil
}

// Position returns the recorded x/y of the vehicle.
func (s *ReplaySession) Position(id string) (float64, float64, error) {
	rec, ok := s.vehicles[id]
	if !ok {
		return 0, 0, fmt.Errorf("vehicle %s: %w", id, monitor.ErrUnknownVehicle)
	}
	var xy [2]float64
	for i, name := range []string{AttrX, AttrY} {
		v, ok := rec.Get(name)
		if !ok {
			return 0, 0, fmt.Errorf("vehicle %s: no position", id)
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("vehicle %s: position %s: %w", id, name, err)
		}
		xy[i] = f
	}
	return xy[0], xy[1], nil
}

// Close releases the underlying file.
func (s *ReplaySession) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
