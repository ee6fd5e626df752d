package monitor

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashishpoonia369/EVs/core/metrics"
	"github.com/ashishpoonia369/EVs/core/model"
)

type fakeVehicle struct {
	actual, maximum string
	x, y            float64
	noBattery       bool
}

// fakeSession plays a fixed list of steps.
type fakeSession struct {
	steps   []map[string]fakeVehicle
	order   [][]string
	current int
	stepErr error
	closed  bool
}

func (f *fakeSession) add(ids []string, vehicles map[string]fakeVehicle) {
	f.order = append(f.order, ids)
	f.steps = append(f.steps, vehicles)
}

func (f *fakeSession) MinExpectedNumber() (int, error) {
	return len(f.steps) - f.current, nil
}

func (f *fakeSession) Step(context.Context) error {
	if f.stepErr != nil {
		return f.stepErr
	}
	f.current++
	return nil
}

func (f *fakeSession) Time() float64 { return float64(f.current) }

func (f *fakeSession) VehicleIDs() ([]string, error) { return f.order[f.current-1], nil }

func (f *fakeSession) Parameter(id, key string) (string, error) {
	v, ok := f.steps[f.current-1][id]
	if !ok {
		return "", ErrUnknownVehicle
	}
	if v.noBattery {
		return "", fmt.Errorf("%s: %w", id, ErrNoBattery)
	}
	if key == ParamActual {
		return v.actual, nil
	}
	return v.maximum, nil
}

func (f *fakeSession) Position(id string) (float64, float64, error) {
	v := f.steps[f.current-1][id]
	return v.x, v.y, nil
}

func (f *fakeSession) Close() error {
	f.closed = true
	return nil
}

type recordSink struct {
	metrics.NopSink
	readings [][]model.BatteryReading
	low      [][]model.LowBatteryPosition
	err      error
}

func (r *recordSink) RecordReadings(rs []model.BatteryReading) error {
	r.readings = append(r.readings, rs)
	return r.err
}

func (r *recordSink) RecordLowBattery(ps []model.LowBatteryPosition) error {
	r.low = append(r.low, ps)
	return r.err
}

func newSession() *fakeSession {
	s := &fakeSession{}
	s.add([]string{"ev1", "bus"}, map[string]fakeVehicle{
		"ev1": {actual: "80", maximum: "100", x: 1, y: 1},
		"bus": {noBattery: true},
	})
	s.add([]string{"ev1", "ev2"}, map[string]fakeVehicle{
		"ev1": {actual: "10", maximum: "100", x: 2, y: 2},
		"ev2": {actual: "5", maximum: "0", x: 9, y: 9},
	})
	s.add([]string{"ev1"}, map[string]fakeVehicle{
		"ev1": {actual: "4", maximum: "100", x: 3, y: 3},
	})
	return s
}

func TestRunBelow(t *testing.T) {
	sink := &recordSink{}
	res, err := New(Config{}, nil, sink).Run(context.Background(), newSession())
	require.NoError(t, err)

	assert.Equal(t, 3, res.Steps)
	require.Len(t, res.History, 3)
	assert.Equal(t, model.BatteryReading{VehicleID: "ev1", Time: 1, Percentage: 80}, res.History[0])
	require.Len(t, res.Positions, 2)
	assert.Equal(t, model.LowBatteryPosition{VehicleID: "ev1", Time: 2, Percentage: 10, X: 2, Y: 2}, res.Positions[0])
	assert.Equal(t, 3.0, res.Positions[1].X)

	assert.Len(t, sink.readings, 3)
	assert.Len(t, sink.low, 2)
}

func TestRunExact(t *testing.T) {
	res, err := New(Config{ThresholdPct: 10, Mode: ModeExact}, nil, nil).Run(context.Background(), newSession())
	require.NoError(t, err)
	require.Len(t, res.Positions, 1)
	assert.Equal(t, 10.0, res.Positions[0].Percentage)
}

func TestRunMaxSteps(t *testing.T) {
	res, err := New(Config{MaxSteps: 1}, nil, nil).Run(context.Background(), newSession())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Steps)
	assert.Empty(t, res.Positions)
}

func TestRunStepError(t *testing.T) {
	s := newSession()
	s.stepErr = errors.New("connection lost")
	_, err := New(Config{}, nil, nil).Run(context.Background(), s)
	assert.ErrorIs(t, err, s.stepErr)
}

func TestRunSinkErrorsAreNotFatal(t *testing.T) {
	sink := &recordSink{err: errors.New("down")}
	res, err := New(Config{}, nil, sink).Run(context.Background(), newSession())
	require.NoError(t, err)
	assert.Len(t, res.Positions, 2)
}

func TestRunInvalidNumberSkipped(t *testing.T) {
	s := &fakeSession{}
	s.add([]string{"ev1"}, map[string]fakeVehicle{"ev1": {actual: "n/a", maximum: "100"}})
	res, err := New(Config{}, nil, nil).Run(context.Background(), s)
	require.NoError(t, err)
	assert.Empty(t, res.History)
}

func TestRunNaNIsNeverLow(t *testing.T) {
	for _, mode := range []Mode{ModeBelow, ModeExact} {
		s := &fakeSession{}
		s.add([]string{"ev1", "ev2"}, map[string]fakeVehicle{
			"ev1": {actual: "NaN", maximum: "100"},
			"ev2": {actual: "5", maximum: "NaN"},
		})
		res, err := New(Config{Mode: mode}, nil, nil).Run(context.Background(), s)
		require.NoError(t, err)
		assert.Len(t, res.History, 2, mode)
		assert.Empty(t, res.Positions, mode)
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeBelow, m)
	m, err = ParseMode("exact")
	require.NoError(t, err)
	assert.Equal(t, ModeExact, m)
	_, err = ParseMode("above")
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	got := Summarize([]model.BatteryReading{
		{VehicleID: "b", Time: 0, Percentage: 50},
		{VehicleID: "a", Time: 0, Percentage: 90},
		{VehicleID: "b", Time: 1, Percentage: 30},
		{VehicleID: "b", Time: 2, Percentage: 40},
	})
	require.Len(t, got, 2)
	assert.Equal(t, Summary{VehicleID: "b", Readings: 3, Min: 30, Mean: 40, Last: 40}, got[0])
	assert.Equal(t, Summary{VehicleID: "a", Readings: 1, Min: 90, Mean: 90, Last: 90}, got[1])
	assert.Empty(t, Summarize(nil))
}
