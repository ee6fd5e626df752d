package monitor

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ashishpoonia369/EVs/core/logger"
	"github.com/ashishpoonia369/EVs/core/metrics"
	"github.com/ashishpoonia369/EVs/core/model"
)

// Mode selects which observations are recorded as low-battery positions.
type Mode string

const (
	// ModeBelow records every observation at or below the threshold.
	ModeBelow Mode = "below"
	// ModeExact records observations exactly at the threshold.
	ModeExact Mode = "exact"
)

// ParseMode validates a mode name. Empty selects ModeBelow.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeBelow:
		return ModeBelow, nil
	case ModeExact:
		return ModeExact, nil
	}
	return "", fmt.Errorf("unknown monitor mode %q", s)
}

// Config configures a Monitor.
type Config struct {
	ThresholdPct float64 // percentage, default 10
	Mode         Mode
	// MaxSteps stops the run after this many steps when > 0.
	MaxSteps int
}

// Result holds everything recorded during a run.
type Result struct {
	Steps     int
	Positions []model.LowBatteryPosition
	History   []model.BatteryReading
}

// Monitor records battery levels while stepping a session.
type Monitor struct {
	cfg  Config
	log  logger.Logger
	sink metrics.Sink
}

// New returns a Monitor. Nil log and sink are replaced by no-ops.
func New(cfg Config, log logger.Logger, sink metrics.Sink) *Monitor {
	if cfg.ThresholdPct == 0 {
		cfg.ThresholdPct = 10
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeBelow
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Monitor{cfg: cfg, log: logger.OrNop(log), sink: sink}
}

// Run steps s until no vehicle is expected anymore, ctx is done or MaxSteps
// is reached. Vehicles without a battery device, or with a zero maximum
// capacity, are skipped for that step.
func (m *Monitor) Run(ctx context.Context, s Session) (Result, error) {
	var res Result
	for {
		if m.cfg.MaxSteps > 0 && res.Steps >= m.cfg.MaxSteps {
			return res, nil
		}
		n, err := s.MinExpectedNumber()
		if err != nil {
			return res, fmt.Errorf("expected vehicles: %w", err)
		}
		if n <= 0 {
			return res, nil
		}
		if err := s.Step(ctx); err != nil {
			return res, fmt.Errorf("simulation step: %w", err)
		}
		res.Steps++
		now := s.Time()
		ids, err := s.VehicleIDs()
		if err != nil {
			return res, fmt.Errorf("vehicle ids: %w", err)
		}
		var readings []model.BatteryReading
		var low []model.LowBatteryPosition
		for _, id := range ids {
			pct, ok := m.percentage(s, id)
			if !ok {
				continue
			}
			readings = append(readings, model.BatteryReading{VehicleID: id, Time: now, Percentage: pct})
			if !m.isLow(pct) {
				continue
			}
			x, y, err := s.Position(id)
			if err != nil {
				m.log.Debugf("position of %s: %v", id, err)
				continue
			}
			p := model.LowBatteryPosition{VehicleID: id, Time: now, Percentage: pct, X: x, Y: y}
			m.log.Infof("%s", p)
			low = append(low, p)
		}
		res.History = append(res.History, readings...)
		res.Positions = append(res.Positions, low...)
		if err := m.sink.RecordReadings(readings); err != nil {
			m.log.Warnf("record readings: %v", err)
		}
		if len(low) > 0 {
			if err := m.sink.RecordLowBattery(low); err != nil {
				m.log.Warnf("record low battery: %v", err)
			}
		}
	}
}

func (m *Monitor) percentage(s Session, id string) (float64, bool) {
	actual, err := m.param(s, id, ParamActual)
	if err != nil {
		m.log.Debugf("skip %s: %v", id, err)
		return 0, false
	}
	maximum, err := m.param(s, id, ParamMaximum)
	if err != nil {
		m.log.Debugf("skip %s: %v", id, err)
		return 0, false
	}
	if maximum == 0 {
		return 0, false
	}
	return actual / maximum * 100, true
}

func (m *Monitor) param(s Session, id, key string) (float64, error) {
	raw, err := s.Parameter(id, key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", key, raw, err)
	}
	return v, nil
}

func (m *Monitor) isLow(pct float64) bool {
	if m.cfg.Mode == ModeExact {
		return pct == m.cfg.ThresholdPct
	}
	return pct <= m.cfg.ThresholdPct
}
