package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/ashishpoonia369/EVs/core/metrics"
	"github.com/ashishpoonia369/EVs/core/model"
)

// Record outcome label values.
const (
	OutcomeEmitted        = "emitted"
	OutcomeMissingField   = "missing_field"
	OutcomeZeroMaximum    = "zero_maximum"
	OutcomeParseError     = "parse_error"
	OutcomeDuplicate      = "duplicate"
	OutcomeAboveThreshold = "above_threshold"
)

// PromSink records evs events in Prometheus metrics. Batch runs have no
// scrape window, so Flush writes the registry to a textfile for the node
// exporter textfile collector when a path is configured.
type PromSink struct {
	records  *prometheus.CounterVec
	duration *prometheus.GaugeVec
	low      prometheus.Counter
	battery  prometheus.Histogram
	gatherer prometheus.Gatherer
	textfile string
}

// NewPromSink registers the metrics on a fresh registry.
func NewPromSink(textfile string) (*PromSink, error) {
	reg := prometheus.NewRegistry()
	return NewPromSinkWithRegistry(textfile, reg, reg)
}

// NewPromSinkWithRegistry registers the metrics on reg. Collectors already
// registered on reg are reused. A nil reg defaults to the global registry.
func NewPromSinkWithRegistry(textfile string, reg prometheus.Registerer, g prometheus.Gatherer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	records := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "evs_extraction_records_total",
		Help: "Battery output records processed, by outcome",
	}, []string{"source", "outcome"})
	duration := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "evs_extraction_duration_seconds",
		Help: "Duration of the last extraction run",
	}, []string{"source"})
	low := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "evs_low_battery_observations_total",
		Help: "Observations of vehicles at or below the battery threshold",
	})
	battery := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "evs_battery_percentage",
		Help:    "Observed battery charge in percent",
		Buckets: prometheus.LinearBuckets(10, 10, 10),
	})

	var err error
	if records, err = register(reg, records); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}
	if low, err = register(reg, low); err != nil {
		return nil, err
	}
	if battery, err = register(reg, battery); err != nil {
		return nil, err
	}
	return &PromSink{records: records, duration: duration, low: low, battery: battery, gatherer: g, textfile: textfile}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordExtraction adds the run counts per outcome.
func (s *PromSink) RecordExtraction(ev coremetrics.ExtractionEvent) error {
	counts := map[string]int{
		OutcomeEmitted:        ev.Emitted,
		OutcomeMissingField:   ev.MissingField,
		OutcomeZeroMaximum:    ev.ZeroMaximum,
		OutcomeParseError:     ev.ParseErrors,
		OutcomeDuplicate:      ev.Duplicates,
		OutcomeAboveThreshold: ev.AboveThreshold,
	}
	for outcome, n := range counts {
		s.records.WithLabelValues(ev.Source, outcome).Add(float64(n))
	}
	s.duration.WithLabelValues(ev.Source).Set(ev.Duration.Seconds())
	return nil
}

// RecordLowBattery counts low-battery observations.
func (s *PromSink) RecordLowBattery(p []model.LowBatteryPosition) error {
	s.low.Add(float64(len(p)))
	return nil
}

// RecordReadings observes battery percentages.
func (s *PromSink) RecordReadings(r []model.BatteryReading) error {
	for _, rd := range r {
		s.battery.Observe(rd.Percentage)
	}
	return nil
}

// Flush writes the textfile if configured.
func (s *PromSink) Flush() error {
	if s.textfile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(s.textfile, s.gatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
