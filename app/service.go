package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ashishpoonia369/EVs/config"
	"github.com/ashishpoonia369/EVs/core/chargers"
	"github.com/ashishpoonia369/EVs/core/extract"
	"github.com/ashishpoonia369/EVs/core/geo"
	"github.com/ashishpoonia369/EVs/core/lane"
	coremetrics "github.com/ashishpoonia369/EVs/core/metrics"
	"github.com/ashishpoonia369/EVs/core/model"
	"github.com/ashishpoonia369/EVs/core/monitor"
	"github.com/ashishpoonia369/EVs/infra/logger"
	"github.com/ashishpoonia369/EVs/infra/mqtt"
	"github.com/ashishpoonia369/EVs/infra/sumo"
	"github.com/ashishpoonia369/EVs/pkg/export"

	// registers the prometheus and influx sink factories
	_ "github.com/ashishpoonia369/EVs/infra/metrics"
)

// Service runs the evs operations against the configured side channels.
type Service struct {
	cfg    *config.Config
	log    logger.Logger
	sink   coremetrics.Sink
	alerts *mqtt.AlertPublisher
}

// New creates a Service from the configuration. An unreachable MQTT broker
// disables alerts instead of failing.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")
	sink, err := coremetrics.NewSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	var alerts *mqtt.AlertPublisher
	if cfg.MQTT.Enabled() {
		client, err := mqtt.NewPahoClient(cfg.MQTT)
		if err != nil {
			logg.Warnf("mqtt alerts disabled: %v", err)
		} else {
			alerts = mqtt.NewAlertPublisher(client, cfg.MQTT.TopicPrefix)
		}
	}
	return newService(cfg, logg, sink, alerts), nil
}

func newService(cfg *config.Config, log logger.Logger, sink coremetrics.Sink, alerts *mqtt.AlertPublisher) *Service {
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	return &Service{cfg: cfg, log: logger.OrNop(log), sink: sink, alerts: alerts}
}

// metricsSink returns the configured sink, fanned out to alerts when enabled.
func (s *Service) metricsSink() coremetrics.Sink {
	if s.alerts == nil {
		return s.sink
	}
	return coremetrics.NewMultiSink(s.sink, s.alerts)
}

// Extract writes the POI file of first low-battery crossings.
func (s *Service) Extract(ctx context.Context) (extract.Stats, error) {
	c := s.cfg.Extract
	style, err := model.StyleProfile(c.Profile)
	if err != nil {
		return extract.Stats{}, err
	}
	ids, err := extract.NewIDGenerator(c.IDs, c.Prefix)
	if err != nil {
		return extract.Stats{}, err
	}
	in, err := sumo.Open(c.Input)
	if err != nil {
		return extract.Stats{}, fmt.Errorf("open battery output: %w", err)
	}
	defer in.Close()

	start := time.Now()
	var st extract.Stats
	err = writeFile(c.Output, func(w io.Writer) error {
		poi, err := sumo.NewPOIWriter(w)
		if err != nil {
			return err
		}
		var sink extract.Sink = poi
		if s.alerts != nil {
			sink = extract.Tee(poi, s.alertSink())
		}
		st, err = extract.Extract(ctx, sumo.NewBatteryReader(in), sink, extract.Options{
			Threshold: c.Threshold,
			Strict:    c.Strict,
			Style:     style,
			IDs:       ids,
			Log:       logger.New("extract"),
		})
		if err != nil {
			return err
		}
		return poi.Close()
	})
	if err != nil {
		return st, err
	}
	ev := coremetrics.ExtractionEvent{
		Source:         filepath.Base(c.Input),
		Records:        st.Records,
		Emitted:        st.Emitted,
		MissingField:   st.MissingField,
		ZeroMaximum:    st.ZeroMaximum,
		ParseErrors:    st.ParseErrors,
		Duplicates:     st.Duplicates,
		AboveThreshold: st.AboveThreshold,
		Duration:       time.Since(start),
		Time:           start,
	}
	if err := s.metricsSink().RecordExtraction(ev); err != nil {
		s.log.Warnf("record extraction: %v", err)
	}
	s.log.Infow("extraction finished", map[string]any{
		"records": st.Records,
		"emitted": st.Emitted,
		"skipped": st.Skipped(),
	})
	s.log.Infof("wrote %s", c.Output)
	return st, nil
}

// alertSink publishes markers without letting broker failures abort the
// extraction.
func (s *Service) alertSink() extract.Sink {
	return extract.SinkFunc(func(m model.Marker) error {
		if err := s.alerts.Emit(m); err != nil {
			s.log.Warnf("alert for %s: %v", m.VehicleID, err)
		}
		return nil
	})
}

// Monitor replays a battery-output file and writes the recorded positions,
// history and optional summary.
func (s *Service) Monitor(ctx context.Context) (monitor.Result, error) {
	c := s.cfg.Monitor
	mode, err := monitor.ParseMode(c.Mode)
	if err != nil {
		return monitor.Result{}, err
	}
	session, err := sumo.OpenReplay(c.Input)
	if err != nil {
		return monitor.Result{}, fmt.Errorf("open replay: %w", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			s.log.Warnf("close session: %v", err)
		}
	}()
	m := monitor.New(monitor.Config{ThresholdPct: c.ThresholdPct, Mode: mode, MaxSteps: c.MaxSteps}, logger.New("monitor"), s.metricsSink())
	res, err := m.Run(ctx, session)
	if err != nil {
		return res, err
	}
	if err := writeFile(c.Positions, func(w io.Writer) error { return export.WritePositions(w, res.Positions) }); err != nil {
		return res, err
	}
	s.log.Infof("wrote %s", c.Positions)
	if err := writeFile(c.History, func(w io.Writer) error { return export.WriteHistory(w, res.History) }); err != nil {
		return res, err
	}
	s.log.Infof("wrote %s", c.History)
	if c.Summary != "" {
		summary := monitor.Summarize(res.History)
		err := writeFile(c.Summary, func(w io.Writer) error {
			if strings.EqualFold(filepath.Ext(c.Summary), ".json") {
				return export.WriteJSON(w, summary)
			}
			return export.WriteSummary(w, summary)
		})
		if err != nil {
			return res, err
		}
		s.log.Infof("wrote %s", c.Summary)
	}
	return res, nil
}

// SumoConfig writes the .sumo.cfg file.
func (s *Service) SumoConfig() error {
	c := s.cfg.SumoConfig
	files := sumo.SimulationFiles{
		Net:           c.Net,
		Routes:        c.Routes,
		Additional:    c.Additional,
		BatteryOutput: c.BatteryOutput,
	}
	if err := files.Validate(); err != nil {
		return err
	}
	if err := writeFile(c.Output, func(w io.Writer) error { return sumo.WriteConfig(w, files) }); err != nil {
		return err
	}
	s.log.Infof("wrote %s", c.Output)
	return nil
}

// Chargers places the configured stations on the network and writes them
// as an additional file.
func (s *Service) Chargers() (chargers.Stats, error) {
	c := s.cfg.Chargers
	net, conv, err := loadNetwork(c.Net)
	if err != nil {
		return chargers.Stats{}, err
	}
	idx := lane.NewIndex(net.Lanes)
	stations, st := chargers.Place(c.Stations, conv, idx, c.Defaults(), logger.New("chargers"))
	if err := writeFile(c.Output, func(w io.Writer) error { return sumo.WriteChargingStations(w, stations) }); err != nil {
		return st, err
	}
	s.log.Infof("placed %d stations, skipped %d", st.Placed, st.Skipped)
	s.log.Infof("wrote %s", c.Output)
	return st, nil
}

// Convert appends network x/y columns to a lon/lat CSV.
func (s *Service) Convert() (int, error) {
	c := s.cfg.Convert
	_, conv, err := loadNetwork(c.Net)
	if err != nil {
		return 0, err
	}
	in, err := os.Open(c.Input)
	if err != nil {
		return 0, err
	}
	defer in.Close()
	var n int
	err = writeFile(c.Output, func(w io.Writer) error {
		n, err = export.ConvertLonLat(in, w, conv)
		return err
	})
	if err != nil {
		return n, err
	}
	s.log.Infof("wrote %s", c.Output)
	return n, nil
}

// Close flushes the metrics sinks and disconnects from the broker.
func (s *Service) Close() error {
	var errs []error
	errs = append(errs, coremetrics.Flush(s.sink))
	if s.alerts != nil {
		errs = append(errs, s.alerts.Flush())
	}
	return errors.Join(errs...)
}

func loadNetwork(path string) (*sumo.Network, geo.Converter, error) {
	if path == "" {
		return nil, nil, fmt.Errorf("net file is required")
	}
	rc, err := sumo.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer rc.Close()
	net, err := sumo.ReadNet(rc)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	conv, err := geo.NewConverter(net.Location.ProjParameter, net.Location.NetOffset)
	if err != nil {
		return nil, nil, err
	}
	return net, conv, nil
}

// writeFile creates path and reports write and close errors together.
func writeFile(path string, fn func(io.Writer) error) (err error) {
	if path == "" {
		return fmt.Errorf("output path is required")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()
	if err := fn(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
