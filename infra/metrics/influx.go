package metrics

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/ashishpoonia369/EVs/core/metrics"
	"github.com/ashishpoonia369/EVs/core/model"
	"github.com/ashishpoonia369/EVs/infra/logger"
)

// InfluxSink writes battery time series to InfluxDB. Simulation seconds are
// mapped to wall-clock time by adding them to Epoch.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
	Epoch    time.Time
}

// NewInfluxSink creates a sink for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string, epoch time.Time) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
		Epoch:    epoch,
	}
}

// NewInfluxSinkWithFallback pings InfluxDB and returns a NopSink when the
// health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string, epoch time.Time) coremetrics.Sink {
	sink := NewInfluxSink(url, token, org, bucket, epoch)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

func (s *InfluxSink) at(simSeconds float64) time.Time {
	return s.Epoch.Add(time.Duration(simSeconds * float64(time.Second)))
}

// RecordExtraction writes one summary point.
func (s *InfluxSink) RecordExtraction(ev coremetrics.ExtractionEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("extraction_run").
		AddTag("source", ev.Source).
		AddField("records", ev.Records).
		AddField("emitted", ev.Emitted).
		AddField("skipped", ev.Records-ev.Emitted).
		AddField("duration_ms", round3(ev.Duration.Seconds()*1000)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordLowBattery writes one point per observation.
func (s *InfluxSink) RecordLowBattery(ps []model.LowBatteryPosition) error {
	if len(ps) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	points := make([]*write.Point, 0, len(ps))
	for _, p := range ps {
		points = append(points, write.NewPointWithMeasurement("low_battery").
			AddTag("vehicle_id", p.VehicleID).
			AddField("battery_percentage", round3(p.Percentage)).
			AddField("x", p.X).
			AddField("y", p.Y).
			SetTime(s.at(p.Time)))
	}
	return s.writeAPI.WritePoint(ctx, points...)
}

// RecordReadings writes the battery level of each vehicle.
func (s *InfluxSink) RecordReadings(rs []model.BatteryReading) error {
	if len(rs) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	points := make([]*write.Point, 0, len(rs))
	for _, r := range rs {
		points = append(points, write.NewPointWithMeasurement("battery_level").
			AddTag("vehicle_id", r.VehicleID).
			AddField("battery_percentage", round3(r.Percentage)).
			SetTime(s.at(r.Time)))
	}
	return s.writeAPI.WritePoint(ctx, points...)
}

// Flush closes the client; the blocking write API has nothing buffered.
func (s *InfluxSink) Flush() error {
	s.client.Close()
	return nil
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
