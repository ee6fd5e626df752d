package mqtt

import (
	"encoding/json"
	"fmt"
	"strings"

	coremetrics "github.com/ashishpoonia369/EVs/core/metrics"
	"github.com/ashishpoonia369/EVs/core/model"
	coremqtt "github.com/ashishpoonia369/EVs/core/mqtt"
)

// Alert is the JSON payload published for a low-battery vehicle.
type Alert struct {
	VehicleID  string   `json:"vehicle_id"`
	MarkerID   string   `json:"marker_id,omitempty"`
	Percentage *float64 `json:"battery_percentage,omitempty"`
	Time       *float64 `json:"time,omitempty"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
}

// AlertPublisher publishes low-battery alerts on
// <prefix>/<vehicle_id>/low_battery and extraction summaries on
// <prefix>/extraction. It is both an extract.Sink and a metrics.Sink.
type AlertPublisher struct {
	pub    coremqtt.Publisher
	prefix string
}

var _ coremetrics.Sink = (*AlertPublisher)(nil)

// NewAlertPublisher wraps pub.
func NewAlertPublisher(pub coremqtt.Publisher, prefix string) *AlertPublisher {
	if prefix == "" {
		prefix = "evs"
	}
	return &AlertPublisher{pub: pub, prefix: prefix}
}

// topicLevel replaces the level separator and wildcards so a vehicle id is
// always exactly one topic level.
var topicLevel = strings.NewReplacer("/", "_", "+", "_", "#", "_", "\x00", "_")

// Topic returns the alert topic of a vehicle.
func (a *AlertPublisher) Topic(vehicleID string) string {
	return fmt.Sprintf("%s/%s/low_battery", a.prefix, topicLevel.Replace(vehicleID))
}

func (a *AlertPublisher) publish(topic string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return a.pub.Publish(topic, payload)
}

// Emit publishes one alert per extracted marker.
func (a *AlertPublisher) Emit(m model.Marker) error {
	return a.publish(a.Topic(m.VehicleID), Alert{VehicleID: m.VehicleID, MarkerID: m.ID, X: m.X, Y: m.Y})
}

// RecordLowBattery publishes one alert per observation.
func (a *AlertPublisher) RecordLowBattery(ps []model.LowBatteryPosition) error {
	for _, p := range ps {
		pct, at := p.Percentage, p.Time
		if err := a.publish(a.Topic(p.VehicleID), Alert{VehicleID: p.VehicleID, Percentage: &pct, Time: &at, X: p.X, Y: p.Y}); err != nil {
			return err
		}
	}
	return nil
}

// RecordExtraction publishes the run summary.
func (a *AlertPublisher) RecordExtraction(ev coremetrics.ExtractionEvent) error {
	return a.publish(a.prefix+"/extraction", struct {
		Source  string `json:"source"`
		Records int    `json:"records"`
		Emitted int    `json:"emitted"`
	}{ev.Source, ev.Records, ev.Emitted})
}

// RecordReadings is a no-op; readings are too frequent to alert on.
func (a *AlertPublisher) RecordReadings([]model.BatteryReading) error { return nil }

// Flush disconnects from the broker.
func (a *AlertPublisher) Flush() error {
	a.pub.Disconnect()
	return nil
}
