package model

import "fmt"

// VehicleSnapshot is the state of one vehicle at one simulation timestep, as
// read from a battery-device output or a live session.
type VehicleSnapshot struct {
	VehicleID string
	Actual    float64 // actual battery capacity (Wh)
	Maximum   float64 // maximum battery capacity (Wh), 0 means no battery info
	X         float64
	Y         float64
	Time      float64 // timestep in seconds, 0 when unknown
}

// HasBattery reports whether the snapshot carries usable battery info.
func (s VehicleSnapshot) HasBattery() bool {
	return s.Maximum != 0
}

// Ratio returns Actual/Maximum. Callers must check HasBattery first.
func (s VehicleSnapshot) Ratio() float64 {
	return s.Actual / s.Maximum
}

// Percentage returns the battery ratio scaled to [0,100].
func (s VehicleSnapshot) Percentage() float64 {
	return s.Ratio() * 100
}

// BatteryReading is one point of a vehicle battery time series.
type BatteryReading struct {
	VehicleID  string
	Time       float64
	Percentage float64
}

// LowBatteryPosition records where a vehicle was observed below a threshold.
type LowBatteryPosition struct {
	VehicleID  string
	Time       float64
	Percentage float64
	X          float64
	Y          float64
}

// String is used in log lines.
func (p LowBatteryPosition) String() string {
	return fmt.Sprintf("vehicle %s | battery: %.2f%% | position: (%.2f, %.2f)", p.VehicleID, p.Percentage, p.X, p.Y)
}
