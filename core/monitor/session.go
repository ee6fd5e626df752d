// Package monitor steps a traffic simulation session and records the battery
// level of every electric vehicle and the positions where it ran low.
package monitor

import (
	"context"
	"errors"
)

// Battery device parameter keys.
const (
	BatteryParamPrefix = "device.battery."
	ParamActual        = BatteryParamPrefix + "actualBatteryCapacity"
	ParamMaximum       = BatteryParamPrefix + "maximumBatteryCapacity"
)

var (
	// ErrNoBattery is returned for vehicles without a battery device.
	ErrNoBattery = errors.New("vehicle has no battery device")
	// ErrUnknownVehicle is returned for ids not active in the current step.
	ErrUnknownVehicle = errors.New("unknown vehicle")
)

// Session is a running simulation, such as a TraCI connection or a replay of
// recorded output.
type Session interface {
	// MinExpectedNumber returns how many vehicles are still running or
	// waiting to be inserted. The run ends when it reaches 0.
	MinExpectedNumber() (int, error)
	// Step advances the simulation by one step.
	Step(ctx context.Context) error
	// Time returns the simulation time in seconds.
	Time() float64
	// VehicleIDs lists the currently active vehicles.
	VehicleIDs() ([]string, error)
	// Parameter reads a named vehicle parameter.
	Parameter(id, key string) (string, error)
	// Position returns the vehicle position in network coordinates.
	Position(id string) (x, y float64, err error)
	Close() error
}
