package model

import (
	"fmt"
	"strings"
)

// Style holds the visual attributes of a POI marker. Zero Width and Height
// mean the attribute is omitted.
type Style struct {
	Color  string  `json:"color"`
	Layer  int     `json:"layer"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Marker is a low-battery point of interest. VehicleID is kept for logging
// and alerting and is not part of the POI output.
type Marker struct {
	ID        string
	VehicleID string
	X         float64
	Y         float64
	Style     Style
}

const (
	ProfileSmall = "small"
	ProfileLarge = "large"
)

var profiles = map[string]Style{
	ProfileSmall: {Color: "1,0,0", Layer: 1},
	ProfileLarge: {Color: "1,0,0", Layer: 1, Width: 50, Height: 50},
}

// StyleProfile returns the predefined marker style for name.
func StyleProfile(name string) (Style, error) {
	s, ok := profiles[strings.ToLower(name)]
	if !ok {
		return Style{}, fmt.Errorf("unknown marker profile %q", name)
	}
	return s, nil
}

// StationSite is a charging station location in geographic coordinates.
type StationSite struct {
	ID  string  `json:"id"`
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// ChargingStation is a station attached to a lane of the road network.
type ChargingStation struct {
	ID         string
	Lane       string
	Pos        float64
	Connectors int
	PowerKW    float64
}
