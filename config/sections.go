package config

import (
	"fmt"

	"github.com/ashishpoonia369/EVs/core/chargers"
	"github.com/ashishpoonia369/EVs/core/extract"
	"github.com/ashishpoonia369/EVs/core/model"
	"github.com/ashishpoonia369/EVs/core/monitor"
)

// ExtractConfig drives `evs extract`.
type ExtractConfig struct {
	Input     string  `json:"input"`
	Output    string  `json:"output"`
	Threshold float64 `json:"threshold"`
	Profile   string  `json:"profile"`
	Strict    bool    `json:"strict"`
	// IDs selects the marker id scheme: "uuid" or "counter".
	IDs    string `json:"ids"`
	Prefix string `json:"prefix"`
}

func (c *ExtractConfig) SetDefaults() {
	if c.Input == "" {
		c.Input = "battery_output.xml"
	}
	if c.Output == "" {
		c.Output = "low_battery.poi.xml"
	}
	if c.Threshold == 0 {
		c.Threshold = extract.DefaultThreshold
	}
	if c.Profile == "" {
		c.Profile = model.ProfileSmall
	}
	if c.IDs == "" {
		c.IDs = extract.IDKindUUID
	}
	if c.Prefix == "" {
		c.Prefix = extract.DefaultIDPrefix
	}
}

func (c ExtractConfig) Validate() error {
	if c.Threshold <= 0 || c.Threshold > 1 {
		return fmt.Errorf("threshold %v must be within (0,1]", c.Threshold)
	}
	if _, err := model.StyleProfile(c.Profile); err != nil {
		return err
	}
	if _, err := extract.NewIDGenerator(c.IDs, c.Prefix); err != nil {
		return err
	}
	return nil
}

// MonitorConfig drives `evs monitor`.
type MonitorConfig struct {
	Input        string  `json:"input"`
	Positions    string  `json:"positions"`
	History      string  `json:"history"`
	Summary      string  `json:"summary"`
	ThresholdPct float64 `json:"threshold_pct"`
	Mode         string  `json:"mode"`
	MaxSteps     int     `json:"max_steps"`
}

func (c *MonitorConfig) SetDefaults() {
	if c.Input == "" {
		c.Input = "battery_output.xml"
	}
	if c.Positions == "" {
		c.Positions = "low_battery_positions.csv"
	}
	if c.History == "" {
		c.History = "battery_levels_over_time.csv"
	}
	if c.ThresholdPct == 0 {
		c.ThresholdPct = 10
	}
	if c.Mode == "" {
		c.Mode = string(monitor.ModeBelow)
	}
}

func (c MonitorConfig) Validate() error {
	if c.ThresholdPct <= 0 || c.ThresholdPct > 100 {
		return fmt.Errorf("threshold_pct %v must be within (0,100]", c.ThresholdPct)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("max_steps must not be negative")
	}
	_, err := monitor.ParseMode(c.Mode)
	return err
}

// SumoConfig drives `evs sumocfg`.
type SumoConfig struct {
	Net           string   `json:"net"`
	Routes        []string `json:"routes"`
	Additional    []string `json:"additional"`
	BatteryOutput string   `json:"battery_output"`
	Output        string   `json:"output"`
}

func (c *SumoConfig) SetDefaults() {
	if c.Output == "" {
		c.Output = "simulation.sumo.cfg"
	}
}

// ChargersConfig drives `evs chargers`.
type ChargersConfig struct {
	Net        string              `json:"net"`
	Output     string              `json:"output"`
	Stations   []model.StationSite `json:"stations"`
	Pos        float64             `json:"pos"`
	Connectors int                 `json:"connectors"`
	PowerKW    float64             `json:"power_kw"`
}

func (c *ChargersConfig) SetDefaults() {
	if c.Output == "" {
		c.Output = "charging_stations.add.xml"
	}
	if len(c.Stations) == 0 {
		c.Stations = chargers.SuratSites()
	}
	if c.Connectors == 0 {
		c.Connectors = chargers.DefaultStation.Connectors
	}
	if c.PowerKW == 0 {
		c.PowerKW = chargers.DefaultStation.PowerKW
	}
}

func (c ChargersConfig) Validate() error {
	if c.Pos < 0 {
		return fmt.Errorf("pos must not be negative")
	}
	if c.Connectors < 1 {
		return fmt.Errorf("connectors must be at least 1")
	}
	if c.PowerKW <= 0 {
		return fmt.Errorf("power_kw must be positive")
	}
	seen := make(map[string]bool, len(c.Stations))
	for _, s := range c.Stations {
		if s.ID == "" || seen[s.ID] {
			return fmt.Errorf("station ids must be unique and non empty, got %q", s.ID)
		}
		seen[s.ID] = true
	}
	return nil
}

// Defaults returns the station attributes shared by all placed stations.
func (c ChargersConfig) Defaults() chargers.Defaults {
	return chargers.Defaults{Pos: c.Pos, Connectors: c.Connectors, PowerKW: c.PowerKW}
}

// ConvertConfig drives `evs convert`.
type ConvertConfig struct {
	Net    string `json:"net"`
	Input  string `json:"input"`
	Output string `json:"output"`
}

func (c *ConvertConfig) SetDefaults() {
	if c.Input == "" {
		c.Input = "low_battery_positions.csv"
	}
	if c.Output == "" {
		c.Output = "mapped_locations.csv"
	}
}
