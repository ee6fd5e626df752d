package sumo

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ashishpoonia369/EVs/core/model"
)

// SimulationFiles lists the inputs and outputs of a SUMO configuration.
type SimulationFiles struct {
	Net           string
	Routes        []string
	Additional    []string
	BatteryOutput string
}

// Validate checks the mandatory inputs.
func (f SimulationFiles) Validate() error {
	if f.Net == "" {
		return fmt.Errorf("net file is required")
	}
	if len(f.Routes) == 0 {
		return fmt.Errorf("at least one route file is required")
	}
	return nil
}

type valueElem struct {
	Value string `xml:"value,attr"`
}

type configInput struct {
	Net        valueElem  `xml:"net-file"`
	Routes     valueElem  `xml:"route-files"`
	Additional *valueElem `xml:"additional-files,omitempty"`
}

type configOutput struct {
	BatteryOutput valueElem `xml:"battery-output"`
}

type configuration struct {
	XMLName xml.Name      `xml:"configuration"`
	Input   configInput   `xml:"input"`
	Output  *configOutput `xml:"output,omitempty"`
}

// WriteConfig writes a .sumo.cfg document for files. Multiple route and
// additional files are joined with spaces, as SUMO expects.
func WriteConfig(w io.Writer, files SimulationFiles) error {
	if err := files.Validate(); err != nil {
		return err
	}
	cfg := configuration{Input: configInput{
		Net:    valueElem{Value: files.Net},
		Routes: valueElem{Value: strings.Join(files.Routes, " ")},
	}}
	if len(files.Additional) > 0 {
		cfg.Input.Additional = &valueElem{Value: strings.Join(files.Additional, " ")}
	}
	if files.BatteryOutput != "" {
		cfg.Output = &configOutput{BatteryOutput: valueElem{Value: files.BatteryOutput}}
	}
	return writeDocument(w, cfg)
}

type chargingStationElem struct {
	ID         string `xml:"id,attr"`
	Lane       string `xml:"lane,attr"`
	Pos        string `xml:"pos,attr"`
	Connectors int    `xml:"connectors,attr"`
	PowerKW    string `xml:"power_kW,attr"`
}

type stationsDocument struct {
	XMLName  xml.Name              `xml:"additional"`
	Stations []chargingStationElem `xml:"chargingStation"`
}

// WriteChargingStations writes an additional file with one
// <chargingStation> per station.
func WriteChargingStations(w io.Writer, stations []model.ChargingStation) error {
	doc := stationsDocument{Stations: make([]chargingStationElem, 0, len(stations))}
	for _, s := range stations {
		doc.Stations = append(doc.Stations, chargingStationElem{
			ID:         s.ID,
			Lane:       s.Lane,
			Pos:        formatFloat(s.Pos),
			Connectors: s.Connectors,
			PowerKW:    formatFloat(s.PowerKW),
		})
	}
	return writeDocument(w, doc)
}

func writeDocument(w io.Writer, v any) error {
	if _, err := io.WriteString(w, `<?xml version="1.0" encoding="utf-8"?>`+"\n"); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// parseFloatList parses "x,y" pairs separated by blanks, the SUMO shape and
// offset format.
func parseFloatList(s string) ([][2]float64, error) {
	var out [][2]float64
	for _, pair := range strings.Fields(s) {
		xs, ys, ok := strings.Cut(pair, ",")
		if !ok {
			return nil, fmt.Errorf("invalid coordinate %q", pair)
		}
		x, err := strconv.ParseFloat(xs, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid coordinate %q: %w", pair, err)
		}
		// 3D shapes carry a trailing ",z" which is ignored.
		ys, _, _ = strings.Cut(ys, ",")
		y, err := strconv.ParseFloat(ys, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid coordinate %q: %w", pair, err)
		}
		out = append(out, [2]float64{x, y})
	}
	return out, nil
}
