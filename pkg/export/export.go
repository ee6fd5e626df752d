// Package export writes monitor results and converted coordinates as CSV or
// JSON files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ashishpoonia369/EVs/core/geo"
	"github.com/ashishpoonia369/EVs/core/model"
	"github.com/ashishpoonia369/EVs/core/monitor"
)

// WriteJSON writes v to w as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeRows(w io.Writer, header []string, rows func(emit func([]string) error) error) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := rows(cw.Write); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// WritePositions writes the low-battery positions recorded by the monitor.
func WritePositions(w io.Writer, positions []model.LowBatteryPosition) error {
	header := []string{"vehicle_id", "battery_percentage", "x_position", "y_position"}
	return writeRows(w, header, func(emit func([]string) error) error {
		for _, p := range positions {
			if err := emit([]string{p.VehicleID, formatFloat(p.Percentage), formatFloat(p.X), formatFloat(p.Y)}); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteHistory writes the battery readings grouped by vehicle, vehicles in
// first-seen order and readings in time order within each vehicle.
func WriteHistory(w io.Writer, history []model.BatteryReading) error {
	var order []string
	byVehicle := make(map[string][]model.BatteryReading)
	for _, r := range history {
		if _, ok := byVehicle[r.VehicleID]; !ok {
			order = append(order, r.VehicleID)
		}
		byVehicle[r.VehicleID] = append(byVehicle[r.VehicleID], r)
	}
	return writeRows(w, []string{"vehicle_id", "time", "battery_percentage"}, func(emit func([]string) error) error {
		for _, id := range order {
			for _, r := range byVehicle[id] {
				if err := emit([]string{id, formatFloat(r.Time), formatFloat(r.Percentage)}); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// WriteSummary writes one line per vehicle summary.
func WriteSummary(w io.Writer, summaries []monitor.Summary) error {
	header := []string{"vehicle_id", "readings", "min_percentage", "mean_percentage", "last_percentage"}
	return writeRows(w, header, func(emit func([]string) error) error {
		for _, s := range summaries {
			rec := []string{
				s.VehicleID,
				strconv.Itoa(s.Readings),
				formatFloat(s.Min),
				formatFloat(s.Mean),
				formatFloat(s.Last),
			}
			if err := emit(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// ConvertLonLat copies a CSV with "lon" and "lat" columns from r to w and
// sets "x" and "y" columns to the converted network coordinates. Existing x
// and y columns are overwritten in place, otherwise they are appended.
// It returns the number of data rows written.
func ConvertLonLat(r io.Reader, w io.Writer, conv geo.Converter) (int, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("empty csv")
	}
	if err != nil {
		return 0, err
	}
	col := func(name string) int {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i
			}
		}
		return -1
	}
	lonCol, latCol := col("lon"), col("lat")
	if lonCol < 0 || latCol < 0 {
		return 0, fmt.Errorf("csv needs lon and lat columns, got %v", header)
	}
	out := append([]string(nil), header...)
	xCol, yCol := col("x"), col("y")
	if xCol < 0 {
		xCol = len(out)
		out = append(out, "x")
	}
	if yCol < 0 {
		yCol = len(out)
		out = append(out, "y")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(out); err != nil {
		return 0, err
	}
	n := 0
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return n, err
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(rec[lonCol]), 64)
		if err != nil {
			return n, fmt.Errorf("line %d: lon: %w", line, err)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(rec[latCol]), 64)
		if err != nil {
			return n, fmt.Errorf("line %d: lat: %w", line, err)
		}
		x, y := conv.ToXY(lon, lat)
		row := make([]string, len(out))
		copy(row, rec)
		row[xCol] = formatFloat(x)
		row[yCol] = formatFloat(y)
		if err := cw.Write(row); err != nil {
			return n, err
		}
		n++
	}
	cw.Flush()
	return n, cw.Error()
}
