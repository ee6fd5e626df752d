package sumo

import (
	"bufio"
	"compress/gzip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ashishpoonia369/EVs/core/extract"
	"github.com/ashishpoonia369/EVs/core/model"
)

// Battery-output attribute names.
const (
	AttrID         = "id"
	AttrActual     = "actualBatteryCapacity"
	AttrMaximum    = "maximumBatteryCapacity"
	AttrX          = "x"
	AttrY          = "y"
	elemTimestep   = "timestep"
	elemVehicle    = "vehicle"
	attrTimestepAt = "time"
)

// BatteryRecord is the raw attribute set of one <vehicle> element.
type BatteryRecord struct {
	Step  int     // index of the enclosing <timestep>, -1 outside any
	Time  float64 // enclosing timestep time
	Attrs map[string]string
}

// Get returns an attribute, treating empty values as absent.
func (r BatteryRecord) Get(name string) (string, bool) {
	v, ok := r.Attrs[name]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// BatteryReader streams <vehicle> records out of a SUMO battery-output
// document. It implements extract.Source.
type BatteryReader struct {
	dec  *xml.Decoder
	step int
	time float64
}

// NewBatteryReader wraps r. The reader is consumed forward only.
func NewBatteryReader(r io.Reader) *BatteryReader {
	return &BatteryReader{dec: xml.NewDecoder(bufio.NewReader(r)), step: -1}
}

// NextRecord returns the next <vehicle> element or io.EOF.
func (br *BatteryReader) NextRecord() (BatteryRecord, error) {
	for {
		tok, err := br.dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return BatteryRecord{}, io.EOF
			}
			return BatteryRecord{}, fmt.Errorf("battery output: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case elemTimestep:
			br.step++
			br.time = 0
			if v := attr(start, attrTimestepAt); v != "" {
				if t, err := strconv.ParseFloat(v, 64); err == nil {
					br.time = t
				}
			}
		case elemVehicle:
			rec := BatteryRecord{Step: br.step, Time: br.time, Attrs: make(map[string]string, len(start.Attr))}
			for _, a := range start.Attr {
				rec.Attrs[a.Name.Local] = a.Value
			}
			if err := br.dec.Skip(); err != nil {
				return BatteryRecord{}, fmt.Errorf("battery output: %w", err)
			}
			return rec, nil
		}
	}
}

// Next implements extract.Source.
func (br *BatteryReader) Next() (model.VehicleSnapshot, error) {
	rec, err := br.NextRecord()
	if err != nil {
		return model.VehicleSnapshot{}, err
	}
	return rec.Snapshot()
}

// Snapshot validates and converts the record. Missing or unparsable
// attributes yield an *extract.RecordError.
func (r BatteryRecord) Snapshot() (model.VehicleSnapshot, error) {
	id, _ := r.Get(AttrID)
	values := make(map[string]string, 5)
	for _, name := range []string{AttrID, AttrActual, AttrMaximum, AttrX, AttrY} {
		v, ok := r.Get(name)
		if !ok {
			return model.VehicleSnapshot{}, extract.MissingField(id, name)
		}
		values[name] = v
	}
	snap := model.VehicleSnapshot{VehicleID: id, Time: r.Time}
	fields := []struct {
		name string
		dst  *float64
	}{
		{AttrActual, &snap.Actual},
		{AttrMaximum, &snap.Maximum},
		{AttrX, &snap.X},
		{AttrY, &snap.Y},
	}
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(values[f.name]), 64)
		if err != nil {
			return model.VehicleSnapshot{}, extract.InvalidNumber(id, f.name, values[f.name], err)
		}
		*f.dst = v
	}
	return snap, nil
}

func attr(start xml.StartElement, name string) string {
	for _, a := range start.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

type multiCloser struct {
	io.Reader
	closers []io.Closer
}

func (m multiCloser) Close() error {
	var errs []error
	for _, c := range m.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// Open opens a SUMO XML file, transparently decompressing ".gz" files.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(strings.ToLower(path), ".gz") {
		return f, nil
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("gzip %s: %w", path, err)
	}
	return multiCloser{Reader: zr, closers: []io.Closer{zr, f}}, nil
}
