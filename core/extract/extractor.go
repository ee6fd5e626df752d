package extract

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ashishpoonia369/EVs/core/logger"
	"github.com/ashishpoonia369/EVs/core/model"
)

// DefaultThreshold is the battery ratio at or below which a vehicle counts
// as low.
const DefaultThreshold = 0.1

// Source yields snapshots in stream order and io.EOF at the end. Skippable
// record problems are returned as *RecordError.
type Source interface {
	Next() (model.VehicleSnapshot, error)
}

// Options configures one extraction run.
type Options struct {
	// Threshold is inclusive. Zero selects DefaultThreshold.
	Threshold float64
	// Strict aborts the run on the first malformed record instead of
	// skipping it.
	Strict bool
	Style  model.Style
	IDs    IDGenerator
	Log    logger.Logger
}

// Stats counts what happened to every record of a run.
type Stats struct {
	Records        int `json:"records"`
	Emitted        int `json:"emitted"`
	MissingField   int `json:"missing_field"`
	ZeroMaximum    int `json:"zero_maximum"`
	ParseErrors    int `json:"parse_errors"`
	Duplicates     int `json:"duplicates"`
	AboveThreshold int `json:"above_threshold"`
}

// Skipped returns the number of records that did not produce a marker.
func (s Stats) Skipped() int { return s.Records - s.Emitted }

// Extract reads src until io.EOF and emits one marker per vehicle at its
// first snapshot with ratio <= threshold. The seen set lives for this call
// only. Source and sink errors are returned as is, wrapped with context.
func Extract(ctx context.Context, src Source, sink Sink, opts Options) (Stats, error) {
	threshold := opts.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	ids := opts.IDs
	if ids == nil {
		ids = ShortUUID(DefaultIDPrefix)
	}
	log := logger.OrNop(opts.Log)

	var st Stats
	seen := make(map[string]struct{})
	for {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		snap, err := src.Next()
		if errors.Is(err, io.EOF) {
			return st, nil
		}
		if err != nil {
			var rec *RecordError
			if !errors.As(err, &rec) {
				return st, fmt.Errorf("read source: %w", err)
			}
			st.Records++
			var perr *ParseError
			switch {
			case errors.As(err, &perr):
				st.ParseErrors++
			case errors.Is(err, ErrMissingField):
				st.MissingField++
			}
			if opts.Strict {
				return st, err
			}
			log.Debugf("skip %v", err)
			continue
		}
		st.Records++

		if !snap.HasBattery() {
			st.ZeroMaximum++
			log.Debugf("skip %s: %v", snap.VehicleID, ErrZeroMaximum)
			continue
		}
		if _, dup := seen[snap.VehicleID]; dup {
			st.Duplicates++
			continue
		}
		// NaN ratios fail every comparison and must not select.
		if !(snap.Ratio() <= threshold) {
			st.AboveThreshold++
			continue
		}
		seen[snap.VehicleID] = struct{}{}
		m := model.Marker{
			ID:        ids.NewID(),
			VehicleID: snap.VehicleID,
			X:         snap.X,
			Y:         snap.Y,
			Style:     opts.Style,
		}
		if err := sink.Emit(m); err != nil {
			return st, fmt.Errorf("emit marker %s: %w", m.ID, err)
		}
		st.Emitted++
		log.Debugw("low battery", map[string]any{"vehicle_id": snap.VehicleID, "ratio": snap.Ratio(), "time": snap.Time})
	}
}
