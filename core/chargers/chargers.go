// Package chargers attaches charging stations given in geographic
// coordinates to the nearest lane of a SUMO network.
package chargers

import (
	"github.com/paulmach/orb"

	"github.com/ashishpoonia369/EVs/core/geo"
	"github.com/ashishpoonia369/EVs/core/lane"
	"github.com/ashishpoonia369/EVs/core/logger"
	"github.com/ashishpoonia369/EVs/core/model"
)

// Defaults are the station attributes not derived from the network.
type Defaults struct {
	Pos        float64 `json:"pos"`
	Connectors int     `json:"connectors"`
	PowerKW    float64 `json:"power_kw"`
}

// DefaultStation matches a 22 kW AC station with two connectors placed at
// the start of its lane.
var DefaultStation = Defaults{Pos: 0, Connectors: 2, PowerKW: 22}

// Locator finds the lane closest to a point in network coordinates.
type Locator interface {
	Nearest(p orb.Point) (lane.Lane, float64, bool)
}

// Stats counts placement outcomes.
type Stats struct {
	Placed  int `json:"placed"`
	Skipped int `json:"skipped"`
}

// Place converts every site to network coordinates and attaches it to the
// nearest lane. Sites without any lane nearby are skipped with a warning.
func Place(sites []model.StationSite, conv geo.Converter, idx Locator, d Defaults, log logger.Logger) ([]model.ChargingStation, Stats) {
	log = logger.OrNop(log)
	var st Stats
	out := make([]model.ChargingStation, 0, len(sites))
	for _, s := range sites {
		x, y := conv.ToXY(s.Lon, s.Lat)
		l, dist, ok := idx.Nearest(orb.Point{x, y})
		if !ok {
			log.Warnf("no lane found for station %s at (%.2f, %.2f)", s.ID, x, y)
			st.Skipped++
			continue
		}
		log.Debugw("station placed", map[string]any{
			"station":  s.ID,
			"lane":     l.ID,
			"distance": dist,
		})
		out = append(out, model.ChargingStation{
			ID:         s.ID,
			Lane:       l.ID,
			Pos:        d.Pos,
			Connectors: d.Connectors,
			PowerKW:    d.PowerKW,
		})
		st.Placed++
	}
	return out, st
}
