// Package geo converts between geographic coordinates and SUMO network
// coordinates.
package geo

import (
	"fmt"
	"strconv"
	"strings"
)

// Converter maps lon/lat to network x/y and back.
type Converter interface {
	ToXY(lon, lat float64) (x, y float64)
	ToLonLat(x, y float64) (lon, lat float64)
}

// NoProjection is the SUMO projParameter of networks without projection.
const NoProjection = "!"

// NewConverter builds the converter described by a network <location>.
// Networks without projection are assumed to already use lon/lat, shifted by
// the net offset.
func NewConverter(projParameter string, netOffset [2]float64) (Converter, error) {
	proj := strings.TrimSpace(projParameter)
	if proj == "" || proj == NoProjection {
		return offset{dx: netOffset[0], dy: netOffset[1]}, nil
	}
	params := parseProj(proj)
	if params["proj"] != "utm" {
		return nil, fmt.Errorf("unsupported projection %q", proj)
	}
	zone, err := strconv.Atoi(params["zone"])
	if err != nil || zone < 1 || zone > 60 {
		return nil, fmt.Errorf("invalid utm zone in %q", proj)
	}
	_, south := params["south"]
	return &UTM{Zone: zone, South: south, OffsetX: netOffset[0], OffsetY: netOffset[1]}, nil
}

// parseProj splits "+proj=utm +zone=43 +south" into a map; flags map to "".
func parseProj(s string) map[string]string {
	out := make(map[string]string)
	for _, f := range strings.Fields(s) {
		f = strings.TrimPrefix(f, "+")
		k, v, _ := strings.Cut(f, "=")
		out[k] = v
	}
	return out
}

type offset struct{ dx, dy float64 }

func (o offset) ToXY(lon, lat float64) (float64, float64) { return lon + o.dx, lat + o.dy }
func (o offset) ToLonLat(x, y float64) (float64, float64) { return x - o.dx, y - o.dy }
