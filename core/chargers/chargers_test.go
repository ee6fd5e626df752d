package chargers

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashishpoonia369/EVs/core/geo"
	"github.com/ashishpoonia369/EVs/core/lane"
	"github.com/ashishpoonia369/EVs/core/model"
)

func TestPlace(t *testing.T) {
	conv, err := geo.NewConverter("!", [2]float64{0, 0})
	require.NoError(t, err)
	idx := lane.NewIndex([]lane.Lane{
		{ID: "south_0", Shape: orb.LineString{{0, 0}, {10, 0}}},
		{ID: "north_0", Shape: orb.LineString{{0, 10}, {10, 10}}},
	})
	sites := []model.StationSite{
		{ID: "a", Lon: 5, Lat: 1},
		{ID: "b", Lon: 5, Lat: 9},
	}
	got, st := Place(sites, conv, idx, DefaultStation, nil)
	assert.Equal(t, Stats{Placed: 2}, st)
	assert.Equal(t, []model.ChargingStation{
		{ID: "a", Lane: "south_0", Pos: 0, Connectors: 2, PowerKW: 22},
		{ID: "b", Lane: "north_0", Pos: 0, Connectors: 2, PowerKW: 22},
	}, got)
}

func TestPlaceWithoutLanes(t *testing.T) {
	conv, err := geo.NewConverter("", [2]float64{})
	require.NoError(t, err)
	got, st := Place(SuratSites(), conv, lane.NewIndex(nil), DefaultStation, nil)
	assert.Empty(t, got)
	assert.Equal(t, Stats{Skipped: 8}, st)
}

func TestPlaceCustomDefaults(t *testing.T) {
	conv, err := geo.NewConverter("", [2]float64{})
	require.NoError(t, err)
	idx := lane.NewIndex([]lane.Lane{{ID: "l", Shape: orb.LineString{{0, 0}, {1, 1}}}})
	got, _ := Place([]model.StationSite{{ID: "s"}}, conv, idx, Defaults{Pos: 3, Connectors: 4, PowerKW: 50}, nil)
	require.Len(t, got, 1)
	assert.Equal(t, model.ChargingStation{ID: "s", Lane: "l", Pos: 3, Connectors: 4, PowerKW: 50}, got[0])
}

func TestSuratSitesUTM(t *testing.T) {
	conv, err := geo.NewConverter("+proj=utm +zone=43", [2]float64{})
	require.NoError(t, err)
	for _, s := range SuratSites() {
		x, y := conv.ToXY(s.Lon, s.Lat)
		// Surat lies in the western half of zone 43, north of the equator.
		assert.Greater(t, x, 160000.0, s.ID)
		assert.Less(t, x, 500000.0, s.ID)
		assert.Greater(t, y, 2300000.0, s.ID)
	}
}
