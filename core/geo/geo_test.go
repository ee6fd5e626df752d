package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConverterNoProjection(t *testing.T) {
	for _, proj := range []string{"", "!"} {
		c, err := NewConverter(proj, [2]float64{-10, 5})
		require.NoError(t, err)
		x, y := c.ToXY(72.8, 21.1)
		assert.InDelta(t, 62.8, x, 1e-9)
		assert.InDelta(t, 26.1, y, 1e-9)
		lon, lat := c.ToLonLat(x, y)
		assert.InDelta(t, 72.8, lon, 1e-9)
		assert.InDelta(t, 21.1, lat, 1e-9)
	}
}

func TestNewConverterErrors(t *testing.T) {
	_, err := NewConverter("+proj=merc", [2]float64{})
	assert.Error(t, err)
	_, err = NewConverter("+proj=utm +zone=99", [2]float64{})
	assert.Error(t, err)
	_, err = NewConverter("+proj=utm", [2]float64{})
	assert.Error(t, err)
}

func TestUTMCentralMeridianOnEquator(t *testing.T) {
	c, err := NewConverter("+proj=utm +zone=43 +ellps=WGS84 +datum=WGS84 +units=m +no_defs", [2]float64{})
	require.NoError(t, err)
	x, y := c.ToXY(75, 0)
	assert.InDelta(t, 500000, x, 1e-6)
	assert.InDelta(t, 0, y, 1e-6)
}

func TestUTMSouthFalseNorthing(t *testing.T) {
	c, err := NewConverter("+proj=utm +zone=33 +south", [2]float64{})
	require.NoError(t, err)
	_, y := c.ToXY(15, 0)
	assert.InDelta(t, 10000000, y, 1e-6)
	_, y = c.ToXY(15, -10)
	assert.InDelta(t, 8894587.51, y, 0.1)
	lon, lat := c.ToLonLat(500000, y)
	assert.InDelta(t, 15, lon, 1e-9)
	assert.InDelta(t, -10, lat, 1e-9)
}

func TestUTMRoundTrip(t *testing.T) {
	c, err := NewConverter("+proj=utm +zone=43", [2]float64{-270000, -2340000})
	require.NoError(t, err)
	points := [][2]float64{
		{72.800870, 21.158818},
		{72.864481, 21.206786},
		{72.751914, 21.136598},
		{74.5, 40.2},
		{78.9, 60.1},
	}
	for _, p := range points {
		x, y := c.ToXY(p[0], p[1])
		lon, lat := c.ToLonLat(x, y)
		assert.InDelta(t, p[0], lon, 1e-9, "lon for %v", p)
		assert.InDelta(t, p[1], lat, 1e-9, "lat for %v", p)
	}
}

func TestUTMNeighbouringPointsAreMetresApart(t *testing.T) {
	c, err := NewConverter("+proj=utm +zone=43", [2]float64{})
	require.NoError(t, err)
	x1, y1 := c.ToXY(72.8, 21.15)
	x2, y2 := c.ToXY(72.8, 21.16)
	// 2.2 degrees west of the central meridian grid north is rotated, so a
	// step due north also moves east.
	assert.InDelta(t, 15.35, x2-x1, 0.01)
	assert.InDelta(t, 1107.36, y2-y1, 0.01)
}

func TestUTMKnownPoint(t *testing.T) {
	// echo 12 55 | proj +proj=utm +zone=32 +ellps=GRS80
	c, err := NewConverter("+proj=utm +zone=32", [2]float64{})
	require.NoError(t, err)
	x, y := c.ToXY(12, 55)
	assert.InDelta(t, 691875.63, x, 0.1)
	assert.InDelta(t, 6098907.83, y, 0.1)
}

func TestUTMSurat(t *testing.T) {
	c, err := NewConverter("+proj=utm +zone=43 +ellps=WGS84 +datum=WGS84 +units=m +no_defs", [2]float64{-271000, -2340000})
	require.NoError(t, err)
	x, y := c.ToXY(72.8, 21.15)
	assert.InDelta(t, 544.02, x, 0.5)
	assert.InDelta(t, 331.77, y, 0.5)
}
