package sumo

import (
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const netDoc = `<?xml version="1.0" encoding="UTF-8"?>
<net version="1.9">
    <location netOffset="-270000.00,-2340000.00" convBoundary="0,0,100,100" projParameter="+proj=utm +zone=43 +ellps=WGS84 +datum=WGS84 +units=m +no_defs"/>
    <edge id=":j1_0" function="internal">
        <lane id=":j1_0_0" index="0" speed="13.89" length="5" shape="10,10 10,15"/>
    </edge>
    <edge id="e1" from="j0" to="j1" shape="0,0 100,0">
        <lane id="e1_0" index="0" speed="13.89" length="100" shape="0,-1.6 100,-1.6"/>
        <lane id="e1_1" index="1" speed="13.89" length="100"/>
    </edge>
    <junction id="j1" type="priority" x="100" y="0" shape="98,0 102,0"/>
</net>
`

func TestReadNet(t *testing.T) {
	net, err := ReadNet(strings.NewReader(netDoc))
	require.NoError(t, err)
	assert.Equal(t, [2]float64{-270000, -2340000}, net.Location.NetOffset)
	assert.Contains(t, net.Location.ProjParameter, "+zone=43")

	require.Len(t, net.Lanes, 3)
	assert.Equal(t, ":j1_0_0", net.Lanes[0].ID)
	assert.Equal(t, ":j1_0", net.Lanes[0].Edge)
	assert.Equal(t, orb.LineString{{0, -1.6}, {100, -1.6}}, net.Lanes[1].Shape)
	assert.Equal(t, "e1_1", net.Lanes[2].ID)
	assert.Equal(t, orb.LineString{{0, 0}, {100, 0}}, net.Lanes[2].Shape)
}

func TestReadNetBadShape(t *testing.T) {
	_, err := ReadNet(strings.NewReader(`<net><edge id="e"><lane id="l" shape="x"/></edge></net>`))
	assert.ErrorContains(t, err, "lane l")
}

func TestReadNetBadOffset(t *testing.T) {
	_, err := ReadNet(strings.NewReader(`<net><location netOffset="1"/></net>`))
	assert.Error(t, err)
}

func TestReadNetNoLocation(t *testing.T) {
	net, err := ReadNet(strings.NewReader(`<net/>`))
	require.NoError(t, err)
	assert.Empty(t, net.Lanes)
	assert.Equal(t, Location{}, net.Location)
}
