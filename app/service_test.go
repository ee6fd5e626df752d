package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashishpoonia369/EVs/config"
	"github.com/ashishpoonia369/EVs/core/factory"
	coremetrics "github.com/ashishpoonia369/EVs/core/metrics"
	"github.com/ashishpoonia369/EVs/core/model"
	"github.com/ashishpoonia369/EVs/infra/mqtt"
)

const battery = `<battery-export>
  <timestep time="0.00">
    <vehicle id="ev1" actualBatteryCapacity="900" maximumBatteryCapacity="1000" x="10" y="20"/>
    <vehicle id="ev2" actualBatteryCapacity="50" maximumBatteryCapacity="1000" x="30" y="40"/>
  </timestep>
  <timestep time="1.00">
    <vehicle id="ev1" actualBatteryCapacity="100" maximumBatteryCapacity="1000" x="11" y="21"/>
    <vehicle id="ev2" actualBatteryCapacity="40" maximumBatteryCapacity="1000" x="31" y="41"/>
  </timestep>
</battery-export>
`

const network = `<net>
  <location netOffset="0.00,0.00" projParameter="!"/>
  <edge id="a"><lane id="a_0" shape="0,0 100,0"/></edge>
  <edge id="b"><lane id="b_0" shape="0,50 100,50"/></edge>
</net>
`

type recordSink struct {
	coremetrics.NopSink
	extractions []coremetrics.ExtractionEvent
	low         int
	flushed     bool
}

func (r *recordSink) RecordExtraction(ev coremetrics.ExtractionEvent) error {
	r.extractions = append(r.extractions, ev)
	return nil
}

func (r *recordSink) RecordLowBattery(p []model.LowBatteryPosition) error {
	r.low += len(p)
	return nil
}

func (r *recordSink) Flush() error {
	r.flushed = true
	return nil
}

type failingPublisher struct {
	calls        int
	disconnected bool
}

func (f *failingPublisher) Publish(string, []byte) error {
	f.calls++
	return errors.New("broker down")
}

func (f *failingPublisher) Disconnect() { f.disconnected = true }

func writeInput(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func testConfig(t *testing.T) (*config.Config, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.Extract.Input = writeInput(t, dir, "battery.xml", battery)
	cfg.Extract.Output = filepath.Join(dir, "low.poi.xml")
	cfg.Extract.IDs = "counter"
	cfg.Monitor.Input = cfg.Extract.Input
	cfg.Monitor.Positions = filepath.Join(dir, "positions.csv")
	cfg.Monitor.History = filepath.Join(dir, "history.csv")
	cfg.SetDefaults()
	require.NoError(t, cfg.Validate())
	return cfg, dir
}

func TestServiceExtract(t *testing.T) {
	cfg, _ := testConfig(t)
	sink := &recordSink{}
	svc := newService(cfg, nil, sink, nil)

	st, err := svc.Extract(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, st.Emitted)
	assert.Equal(t, `<additional>
    <poi id="evLow_1" x="30" y="40" color="1,0,0" layer="1"></poi>
    <poi id="evLow_2" x="11" y="21" color="1,0,0" layer="1"></poi>
</additional>
`, readOutput(t, cfg.Extract.Output))

	require.Len(t, sink.extractions, 1)
	assert.Equal(t, "battery.xml", sink.extractions[0].Source)
	assert.Equal(t, 4, sink.extractions[0].Records)

	require.NoError(t, svc.Close())
	assert.True(t, sink.flushed)
}

func TestServiceExtractAlertFailuresAreNotFatal(t *testing.T) {
	cfg, _ := testConfig(t)
	pub := &failingPublisher{}
	svc := newService(cfg, nil, nil, mqtt.NewAlertPublisher(pub, "evs"))

	st, err := svc.Extract(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, st.Emitted)
	// two markers and the run summary
	assert.Equal(t, 3, pub.calls)

	require.NoError(t, svc.Close())
	assert.True(t, pub.disconnected)
}

func TestServiceExtractMissingInput(t *testing.T) {
	cfg, dir := testConfig(t)
	cfg.Extract.Input = filepath.Join(dir, "missing.xml")
	_, err := newService(cfg, nil, nil, nil).Extract(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestServiceMonitor(t *testing.T) {
	cfg, dir := testConfig(t)
	cfg.Monitor.Summary = filepath.Join(dir, "summary.json")
	sink := &recordSink{}
	res, err := newService(cfg, nil, sink, nil).Monitor(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Steps)
	assert.Equal(t, 3, sink.low)

	assert.Equal(t, "vehicle_id,battery_percentage,x_position,y_position\nev2,5,30,40\nev1,10,11,21\nev2,4,31,41\n",
		readOutput(t, cfg.Monitor.Positions))
	assert.Equal(t, "vehicle_id,time,battery_percentage\nev1,0,90\nev1,1,10\nev2,0,5\nev2,1,4\n",
		readOutput(t, cfg.Monitor.History))
	assert.Contains(t, readOutput(t, cfg.Monitor.Summary), `"VehicleID": "ev1"`)
}

func TestServiceSumoConfig(t *testing.T) {
	cfg, dir := testConfig(t)
	cfg.SumoConfig.Net = "city.net.xml"
	cfg.SumoConfig.Routes = []string{"ev.rou.xml"}
	cfg.SumoConfig.Output = filepath.Join(dir, "city.sumo.cfg")
	require.NoError(t, newService(cfg, nil, nil, nil).SumoConfig())
	assert.Contains(t, readOutput(t, cfg.SumoConfig.Output), `<net-file value="city.net.xml"></net-file>`)

	cfg.SumoConfig.Routes = nil
	assert.Error(t, newService(cfg, nil, nil, nil).SumoConfig())
}

func TestServiceChargers(t *testing.T) {
	cfg, dir := testConfig(t)
	cfg.Chargers.Net = writeInput(t, dir, "city.net.xml", network)
	cfg.Chargers.Output = filepath.Join(dir, "stations.add.xml")
	cfg.Chargers.Stations = []model.StationSite{
		{ID: "near_a", Lon: 50, Lat: 5},
		{ID: "near_b", Lon: 50, Lat: 45},
	}
	st, err := newService(cfg, nil, nil, nil).Chargers()
	require.NoError(t, err)
	assert.Equal(t, 2, st.Placed)
	out := readOutput(t, cfg.Chargers.Output)
	assert.Contains(t, out, `<chargingStation id="near_a" lane="a_0" pos="0" connectors="2" power_kW="22">`)
	assert.Contains(t, out, `<chargingStation id="near_b" lane="b_0"`)
}

func TestServiceChargersRequiresNet(t *testing.T) {
	cfg, _ := testConfig(t)
	_, err := newService(cfg, nil, nil, nil).Chargers()
	assert.ErrorContains(t, err, "net file is required")
}

func TestServiceConvert(t *testing.T) {
	cfg, dir := testConfig(t)
	cfg.Convert.Net = writeInput(t, dir, "city.net.xml", strings.Replace(network, `netOffset="0.00,0.00"`, `netOffset="1.00,2.00"`, 1))
	cfg.Convert.Input = writeInput(t, dir, "sites.csv", "name,lon,lat\nhub,3,4\n")
	cfg.Convert.Output = filepath.Join(dir, "mapped.csv")
	n, err := newService(cfg, nil, nil, nil).Convert()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "name,lon,lat,x,y\nhub,3,4,4,6\n", readOutput(t, cfg.Convert.Output))
}

func TestNewWithoutSinks(t *testing.T) {
	cfg, _ := testConfig(t)
	svc, err := New(cfg)
	require.NoError(t, err)
	assert.IsType(t, coremetrics.NopSink{}, svc.sink)
	assert.Nil(t, svc.alerts)
	assert.NoError(t, svc.Close())
}

func TestNewUnknownSink(t *testing.T) {
	cfg, _ := testConfig(t)
	cfg.Metrics.Sinks = append(cfg.Metrics.Sinks, factory.ModuleConfig{Type: "statsd"})
	_, err := New(cfg)
	assert.Error(t, err)
}
