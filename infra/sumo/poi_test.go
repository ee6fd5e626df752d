package sumo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashishpoonia369/EVs/core/model"
)

func TestPOIWriterEmpty(t *testing.T) {
	var out strings.Builder
	w, err := NewPOIWriter(&out)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.Equal(t, "<additional></additional>\n", out.String())
	assert.Equal(t, 0, w.Count())
}

func TestPOIWriterLargeProfile(t *testing.T) {
	var out strings.Builder
	w, err := NewPOIWriter(&out)
	require.NoError(t, err)
	style, err := model.StyleProfile("large")
	require.NoError(t, err)
	require.NoError(t, w.Emit(model.Marker{ID: "evLow_ab12cd34", VehicleID: "veh0", X: 101.25, Y: -3.5, Style: style}))
	require.NoError(t, w.Close())

	assert.Equal(t, `<additional>
    <poi id="evLow_ab12cd34" x="101.25" y="-3.5" color="1,0,0" layer="1" width="50" height="50"></poi>
</additional>
`, out.String())
	assert.NotContains(t, out.String(), "veh0")
	assert.Equal(t, 1, w.Count())
}

func TestPOIWriterEmitAfterClose(t *testing.T) {
	var out strings.Builder
	w, err := NewPOIWriter(&out)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.Error(t, w.Emit(model.Marker{ID: "x"}))
	assert.NoError(t, w.Close())
}

func TestPOIWriterEscapesAttributes(t *testing.T) {
	var out strings.Builder
	w, err := NewPOIWriter(&out)
	require.NoError(t, err)
	require.NoError(t, w.Emit(model.Marker{ID: `a"<b`, Style: model.Style{Color: "1,0,0", Layer: 1}}))
	require.NoError(t, w.Close())
	assert.Contains(t, out.String(), `id="a&#34;&lt;b"`)
}
