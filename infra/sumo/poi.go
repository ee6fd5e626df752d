package sumo

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/ashishpoonia369/EVs/core/model"
)

const elemAdditional = "additional"

// POIWriter writes markers as a SUMO additional file of <poi> elements. The
// root is opened by NewPOIWriter and closed by Close, so a run without
// markers still yields a well-formed document.
type POIWriter struct {
	bw     *bufio.Writer
	enc    *xml.Encoder
	count  int
	closed bool
}

// NewPOIWriter writes the opening root tag to w.
func NewPOIWriter(w io.Writer) (*POIWriter, error) {
	bw := bufio.NewWriter(w)
	enc := xml.NewEncoder(bw)
	enc.Indent("", "    ")
	if err := enc.EncodeToken(xml.StartElement{Name: xml.Name{Local: elemAdditional}}); err != nil {
		return nil, err
	}
	return &POIWriter{bw: bw, enc: enc}, nil
}

// Emit implements extract.Sink.
func (p *POIWriter) Emit(m model.Marker) error {
	if p.closed {
		return fmt.Errorf("poi writer closed")
	}
	start := xml.StartElement{Name: xml.Name{Local: "poi"}, Attr: poiAttrs(m)}
	if err := p.enc.EncodeToken(start); err != nil {
		return err
	}
	if err := p.enc.EncodeToken(start.End()); err != nil {
		return err
	}
	p.count++
	return nil
}

// Count returns the number of markers written.
func (p *POIWriter) Count() int { return p.count }

// Close writes the closing root tag and flushes. It does not close the
// underlying writer.
func (p *POIWriter) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	if err := p.enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: elemAdditional}}); err != nil {
		return err
	}
	if err := p.enc.Flush(); err != nil {
		return err
	}
	if _, err := p.bw.WriteString("\n"); err != nil {
		return err
	}
	return p.bw.Flush()
}

func poiAttrs(m model.Marker) []xml.Attr {
	attrs := []xml.Attr{
		{Name: xml.Name{Local: "id"}, Value: m.ID},
		{Name: xml.Name{Local: "x"}, Value: formatFloat(m.X)},
		{Name: xml.Name{Local: "y"}, Value: formatFloat(m.Y)},
		{Name: xml.Name{Local: "color"}, Value: m.Style.Color},
		{Name: xml.Name{Local: "layer"}, Value: strconv.Itoa(m.Style.Layer)},
	}
	if m.Style.Width > 0 {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "width"}, Value: formatFloat(m.Style.Width)})
	}
	if m.Style.Height > 0 {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "height"}, Value: formatFloat(m.Style.Height)})
	}
	return attrs
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
