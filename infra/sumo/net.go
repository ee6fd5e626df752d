package sumo

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/paulmach/orb"

	"github.com/ashishpoonia369/EVs/core/lane"
)

// Location is the <location> element of a network file.
type Location struct {
	NetOffset     [2]float64
	ProjParameter string
}

// Network is the part of a .net.xml needed to place objects on lanes.
type Network struct {
	Location Location
	Lanes    []lane.Lane
}

// ReadNet streams a SUMO network and collects its location and lane shapes.
// A lane without a shape takes the shape of its edge.
func ReadNet(r io.Reader) (*Network, error) {
	dec := xml.NewDecoder(bufio.NewReader(r))
	net := &Network{}
	var edgeID string
	var edgeShape orb.LineString
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return net, nil
		}
		if err != nil {
			return nil, fmt.Errorf("network: %w", err)
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "location":
				if err := readLocation(el, &net.Location); err != nil {
					return nil, err
				}
				if err := dec.Skip(); err != nil {
					return nil, fmt.Errorf("network: %w", err)
				}
			case "edge":
				edgeID = attr(el, "id")
				edgeShape, err = parseShape(attr(el, "shape"))
				if err != nil {
					return nil, fmt.Errorf("edge %s: %w", edgeID, err)
				}
			case "lane":
				id := attr(el, "id")
				shape, err := parseShape(attr(el, "shape"))
				if err != nil {
					return nil, fmt.Errorf("lane %s: %w", id, err)
				}
				if len(shape) == 0 {
					shape = edgeShape
				}
				net.Lanes = append(net.Lanes, lane.Lane{ID: id, Edge: edgeID, Shape: shape})
				if err := dec.Skip(); err != nil {
					return nil, fmt.Errorf("network: %w", err)
				}
			}
		case xml.EndElement:
			if el.Name.Local == "edge" {
				edgeID, edgeShape = "", nil
			}
		}
	}
}

func readLocation(el xml.StartElement, loc *Location) error {
	loc.ProjParameter = attr(el, "projParameter")
	if off := attr(el, "netOffset"); off != "" {
		pts, err := parseFloatList(off)
		if err != nil || len(pts) != 1 {
			return fmt.Errorf("invalid netOffset %q", off)
		}
		loc.NetOffset = pts[0]
	}
	return nil
}

func parseShape(s string) (orb.LineString, error) {
	pts, err := parseFloatList(s)
	if err != nil {
		return nil, err
	}
	if len(pts) == 0 {
		return nil, nil
	}
	ls := make(orb.LineString, len(pts))
	for i, p := range pts {
		ls[i] = orb.Point{p[0], p[1]}
	}
	return ls, nil
}
