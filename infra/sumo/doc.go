// Package sumo reads and writes the SUMO XML files used by the evs tools:
// battery-device output, road networks, POI and charging-station additional
// files and simulation configurations.
//
// Readers stream with encoding/xml tokens and skip each element subtree once
// its attributes are read, so memory does not grow with document size.
package sumo
