package geo

import (
	"math"

	"github.com/wroge/wgs84"
)

const (
	// inverseTolerance is the residual in metres at which ToLonLat stops
	// refining.
	inverseTolerance = 1e-6
	inverseMaxSteps  = 5
	jacobianStep     = 1e-6
)

// UTM is a WGS84 UTM projection in a fixed zone followed by the SUMO net
// offset.
type UTM struct {
	Zone    int
	South   bool
	OffsetX float64
	OffsetY float64
}

func (u *UTM) crs() wgs84.ProjectedReferenceSystem {
	return wgs84.UTM(float64(u.Zone), !u.South)
}

func (u *UTM) project(lon, lat float64) (float64, float64) {
	x, y, _ := wgs84.LonLat().To(u.crs())(lon, lat, 0)
	return x, y
}

// ToXY projects lon/lat (degrees) to network coordinates.
func (u *UTM) ToXY(lon, lat float64) (float64, float64) {
	x, y := u.project(lon, lat)
	return x + u.OffsetX, y + u.OffsetY
}

// ToLonLat inverts ToXY. The library inverse is only a starting point; it is
// refined with Newton steps against the forward projection so that a round
// trip returns the input.
func (u *UTM) ToLonLat(x, y float64) (float64, float64) {
	x -= u.OffsetX
	y -= u.OffsetY
	lon, lat, _ := u.crs().To(wgs84.LonLat())(x, y, 0)
	for i := 0; i < inverseMaxSteps; i++ {
		fx, fy := u.project(lon, lat)
		dx, dy := x-fx, y-fy
		if math.Abs(dx) < inverseTolerance && math.Abs(dy) < inverseTolerance {
			break
		}
		ax, ay := u.project(lon+jacobianStep, lat)
		bx, by := u.project(lon, lat+jacobianStep)
		j11, j21 := (ax-fx)/jacobianStep, (ay-fy)/jacobianStep
		j12, j22 := (bx-fx)/jacobianStep, (by-fy)/jacobianStep
		det := j11*j22 - j12*j21
		if det == 0 {
			break
		}
		lon += (dx*j22 - dy*j12) / det
		lat += (dy*j11 - dx*j21) / det
	}
	return lon, lat
}
