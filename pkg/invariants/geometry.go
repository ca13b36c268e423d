package invariants

import (
	"math"

	"github.com/dshills/fieldplan/pkg/geometry"
)

// GnomonicDistanceRelativeError compares the planar distance between two
// gnomonic-projected points (already in metres, as GnomonicProject returns
// them) against their true great-circle distance, returning the relative
// error. The gnomonic
// projection is only locally accurate near its center; this quantifies how
// far that local accuracy has degraded for a given pair of points.
func GnomonicDistanceRelativeError(a, b geometry.LatLon, gnoA, gnoB geometry.Point) float64 {
	spherical := geometry.SphericalDistance(a, b)
	if spherical == 0 {
		return 0
	}
	planar := math.Hypot(gnoA.X-gnoB.X, gnoA.Y-gnoB.Y)
	return math.Abs(planar-spherical) / spherical
}
