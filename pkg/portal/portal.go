package portal

import (
	"fmt"

	"github.com/dshills/fieldplan/pkg/geometry"
	"github.com/dshills/fieldplan/pkg/planerr"
)

// Portal is a single waypoint ingested from a portal file. It is immutable
// for the lifetime of a Scenario; the planning pipeline never mutates a
// Portal's identity or coordinates, only the link graph built around it.
type Portal struct {
	Name    string
	LonDeg  float64
	LatDeg  float64
	Keys    int
	SBUL    bool
	Inbound bool
}

// OutgoingLimit returns the maximum number of outbound links this portal
// may originate, which depends only on whether it has a Simple/Standard
// Burster Upgrade Link (SBUL) deployed.
func (p Portal) OutgoingLimit() int {
	if p.SBUL {
		return OutgoingLimitSBUL
	}
	return OutgoingLimit
}

const (
	// OutgoingLimit is the number of outbound links a portal may originate
	// without an SBUL.
	OutgoingLimit = 8
	// OutgoingLimitSBUL is the number of outbound links a portal may
	// originate once an SBUL has been deployed on it.
	OutgoingLimitSBUL = 40
)

// Scenario bundles the raw portals with every coordinate-derived artifact
// the rest of the pipeline needs: the great-circle distance matrix, the
// gnomonic projection used for planar geometry, the web-mercator
// projection used only by downstream renderers, and the convex-hull
// perimeter that bounds the Fielder's outermost recursion.
type Scenario struct {
	Portals   []Portal
	Distances [][]int
	Gnomonic  []geometry.Point
	Mercator  geometry.WebMercatorResult
	Perimeter []int
}

// NewScenario derives every projection and matrix from portals and
// validates the result is usable for triangulation: at least three
// portals, and a non-degenerate (non-collinear) perimeter.
func NewScenario(portals []Portal) (*Scenario, error) {
	if len(portals) < 3 {
		return nil, fmt.Errorf("scenario needs at least 3 portals, got %d: %w", len(portals), planerr.ErrInputFormat)
	}

	latlons := make([]geometry.LatLon, len(portals))
	for i, p := range portals {
		latlons[i] = geometry.LatLon{LonDeg: p.LonDeg, LatDeg: p.LatDeg}
	}

	gno := geometry.GnomonicProject(latlons)
	perim := geometry.ConvexHull(gno)
	if len(perim) < 3 {
		return nil, fmt.Errorf("portals are collinear, no triangulation possible: %w", planerr.ErrInputFormat)
	}

	return &Scenario{
		Portals:   portals,
		Distances: geometry.DistanceMatrix(latlons),
		Gnomonic:  gno,
		Mercator:  geometry.WebMercatorProject(latlons),
		Perimeter: perim,
	}, nil
}
