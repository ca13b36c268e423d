package geometry

import (
	"math"
	"sort"
)

// EarthRadiusMeters is the fixed sphere radius used for all spherical
// distance and gnomonic-projection calculations.
const EarthRadiusMeters = 6371000.0

// LatLon is a geographic coordinate in degrees.
type LatLon struct {
	LonDeg float64
	LatDeg float64
}

// Point is a planar coordinate produced by a projection.
type Point struct {
	X float64
	Y float64
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// SphericalDistance returns the great-circle distance between a and b in
// meters, using the Vincenty formula for a sphere of radius
// EarthRadiusMeters (equal major/minor axes).
func SphericalDistance(a, b LatLon) float64 {
	lat1, lon1 := toRadians(a.LatDeg), toRadians(a.LonDeg)
	lat2, lon2 := toRadians(b.LatDeg), toRadians(b.LonDeg)

	dlon := lon2 - lon1
	cosLon := math.Cos(dlon)
	sinLon := math.Sin(dlon)
	cosLat1, sinLat1 := math.Cos(lat1), math.Sin(lat1)
	cosLat2, sinLat2 := math.Cos(lat2), math.Sin(lat2)

	numer := math.Hypot(cosLat2*sinLon, cosLat1*sinLat2-sinLat1*cosLat2*cosLon)
	denom := sinLat1*sinLat2 + cosLat1*cosLat2*cosLon
	angle := math.Atan2(numer, denom)
	return EarthRadiusMeters * angle
}

// DistanceMatrix computes the symmetric N×N matrix of integer-metre
// great-circle distances between every pair of points, rounded to the
// nearest metre, with zeros on the diagonal.
func DistanceMatrix(points []LatLon) [][]int {
	n := len(points)
	m := make([][]int, n)
	for i := range m {
		m[i] = make([]int, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := int(math.Round(SphericalDistance(points[i], points[j])))
			m[i][j] = d
			m[j][i] = d
		}
	}
	return m
}

// GnomonicProject converts geographic coordinates to planar (x, y) via the
// gnomonic projection, centred on the midpoint of the coordinates'
// bounding box. Correctness is only guaranteed for a region small enough
// that every point lies on the same hemisphere relative to the centre.
func GnomonicProject(points []LatLon) []Point {
	if len(points) == 0 {
		return nil
	}
	minLon, maxLon := points[0].LonDeg, points[0].LonDeg
	minLat, maxLat := points[0].LatDeg, points[0].LatDeg
	for _, p := range points {
		minLon, maxLon = math.Min(minLon, p.LonDeg), math.Max(maxLon, p.LonDeg)
		minLat, maxLat = math.Min(minLat, p.LatDeg), math.Max(maxLat, p.LatDeg)
	}
	lonC := toRadians(minLon + (maxLon-minLon)/2.0)
	latC := toRadians(minLat + (maxLat-minLat)/2.0)
	cosLatC, sinLatC := math.Cos(latC), math.Sin(latC)

	out := make([]Point, len(points))
	for i, p := range points {
		lat := toRadians(p.LatDeg)
		lon := toRadians(p.LonDeg)
		cosLat, sinLat := math.Cos(lat), math.Sin(lat)
		dLon := lon - lonC
		cosC := sinLatC*sinLat + cosLatC*cosLat*math.Cos(dLon)
		x := EarthRadiusMeters * cosLat * math.Sin(dLon) / cosC
		y := EarthRadiusMeters * (cosLatC*sinLat - sinLatC*cosLat*math.Cos(dLon)) / cosC
		out[i] = Point{X: x, Y: y}
	}
	return out
}

// WebMercatorResult carries the rendering-only web-mercator projection plus
// the derived zoom level and centre coordinate for a 640x640px map image.
type WebMercatorResult struct {
	Points []Point
	Zoom   int
	Center LatLon
}

// WebMercatorProject converts geographic coordinates to planar (x, y) via
// the web-mercator projection, choosing the largest zoom level (0-20) that
// fits every point within a 640x640 pixel frame, and centring the frame on
// the points. This exists only to satisfy the External Interfaces contract
// for downstream renderers; the core does not consume it.
func WebMercatorProject(points []LatLon) WebMercatorResult {
	if len(points) == 0 {
		return WebMercatorResult{}
	}
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		lon := toRadians(p.LonDeg)
		lat := toRadians(p.LatDeg)
		xs[i] = 256.0 / (2.0 * math.Pi) * (lon + math.Pi)
		ys[i] = 256.0 / (2.0 * math.Pi) * (math.Pi - math.Log(math.Tan(math.Pi/4.0+lat/2.0)))
	}
	xmin, ymax := xs[0], ys[0]
	for i := range xs {
		xmin = math.Min(xmin, xs[i])
		ymax = math.Max(ymax, ys[i])
	}
	for i := range xs {
		xs[i] -= xmin
		ys[i] = ymax - ys[i]
	}

	zoom := 1
	for z := 20; z >= 0; z-- {
		scale := math.Pow(2, float64(z))
		fits := true
		for i := range xs {
			if xs[i]*scale >= 640.0 || ys[i]*scale >= 640.0 {
				fits = false
				break
			}
		}
		if fits {
			zoom = z
			break
		}
	}
	scale := math.Pow(2, float64(zoom))
	maxX, maxY := 0.0, 0.0
	for i := range xs {
		xs[i] *= scale
		ys[i] *= scale
		maxX = math.Max(maxX, xs[i])
		maxY = math.Max(maxY, ys[i])
	}
	xpad := (640.0 - maxX) / 2.0
	ypad := (640.0 - maxY) / 2.0
	out := make([]Point, len(points))
	for i := range xs {
		out[i] = Point{X: xs[i] + xpad, Y: ys[i] + ypad}
	}

	centerLon := math.Pi/128.0*((320.0-xpad)/scale+xmin) - math.Pi
	centerLatRad := math.Pi - math.Pi/128.0*(ymax-(320.0-ypad)/scale)
	centerLat := 2.0*math.Atan(math.Exp(centerLatRad)) - math.Pi/2.0

	return WebMercatorResult{
		Points: out,
		Zoom:   zoom,
		Center: LatLon{LonDeg: centerLon * 180.0 / math.Pi, LatDeg: centerLat * 180.0 / math.Pi},
	}
}

// PointInTriangle reports whether p lies strictly interior to the triangle
// (a, b, c), using signed barycentric coordinates with the sign fixed by
// the triangle's signed area. Boundary points are classified as exterior
// (open, strict interior only).
func PointInTriangle(p, a, b, c Point) bool {
	area := 0.5 * (-b.Y*c.X + a.Y*(-b.X+c.X) + a.X*(b.Y-c.Y) + b.X*c.Y)
	sign := 1.0
	if area < 0 {
		sign = -1.0
	}
	s := sign * (a.Y*c.X - a.X*c.Y + (c.Y-a.Y)*p.X + (a.X-c.X)*p.Y)
	t := sign * (a.X*b.Y - a.Y*b.X + (a.Y-b.Y)*p.X + (b.X-a.X)*p.Y)
	if s <= 0 || t <= 0 {
		return false
	}
	return s+t < 2*area*sign
}

// ConvexHull returns the indices of points forming the convex hull of pts,
// in counter-clockwise order, computed via the Andrew monotone-chain scan.
// Collinear boundary points are excluded from the result (only true
// vertices are returned).
func ConvexHull(pts []Point) []int {
	n := len(pts)
	if n < 3 {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := pts[order[i]], pts[order[j]]
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	})

	cross := func(o, a, b int) float64 {
		return (pts[a].X-pts[o].X)*(pts[b].Y-pts[o].Y) - (pts[a].Y-pts[o].Y)*(pts[b].X-pts[o].X)
	}

	buildHalf := func(seq []int) []int {
		hull := make([]int, 0, len(seq))
		for _, p := range seq {
			for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
				hull = hull[:len(hull)-1]
			}
			hull = append(hull, p)
		}
		return hull
	}

	lower := buildHalf(order)

	upperOrder := make([]int, n)
	for i, v := range order {
		upperOrder[n-1-i] = v
	}
	upper := buildHalf(upperOrder)

	hull := append(lower[:len(lower)-1], upper[:len(upper)-1]...)
	return hull
}
