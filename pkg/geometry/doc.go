// Package geometry provides the spherical-distance, gnomonic and
// web-mercator projections, convex hull, and point-in-triangle predicate
// that every other package in this module builds on.
//
// All planar predicates (point-in-triangle, convex hull, field splitting)
// operate in gnomonic (x, y) coordinates, which are only valid over a
// region small enough that every portal lies on one hemisphere relative to
// the projection centre — the same restriction the reference
// implementation carries.
package geometry
