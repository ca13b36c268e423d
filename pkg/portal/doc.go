// Package portal holds the data model shared by every stage of the field
// planning pipeline: the raw Portal record ingested from a portal file, its
// projected planar coordinates, the pairwise distance matrix, and the
// Scenario that bundles all three plus the convex-hull perimeter used by
// the Fielder as its outermost recursion boundary.
package portal
