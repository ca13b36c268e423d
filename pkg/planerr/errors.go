package planerr

import "errors"

// ErrDuplicateEdge is returned by linkgraph when an edge already exists
// between two portals in either direction.
var ErrDuplicateEdge = errors.New("planerr: duplicate edge")

// ErrDeadend is returned when a field-build attempt cannot place a required
// link because every outgoing slot at the relevant portals is exhausted and
// no reversible link can free one. It is caught inside the Fielder and
// drives backtracking; it must never escape a Generator.
var ErrDeadend = errors.New("planerr: dead end, no placement possible")

// ErrTriangulationFailed is returned when the Fielder exhausts every random
// permutation of the perimeter without converging on a full triangulation.
// The containing Generator reports an infinite score and is discarded by
// the Optimiser; it is not fatal to the overall plan.
var ErrTriangulationFailed = errors.New("planerr: triangulation did not converge")

// ErrRoutingInfeasible is returned by the Router when no agent assignment
// is possible; it does so only for a non-positive agent count. Fatal for
// the plan.
var ErrRoutingInfeasible = errors.New("planerr: no feasible routing found")

// ErrInternalInvariant indicates a violated structural invariant (e.g. a
// field presented for annotation with fewer than three edges). Indicates a
// bug rather than a recoverable condition; aborts the whole run.
var ErrInternalInvariant = errors.New("planerr: internal invariant violated")

// ErrInputFormat is returned by the portalio collaborator for a malformed
// portal file, and by portal.NewScenario for a portal set that cannot be
// triangulated (fewer than three portals, or a collinear perimeter).
var ErrInputFormat = errors.New("planerr: malformed portal input")
