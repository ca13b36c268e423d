// Package planerr defines the sentinel error kinds raised by the field
// planning pipeline (portal, portalio, linkgraph, field, fielder, planner,
// router). Errors are plain values wrapped with fmt.Errorf("...: %w", Err),
// never panics, so callers can use errors.Is to branch on kind.
package planerr
