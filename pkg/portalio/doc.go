// Package portalio parses the portal-file external interface described in
// the field-planning system's contract: a UTF-8, semicolon-delimited,
// one-portal-per-line format carrying an Intel "pll=" coordinate URL, an
// optional key count, and the sbul/inbound/undefined tokens. It is a thin
// collaborator, deliberately kept outside the core pipeline — the core
// only ever sees fully-parsed portal.Portal values.
package portalio
