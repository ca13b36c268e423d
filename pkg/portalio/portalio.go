package portalio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dshills/fieldplan/pkg/planerr"
	"github.com/dshills/fieldplan/pkg/portal"
)

// Logf receives a formatted warning message (duplicate-coordinate skips,
// inbound portals). Pass nil to discard warnings.
type Logf func(format string, args ...interface{})

// ReadPortals parses the portal-file format from r: UTF-8 text, one
// portal per line, fields separated by ';'. Lines beginning with '#' or
// blank are skipped; '#' also ends a line as an inline comment. The first
// field is the portal name; the rest are unordered and identified by
// content (an Intel "pll=" URL, a bare key count, or the sbul/inbound/
// undefined tokens).
func ReadPortals(r io.Reader, warn Logf) ([]portal.Portal, error) {
	if warn == nil {
		warn = func(string, ...interface{}) {}
	}

	var portals []portal.Portal
	seenCoords := make(map[[2]float64]string)
	haveInbound := false

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		p, err := parseLine(line, &haveInbound)
		if err != nil {
			return nil, fmt.Errorf("portal file line %d: %w: %v", lineNo, planerr.ErrInputFormat, err)
		}

		coord := [2]float64{p.LonDeg, p.LatDeg}
		if existing, dup := seenCoords[coord]; dup {
			warn("line %d: portal %q has the same coordinates as %q, skipping", lineNo, p.Name, existing)
			continue
		}
		seenCoords[coord] = p.Name
		if p.Inbound {
			warn("line %d: portal %q is marked inbound; the flag is recognised but not enforced", lineNo, p.Name)
		}

		portals = append(portals, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading portal file: %w", err)
	}

	return portals, nil
}

func parseLine(line string, haveInbound *bool) (portal.Portal, error) {
	fields := strings.Split(line, ";")
	name := strings.TrimSpace(fields[0])

	var (
		lon, lat      float64
		haveCoord     bool
		keys          int
		haveKeys      bool
		sbul, inbound bool
	)

	for _, raw := range fields[1:] {
		field := strings.TrimSpace(raw)
		if field == "" {
			continue
		}

		switch {
		case strings.Contains(field, "pll="):
			if haveCoord {
				return portal.Portal{}, fmt.Errorf("multiple pll= coordinate fields")
			}
			lat2, lon2, err := parsePLL(field)
			if err != nil {
				return portal.Portal{}, err
			}
			lat, lon, haveCoord = lat2, lon2, true

		case strings.EqualFold(field, "sbul"):
			if sbul {
				return portal.Portal{}, fmt.Errorf("multiple sbul tokens")
			}
			sbul = true

		case strings.EqualFold(field, "inbound"):
			if inbound {
				return portal.Portal{}, fmt.Errorf("multiple inbound tokens")
			}
			inbound = true

		case field == "undefined":
			// explicitly ignored

		default:
			if n, err := strconv.Atoi(field); err == nil && n >= 0 {
				if haveKeys {
					return portal.Portal{}, fmt.Errorf("multiple key-count fields")
				}
				keys, haveKeys = n, true
				continue
			}
			return portal.Portal{}, fmt.Errorf("unrecognized field %q", field)
		}
	}

	if !haveCoord {
		return portal.Portal{}, fmt.Errorf("missing pll= coordinate field")
	}
	if sbul && inbound {
		return portal.Portal{}, fmt.Errorf("sbul and inbound cannot both be set on one portal")
	}
	if inbound {
		if *haveInbound {
			return portal.Portal{}, fmt.Errorf("more than one inbound portal in plan")
		}
		*haveInbound = true
	}

	return portal.Portal{
		Name:    name,
		LonDeg:  lon,
		LatDeg:  lat,
		Keys:    keys,
		SBUL:    sbul,
		Inbound: inbound,
	}, nil
}

// parsePLL extracts the comma-separated (latitude, longitude) pair that
// follows the "pll=" marker in an Intel map URL field.
func parsePLL(field string) (lat, lon float64, err error) {
	idx := strings.Index(field, "pll=")
	rest := field[idx+len("pll="):]
	if amp := strings.IndexByte(rest, '&'); amp >= 0 {
		rest = rest[:amp]
	}
	parts := strings.Split(rest, ",")
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("malformed pll= value %q", field)
	}
	lat, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed pll= latitude in %q: %w", field, err)
	}
	lon, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed pll= longitude in %q: %w", field, err)
	}
	return lat, lon, nil
}
