package planconfig_test

import (
	"testing"

	"github.com/dshills/fieldplan/pkg/planconfig"
)

func TestValidateFillsDefaults(t *testing.T) {
	c := planconfig.Config{NumAgents: 2}
	if err := c.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.NumFieldIterations != 100 || c.WorkerPoolSize != 1 {
		t.Fatalf("expected defaults filled in, got %+v", c)
	}
	if c.Constants.OutgoingLimit != 8 || c.Constants.OutgoingLimitSBUL != 40 {
		t.Fatalf("expected default outgoing limits, got %+v", c.Constants)
	}
}

func TestValidateRejectsZeroAgents(t *testing.T) {
	c := planconfig.Config{NumAgents: 0}
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for zero agents")
	}
}

func TestValidateRejectsInvertedOutgoingLimits(t *testing.T) {
	c := planconfig.Config{NumAgents: 1}
	c.Constants.OutgoingLimit = 40
	c.Constants.OutgoingLimitSBUL = 8
	if err := c.Validate(); err == nil {
		t.Fatal("expected error when SBUL limit is below base limit")
	}
}

func TestHashIsDeterministicAndSensitiveToContent(t *testing.T) {
	a := planconfig.Default()
	b := planconfig.Default()
	ha, err := a.Hash()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hb, err := b.Hash()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(ha) != string(hb) {
		t.Fatal("expected identical configs to hash identically")
	}

	c := planconfig.Default()
	c.NumAgents = 5
	hc, err := c.Hash()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(ha) == string(hc) {
		t.Fatal("expected differing configs to hash differently")
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	c := planconfig.Default()
	c.Seed = 42
	c.NumAgents = 3

	data, err := c.ToYAML()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parsed, err := planconfig.FromYAML(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Seed != 42 || parsed.NumAgents != 3 {
		t.Fatalf("round trip lost data: %+v", parsed)
	}
}
