package planconfig

import (
	"crypto/sha256"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Constants carries the game-rule constants the core's components
// consume. Every field has a spec-mandated default applied by
// Config.Validate when left at its zero value. NFieldAttempts is not read
// by the Fielder, which always uses fielder.NFieldAttempts.
type Constants struct {
	OutgoingLimit     int     `yaml:"outgoing_limit"`
	OutgoingLimitSBUL int     `yaml:"outgoing_limit_sbul"`
	APPerPortal       int     `yaml:"ap_per_portal"`
	APPerLink         int     `yaml:"ap_per_link"`
	APPerField        int     `yaml:"ap_per_field"`
	NFieldAttempts    int     `yaml:"n_field_attempts"`
	NReorderAttempts  int     `yaml:"n_reorder_attempts"`
	WalkSpeedMPS      float64 `yaml:"walk_speed_mps"`
	LinkTimeSeconds   int     `yaml:"link_time_seconds"`
	CommTimeSeconds   int     `yaml:"comm_time_seconds"`
}

// DefaultConstants returns the constants named in the system's
// specification.
func DefaultConstants() Constants {
	return Constants{
		OutgoingLimit:     8,
		OutgoingLimitSBUL: 40,
		APPerPortal:       1750,
		APPerLink:         313,
		APPerField:        1250,
		NFieldAttempts:    100,
		NReorderAttempts:  100,
		WalkSpeedMPS:      1,
		LinkTimeSeconds:   30,
		CommTimeSeconds:   30,
	}
}

// RouterBudget bounds the Agent Router's constrained local search.
type RouterBudget struct {
	MaxSolutions   int `yaml:"max_solutions"`
	MaxRuntimeSecs int `yaml:"max_runtime_seconds"`
}

// Config is the full configuration for one planning run.
type Config struct {
	Seed               uint64       `yaml:"seed"`
	NumAgents          int          `yaml:"num_agents"`
	NumFieldIterations int          `yaml:"num_field_iterations"`
	WorkerPoolSize     int          `yaml:"worker_pool_size"`
	Router             RouterBudget `yaml:"router"`
	Constants          Constants    `yaml:"constants"`
	Verbose            bool         `yaml:"verbose"`
}

// Default returns a Config with every budget and constant at its
// spec-mandated default, one agent, and a worker pool of one, so the
// Generators run sequentially.
func Default() Config {
	return Config{
		NumAgents:          1,
		NumFieldIterations: 100,
		WorkerPoolSize:     1,
		Router:             RouterBudget{MaxSolutions: 100, MaxRuntimeSecs: 60},
		Constants:          DefaultConstants(),
	}
}

// Validate fills in any zero-valued budget/constant with its spec
// default and rejects a configuration that cannot produce a plan.
func (c *Config) Validate() error {
	if c.NumAgents <= 0 {
		return fmt.Errorf("planconfig: num_agents must be positive, got %d", c.NumAgents)
	}
	if c.NumFieldIterations <= 0 {
		c.NumFieldIterations = 100
	}
	if c.WorkerPoolSize <= 0 {
		c.WorkerPoolSize = 1
	}
	if c.Router.MaxSolutions <= 0 {
		c.Router.MaxSolutions = 100
	}
	if c.Router.MaxRuntimeSecs <= 0 {
		c.Router.MaxRuntimeSecs = 60
	}

	defaults := DefaultConstants()
	if c.Constants.OutgoingLimit <= 0 {
		c.Constants.OutgoingLimit = defaults.OutgoingLimit
	}
	if c.Constants.OutgoingLimitSBUL <= 0 {
		c.Constants.OutgoingLimitSBUL = defaults.OutgoingLimitSBUL
	}
	if c.Constants.APPerPortal <= 0 {
		c.Constants.APPerPortal = defaults.APPerPortal
	}
	if c.Constants.APPerLink <= 0 {
		c.Constants.APPerLink = defaults.APPerLink
	}
	if c.Constants.APPerField <= 0 {
		c.Constants.APPerField = defaults.APPerField
	}
	if c.Constants.NFieldAttempts <= 0 {
		c.Constants.NFieldAttempts = defaults.NFieldAttempts
	}
	if c.Constants.NReorderAttempts <= 0 {
		c.Constants.NReorderAttempts = defaults.NReorderAttempts
	}
	if c.Constants.WalkSpeedMPS <= 0 {
		c.Constants.WalkSpeedMPS = defaults.WalkSpeedMPS
	}
	if c.Constants.LinkTimeSeconds <= 0 {
		c.Constants.LinkTimeSeconds = defaults.LinkTimeSeconds
	}
	if c.Constants.CommTimeSeconds <= 0 {
		c.Constants.CommTimeSeconds = defaults.CommTimeSeconds
	}
	if c.Constants.OutgoingLimitSBUL < c.Constants.OutgoingLimit {
		return fmt.Errorf("planconfig: outgoing_limit_sbul (%d) must be >= outgoing_limit (%d)",
			c.Constants.OutgoingLimitSBUL, c.Constants.OutgoingLimit)
	}
	return nil
}

// Hash returns a SHA-256 digest of the YAML-serialised configuration,
// used to derive independent, reproducible per-stage RNG seeds (see
// pkg/rng).
func (c *Config) Hash() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("planconfig: marshaling config for hash: %w", err)
	}
	sum := sha256.Sum256(data)
	return sum[:], nil
}

// ToYAML serialises the config for persistence by an external
// collaborator.
func (c *Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// FromYAML parses a YAML-encoded configuration.
func FromYAML(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("planconfig: parsing config: %w", err)
	}
	return &c, nil
}
