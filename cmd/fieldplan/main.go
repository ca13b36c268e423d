package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dshills/fieldplan/pkg/planconfig"
	"github.com/dshills/fieldplan/pkg/planner"
	"github.com/dshills/fieldplan/pkg/portal"
	"github.com/dshills/fieldplan/pkg/portalio"
	"github.com/dshills/fieldplan/pkg/rng"
	"github.com/dshills/fieldplan/pkg/router"

	"flag"
)

const version = "1.0.0"

// CLI flags
var (
	portalsPath = flag.String("portals", "", "Path to the portal file (required)")
	configPath  = flag.String("config", "", "Path to YAML configuration file (optional, uses defaults otherwise)")
	seedFlag    = flag.Uint64("seed", 0, "Override the seed from config (0 = use config seed)")
	agentsFlag  = flag.Int("agents", 0, "Override the agent count from config (0 = use config value)")
	verbose     = flag.Bool("verbose", false, "Enable verbose output")
	versionF    = flag.Bool("version", false, "Print version and exit")
	help        = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *versionF {
		fmt.Printf("fieldplan version %s\n", version)
		os.Exit(0)
	}
	if *help {
		printHelp()
		os.Exit(0)
	}
	if *portalsPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -portals flag is required")
		printUsage()
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if *seedFlag != 0 {
		cfg.Seed = *seedFlag
	}
	if *agentsFlag > 0 {
		cfg.NumAgents = *agentsFlag
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if *verbose {
		fmt.Printf("Loading portals from %s\n", *portalsPath)
	}
	portals, err := loadPortals()
	if err != nil {
		return err
	}

	sc, err := portal.NewScenario(portals)
	if err != nil {
		return fmt.Errorf("building scenario: %w", err)
	}

	if *verbose {
		fmt.Printf("Using seed: %d\n", cfg.Seed)
		fmt.Printf("Portals: %d, agents: %d, field iterations: %d\n",
			len(sc.Portals), cfg.NumAgents, cfg.NumFieldIterations)
	}

	configHash, err := cfg.Hash()
	if err != nil {
		return fmt.Errorf("hashing configuration: %w", err)
	}

	start := time.Now()
	if *verbose {
		fmt.Printf("Generating fields with %d worker(s)...\n", cfg.WorkerPoolSize)
	}
	result, err := planner.Optimise(sc, *cfg, cfg.Seed, configHash)
	if err != nil {
		return fmt.Errorf("field generation failed: %w", err)
	}
	if *verbose {
		fmt.Printf("Field generation runtime: %v\n", time.Since(start))
	}

	routerRNG := rng.NewRNG(cfg.Seed, "router", configHash)
	assignments, err := router.Route(result.Graph, sc.Distances, cfg.NumAgents, cfg.Router, cfg.Constants, routerRNG)
	if err != nil {
		return fmt.Errorf("agent routing failed: %w", err)
	}

	printResults(sc, result, assignments)
	return nil
}

func loadConfig() (*planconfig.Config, error) {
	if *configPath == "" {
		cfg := planconfig.Default()
		return &cfg, nil
	}
	data, err := os.ReadFile(*configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return planconfig.FromYAML(data)
}

func loadPortals() ([]portal.Portal, error) {
	f, err := os.Open(*portalsPath)
	if err != nil {
		return nil, fmt.Errorf("opening portal file: %w", err)
	}
	defer f.Close()

	warn := func(format string, args ...interface{}) {
		fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
	}
	portals, err := portalio.ReadPortals(f, warn)
	if err != nil {
		return nil, fmt.Errorf("parsing portal file: %w", err)
	}
	return portals, nil
}

func printResults(sc *portal.Scenario, result planner.PlanResult, assignments []router.Assignment) {
	s := result.Summary(len(sc.Portals))
	fmt.Println("==============================")
	fmt.Println("Fieldplan Results:")
	fmt.Printf("    portals         = %d\n", s.NumPortals)
	fmt.Printf("    links           = %d\n", s.NumLinks)
	fmt.Printf("    fields          = %d\n", s.NumFields)
	fmt.Printf("    max keys needed = %d\n", s.MaxKeys)
	fmt.Printf("    AP from portals = %d\n", s.APPortals)
	fmt.Printf("    AP from links   = %d\n", s.APLinks)
	fmt.Printf("    AP from fields  = %d\n", s.APFields)
	fmt.Printf("    TOTAL AP        = %d\n", s.APTotal)
	fmt.Println("==============================")

	if *verbose {
		fmt.Println("\nAgent assignments (sorted by arrival time):")
		for _, a := range assignments {
			fmt.Printf("  agent %d: at %s, arrive=%ds, throw link to %s, depart=%ds\n",
				a.Agent, sc.Portals[a.Location].Name, a.Arrive, sc.Portals[a.Link].Name, a.Depart)
		}
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "\nUsage: fieldplan -portals <portals.txt> [options]")
	fmt.Fprintln(os.Stderr, "\nRun 'fieldplan -help' for detailed help")
}

func printHelp() {
	fmt.Printf("fieldplan version %s\n\n", version)
	fmt.Println("A command-line tool for planning Ingress portal fielding operations.")
	fmt.Println("\nUsage:")
	fmt.Println("  fieldplan -portals <portals.txt> [options]")
	fmt.Println("\nRequired Flags:")
	fmt.Println("  -portals string")
	fmt.Println("        Path to the portal file")
	fmt.Println("\nOptional Flags:")
	fmt.Println("  -config string")
	fmt.Println("        Path to YAML configuration file (default: built-in defaults)")
	fmt.Println("  -seed uint")
	fmt.Println("        Override the seed from config (0 = use config seed) (default: 0)")
	fmt.Println("  -agents int")
	fmt.Println("        Override the agent count from config (0 = use config value)")
	fmt.Println("  -verbose")
	fmt.Println("        Enable verbose output, including the per-agent schedule")
	fmt.Println("  -version")
	fmt.Println("        Print version and exit")
	fmt.Println("  -help")
	fmt.Println("        Show this help message")
	fmt.Println("\nExamples:")
	fmt.Println("  # Plan a fielding operation with default settings")
	fmt.Println("  fieldplan -portals portals.txt")
	fmt.Println("\n  # Plan with a custom config and a fixed seed")
	fmt.Println("  fieldplan -portals portals.txt -config plan.yaml -seed 12345")
	fmt.Println("\n  # Plan for a two-agent team, printing the walking schedule")
	fmt.Println("  fieldplan -portals portals.txt -agents 2 -verbose")
	fmt.Println("\nPortal File:")
	fmt.Println("  A semicolon-delimited export of portal names, pll= coordinates,")
	fmt.Println("  keys in hand, and sbul/inbound flags, one portal per line.")
	fmt.Println("  See the project documentation for the exact file format.")
}
