package router

import (
	"fmt"
	"sort"
	"time"

	"github.com/dshills/fieldplan/pkg/linkgraph"
	"github.com/dshills/fieldplan/pkg/planconfig"
	"github.com/dshills/fieldplan/pkg/planerr"
	"github.com/dshills/fieldplan/pkg/rng"
)

// Assignment is one agent's visit to a portal to throw one link.
type Assignment struct {
	Agent    int
	Location int
	Arrive   int
	Link     int
	Depart   int
}

// group is a run of consecutive ordered links sharing an origin portal: an
// agent present at that origin builds every link in the group before
// moving on, so the group is the routing problem's real unit of travel.
type group struct {
	origin int
	lo, hi int // link index range [lo, hi) into the ordered link slice
}

// Route assigns every link in g's dense build order to one of numAgents
// agents and schedules their walking routes to minimize total build time,
// honoring every dependency between adjacent origin groups. With one agent
// the order is already fixed and the schedule is a direct walk; with more,
// a randomized local search bounded by budget looks for a better-than-naive
// assignment. Returns ErrRoutingInfeasible only for a non-positive agent
// count; any graph with at least one agent always admits some schedule.
func Route(g *linkgraph.Graph, dists [][]int, numAgents int, budget planconfig.RouterBudget, constants planconfig.Constants, r *rng.RNG) ([]Assignment, error) {
	if numAgents <= 0 {
		return nil, fmt.Errorf("router: num_agents must be positive, got %d: %w", numAgents, planerr.ErrRoutingInfeasible)
	}

	links := g.Edges()
	if len(links) == 0 {
		return nil, nil
	}

	if numAgents == 1 {
		return sequentialRoute(links, dists, constants), nil
	}

	groups := buildGroups(links)
	strict := buildStrictFlags(links, groups)

	best := roundRobinAssignment(len(groups), numAgents)
	_, _, bestMakespan := computeSchedule(groups, dists, numAgents, constants, strict, best)

	deadline := time.Now().Add(time.Duration(budget.MaxRuntimeSecs) * time.Second)
	for trial := 0; trial < budget.MaxSolutions && time.Now().Before(deadline); trial++ {
		candidate := append([]int(nil), best...)
		candidate[r.Intn(len(groups))] = r.Intn(numAgents)
		_, _, makespan := computeSchedule(groups, dists, numAgents, constants, strict, candidate)
		if makespan < bestMakespan {
			best = candidate
			bestMakespan = makespan
		}
	}

	arrive, _, _ := computeSchedule(groups, dists, numAgents, constants, strict, best)
	return expandAssignments(links, groups, arrive, constants, best), nil
}

// sequentialRoute handles the trivial one-agent case: the build order is
// already fixed, so the schedule is a direct walk through it.
func sequentialRoute(links []*linkgraph.Edge, dists [][]int, constants planconfig.Constants) []Assignment {
	assignments := make([]Assignment, len(links))
	var arrive, depart int
	for i, e := range links {
		if i == 0 {
			arrive = 0
		} else {
			travel := int(float64(dists[links[i-1].From][e.From]) / constants.WalkSpeedMPS)
			arrive = depart + travel
		}
		depart = arrive + constants.LinkTimeSeconds
		assignments[i] = Assignment{Agent: 0, Location: e.From, Arrive: arrive, Link: e.To, Depart: depart}
	}
	return assignments
}

// buildGroups run-length-encodes the ordered link list into maximal runs
// sharing a common origin.
func buildGroups(links []*linkgraph.Edge) []group {
	var groups []group
	i := 0
	for i < len(links) {
		j := i + 1
		for j < len(links) && links[j].From == links[i].From {
			j++
		}
		groups = append(groups, group{origin: links[i].From, lo: i, hi: j})
		i = j
	}
	return groups
}

// buildStrictFlags determines, for each adjacent pair of groups, whether
// the later group must wait for the earlier one to finish and communicate
// (a real dependency conflict) or may proceed in parallel.
func buildStrictFlags(links []*linkgraph.Edge, groups []group) []bool {
	if len(groups) < 2 {
		return nil
	}
	strict := make([]bool, len(groups)-1)
	for i := 0; i+1 < len(groups); i++ {
		strict[i] = groupsConflict(links, groups[i], groups[i+1])
	}
	return strict
}

func groupsConflict(links []*linkgraph.Edge, a, b group) bool {
	for bi := b.lo; bi < b.hi; bi++ {
		for ai := a.lo; ai < a.hi; ai++ {
			if dependsOnLink(links[bi].Depends, links[ai]) {
				return true
			}
		}
	}
	return false
}

func dependsOnLink(depends []linkgraph.Dependency, edge *linkgraph.Edge) bool {
	for _, d := range depends {
		if d.IsEdge {
			if d.From == edge.From && d.To == edge.To {
				return true
			}
		} else if d.Node == edge.From {
			return true
		}
	}
	return false
}

func roundRobinAssignment(numGroups, numAgents int) []int {
	out := make([]int, numGroups)
	for i := range out {
		out[i] = i % numAgents
	}
	return out
}

// computeSchedule simulates the given group-to-agent assignment: each
// agent walks between the origins it is assigned, in global group order,
// and every group also respects the strict/loose precedence with its
// immediate predecessor regardless of which agent carries it.
func computeSchedule(groups []group, dists [][]int, numAgents int, constants planconfig.Constants, strict []bool, assignment []int) (arrive, depart []int, makespan int) {
	n := len(groups)
	arrive = make([]int, n)
	depart = make([]int, n)
	agentFreeAt := make([]int, numAgents)
	agentLastOrigin := make([]int, numAgents)
	agentStarted := make([]bool, numAgents)

	for i, grp := range groups {
		ag := assignment[i]
		earliest := 0
		if agentStarted[ag] {
			travel := int(float64(dists[agentLastOrigin[ag]][grp.origin]) / constants.WalkSpeedMPS)
			earliest = agentFreeAt[ag] + travel
		}
		if i > 0 {
			if strict[i-1] {
				if bound := depart[i-1] + constants.CommTimeSeconds + 1; bound > earliest {
					earliest = bound
				}
			} else if arrive[i-1] > earliest {
				earliest = arrive[i-1]
			}
		}

		size := grp.hi - grp.lo
		arrive[i] = earliest
		depart[i] = earliest + size*constants.LinkTimeSeconds
		agentFreeAt[ag] = depart[i]
		agentLastOrigin[ag] = grp.origin
		agentStarted[ag] = true
		if depart[i] > makespan {
			makespan = depart[i]
		}
	}
	return arrive, depart, makespan
}

// expandAssignments turns the per-group start times back into one
// Assignment per individual link, then sorts the result by arrival time to
// match the order an outside observer would see events happen in.
func expandAssignments(links []*linkgraph.Edge, groups []group, arrive []int, constants planconfig.Constants, assignment []int) []Assignment {
	var out []Assignment
	for i, grp := range groups {
		cur := arrive[i]
		ag := assignment[i]
		for k := grp.lo; k < grp.hi; k++ {
			dep := cur + constants.LinkTimeSeconds
			out = append(out, Assignment{Agent: ag, Location: links[k].From, Arrive: cur, Link: links[k].To, Depart: dep})
			cur = dep
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Arrive < out[j].Arrive })
	return out
}
