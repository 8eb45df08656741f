// Package journey implements the time-dependent Dijkstra search that
// powers earliest-arrival journey queries over a travelgraph.Graph
// (spec §4.E).
package journey

import (
	"github.com/antigravity/railplan/internal/stations"
	"github.com/antigravity/railplan/internal/timetable"
	"github.com/antigravity/railplan/internal/travelgraph"
)

// Journey is one computed earliest-arrival route from a fixed origin
// to a single destination.
type Journey struct {
	Origin stations.StationId
	Depart timetable.RailTime
	Time   uint32 // seconds; math.MaxUint32 if the destination is unreachable
	Links  []travelgraph.Link
}

// ComputeJourneys runs one search from origin and returns the earliest
// journey to each destination, in the order given. Contingency is
// added to each station's interchange time on every service change;
// flexiDepart is the window after depart during which a departure from
// the origin station costs no wait.
func ComputeJourneys(g *travelgraph.Graph, depart timetable.RailTime, origin stations.StationId, destinations []stations.StationId, contingency, flexiDepart uint32) []Journey {
	e := newEngine(g.StationCount(), contingency)
	e.perform(g, origin, depart, flexiDepart)

	journeys := make([]Journey, len(destinations))
	for i, dest := range destinations {
		journeys[i] = e.bestJourney(dest)
	}
	return journeys
}
