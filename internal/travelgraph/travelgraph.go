// Package travelgraph builds the per-station adjacency structure the
// journey planner searches: one node per station, carrying both
// scheduled rail departures and fixed-duration connections (spec §4.D).
package travelgraph

import (
	"github.com/antigravity/railplan/internal/fixedlinks"
	"github.com/antigravity/railplan/internal/stations"
	"github.com/antigravity/railplan/internal/timetable"
)

// LinkType discriminates the three kinds of outgoing connection a
// station can have.
type LinkType int

const (
	// Dummy marks the sentinel "no incoming link" state used at the
	// search origin; it carries no destination or timing.
	Dummy LinkType = iota
	// Rail is a scheduled service departure.
	Rail
	// Fixed is a fixed-duration connection (walk, tube, bus, ferry,
	// metro, or interchange transfer).
	Fixed
)

// Link is a single outgoing connection from a station. Only the fields
// relevant to its Type are meaningful: Service and Depart for Rail,
// Kind for Fixed.
type Link struct {
	Type    LinkType
	Dst     stations.StationId
	Service timetable.ServiceId
	Depart  timetable.RailTime
	Time    uint32
	Kind    fixedlinks.Kind
}

// SimpleRail builds a Rail link.
func SimpleRail(dst stations.StationId, service timetable.ServiceId, depart timetable.RailTime, time uint32) Link {
	return Link{Type: Rail, Dst: dst, Service: service, Depart: depart, Time: time}
}

// SimpleFixed builds a Fixed link.
func SimpleFixed(dst stations.StationId, time uint32, kind fixedlinks.Kind) Link {
	return Link{Type: Fixed, Dst: dst, Time: time, Kind: kind}
}

// IsChange reports whether travelling along l after having arrived via
// prev requires changing trains: true whenever prev isn't itself a
// rail link on the same service.
func (l Link) IsChange(prev Link) bool {
	if prev.Type != Rail {
		return true
	}
	return prev.Service != l.Service
}

type node struct {
	links        []Link
	transferTime uint32
}

// Graph is the full travel-time graph: one node per station, indexed
// by stations.StationId.
type Graph struct {
	nodes []node
}

// New builds a Graph from a station registry, the fixed-duration link
// list, and the parsed timetable. Fixed links are added in both
// directions; each consecutive pair of stops in a service becomes one
// directed rail link.
func New(reg *stations.Registry, flinks []fixedlinks.Link, tt *timetable.Timetable) *Graph {
	g := &Graph{nodes: make([]node, reg.Count())}
	for i := 0; i < reg.Count(); i++ {
		station, _ := reg.Get(stations.StationId(i))
		g.nodes[i] = node{
			links:        make([]Link, 0, 16),
			transferTime: station.MinChangeTime,
		}
	}

	for _, fl := range flinks {
		g.nodes[fl.A].links = append(g.nodes[fl.A].links, SimpleFixed(fl.B, fl.Time, fl.Kind))
		g.nodes[fl.B].links = append(g.nodes[fl.B].links, SimpleFixed(fl.A, fl.Time, fl.Kind))
	}

	for _, svc := range tt.Services {
		for i := 0; i < len(svc.Stops)-1; i++ {
			s1, s2 := svc.Stops[i], svc.Stops[i+1]
			g.nodes[s1.Station].links = append(g.nodes[s1.Station].links,
				SimpleRail(s2.Station, svc.ID, s1.Departure, s1.Departure.TimeTil(s2.Arrival)))
		}
	}

	return g
}

// NewRaw builds a Graph directly from per-station link lists and
// transfer times, bypassing the feed-derived construction in New.
// Intended for tests that need to specify exact graph topology.
func NewRaw(links [][]Link, transferTimes []uint32) *Graph {
	nodes := make([]node, len(links))
	for i := range nodes {
		nodes[i] = node{links: links[i], transferTime: transferTimes[i]}
	}
	return &Graph{nodes: nodes}
}

// Links returns the outgoing links of the given station.
func (g *Graph) Links(id stations.StationId) []Link {
	return g.nodes[id].links
}

// TransferTime returns the minimum interchange time configured for the
// given station.
func (g *Graph) TransferTime(id stations.StationId) uint32 {
	return g.nodes[id].transferTime
}

// StationCount returns the number of stations in the graph.
func (g *Graph) StationCount() int {
	return len(g.nodes)
}

// StatEdges returns the total edge count and the min/max out-degree
// across all stations, used for dataset-load diagnostics.
func (g *Graph) StatEdges() (total, min, max int) {
	for i, n := range g.nodes {
		l := len(n.links)
		total += l
		if i == 0 || l < min {
			min = l
		}
		if l > max {
			max = l
		}
	}
	return total, min, max
}
