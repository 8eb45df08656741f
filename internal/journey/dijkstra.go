package journey

import (
	"container/heap"
	"math"

	"github.com/antigravity/railplan/internal/stations"
	"github.com/antigravity/railplan/internal/timetable"
	"github.com/antigravity/railplan/internal/travelgraph"
)

// bestJourneyState is the provisional best route found so far to a
// station: total elapsed time, the clock time at which the traveller
// becomes available there, and the link that reached it (used to
// backtrack the path once the search is done).
type bestJourneyState struct {
	time        uint32
	clock       timetable.RailTime
	lastStation stations.StationId
	lastLink    travelgraph.Link
}

// toVisit is a priority-queue entry: visit station, having accumulated
// time seconds since the search origin.
type toVisit struct {
	station stations.StationId
	time    uint32
}

type visitQueue []toVisit

func (q visitQueue) Len() int { return len(q) }
func (q visitQueue) Less(i, j int) bool {
	if q[i].time != q[j].time {
		return q[i].time < q[j].time
	}
	return q[i].station < q[j].station
}
func (q visitQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *visitQueue) Push(x interface{}) { *q = append(*q, x.(toVisit)) }
func (q *visitQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// engine runs one time-dependent Dijkstra search, storing a
// bestJourneyState per station. Station visits are re-scanned from the
// start of their link list every time they're popped, stopping at the
// first improving link and re-enqueueing at the same time value so the
// scan resumes there next time — see visitNext.
type engine struct {
	queue       visitQueue
	contingency uint32
	nodes       []bestJourneyState
	origin      stations.StationId
	flexiDepart uint32
}

func newEngine(stationCount int, contingency uint32) *engine {
	nodes := make([]bestJourneyState, stationCount)
	for i := range nodes {
		nodes[i] = bestJourneyState{time: math.MaxUint32}
	}
	return &engine{contingency: contingency, nodes: nodes}
}

func (e *engine) perform(g *travelgraph.Graph, start stations.StationId, startTime timetable.RailTime, flexiDepart uint32) {
	e.queue = e.queue[:0]
	e.nodes[start] = bestJourneyState{time: 0, clock: startTime, lastStation: start}
	heap.Push(&e.queue, toVisit{station: start, time: 0})

	e.origin = start
	e.flexiDepart = flexiDepart

	for e.queue.Len() > 0 {
		tv := heap.Pop(&e.queue).(toVisit)
		if tv.time <= e.nodes[tv.station].time {
			e.visitNext(g, tv)
		}
	}
}

func (e *engine) visitNext(g *travelgraph.Graph, tv toVisit) {
	cur := e.nodes[tv.station]

	for _, link := range g.Links(tv.station) {
		switch link.Type {
		case travelgraph.Rail:
			chngTime := uint32(0)
			if link.IsChange(cur.lastLink) {
				chngTime = g.TransferTime(tv.station) + e.contingency
			}

			var waitTime uint32
			if tv.station == e.origin && cur.clock.TimeTil(link.Depart) < e.flexiDepart {
				waitTime = 0
			} else {
				waitTime = chngTime + cur.clock.Add(chngTime).TimeTil(link.Depart)
			}

			dstTime := tv.time + waitTime + link.Time
			if dstTime < e.nodes[link.Dst].time {
				e.updateBest(link.Dst, dstTime, link.Depart.Add(link.Time), tv.station, link)
				heap.Push(&e.queue, tv)
				return
			}

		case travelgraph.Fixed:
			dstTime := tv.time + link.Time
			if dstTime < e.nodes[link.Dst].time {
				e.updateBest(link.Dst, dstTime, cur.clock.Add(link.Time), tv.station, link)
				heap.Push(&e.queue, tv)
				return
			}
		}
	}
}

func (e *engine) updateBest(station stations.StationId, time uint32, clock timetable.RailTime, last stations.StationId, link travelgraph.Link) {
	e.nodes[station] = bestJourneyState{time: time, clock: clock, lastStation: last, lastLink: link}
	heap.Push(&e.queue, toVisit{station: station, time: time})
}

// bestJourney backtracks the search state into a Journey for dest.
// Consecutive links on the same service are coalesced into one. The
// origin is the search's known start station, not derived from
// backtracking, so unreachable destinations (whose node was never
// visited) still report the correct origin instead of station zero.
func (e *engine) bestJourney(dest stations.StationId) Journey {
	var links []travelgraph.Link

	best := e.nodes[dest]
	depart := best.clock
	totalTime := best.time

	for best.lastLink.Type != travelgraph.Dummy {
		ll := best.lastLink

		if n := len(links); n > 0 && links[n-1].Type == travelgraph.Rail && ll.Type == travelgraph.Rail && links[n-1].Service == ll.Service {
			links[n-1].Depart = ll.Depart
			links[n-1].Time += ll.Time
		} else {
			links = append(links, ll)
		}

		switch ll.Type {
		case travelgraph.Rail:
			depart = ll.Depart
		case travelgraph.Fixed:
			depart = depart.Sub(ll.Time)
		}

		best = e.nodes[best.lastStation]
	}

	for i, j := 0, len(links)-1; i < j; i, j = i+1, j-1 {
		links[i], links[j] = links[j], links[i]
	}

	return Journey{
		Origin: e.origin,
		Depart: depart,
		Time:   totalTime,
		Links:  links,
	}
}
