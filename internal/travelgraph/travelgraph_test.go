package travelgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/antigravity/railplan/internal/fixedlinks"
	"github.com/antigravity/railplan/internal/stations"
	"github.com/antigravity/railplan/internal/timetable"
)

func mustTime(t *testing.T, s string) timetable.RailTime {
	t.Helper()
	rt, ok := timetable.From24h(s)
	if !ok {
		t.Fatalf("bad time %q", s)
	}
	return rt
}

func simpleStop(t *testing.T, station stations.StationId, arr, dep string) timetable.Stop {
	return timetable.Stop{Station: station, Arrival: mustTime(t, arr), Departure: mustTime(t, dep)}
}

func TestNewSimpleGraph(t *testing.T) {
	reg := stations.NewRegistry([]stations.Station{
		stations.Simple("CAMBDGE", "Cambridge", "CBG"),
		stations.Simple("KINGSX", "London Kings Cross", "KGX"),
	})

	flinks := []fixedlinks.Link{
		{A: 0, B: 1, Time: 5 * 60, Kind: fixedlinks.Bus},
	}

	tt := &timetable.Timetable{
		Services: []timetable.Service{
			{ID: 0, TrainUID: "OUTBOUND", Stops: []timetable.Stop{
				simpleStop(t, 0, "0000", "0000"),
				simpleStop(t, 1, "0100", "0100"),
			}},
			{ID: 1, TrainUID: "INBOUND", Stops: []timetable.Stop{
				simpleStop(t, 1, "0110", "0110"),
				simpleStop(t, 0, "0215", "0215"),
			}},
		},
	}

	g := New(reg, flinks, tt)

	assert.Equal(t, []Link{
		SimpleFixed(1, 5*60, fixedlinks.Bus),
		SimpleRail(1, 0, mustTime(t, "0000"), 60*60),
	}, g.Links(0))

	assert.Equal(t, []Link{
		SimpleFixed(0, 5*60, fixedlinks.Bus),
		SimpleRail(0, 1, mustTime(t, "0110"), 65*60),
	}, g.Links(1))

	assert.Equal(t, uint32(0), g.TransferTime(0))
}

func TestIsChange(t *testing.T) {
	rail0 := SimpleRail(1, 0, mustTime(t, "0000"), 60*60)
	rail0Again := SimpleRail(2, 0, mustTime(t, "0200"), 60*60)
	rail1 := SimpleRail(1, 1, mustTime(t, "0000"), 60*60)
	fixed := SimpleFixed(1, 5*60, fixedlinks.Walk)
	dummy := Link{Type: Dummy}

	assert.False(t, rail0Again.IsChange(rail0))
	assert.True(t, rail1.IsChange(rail0))
	assert.True(t, rail0.IsChange(fixed))
	assert.True(t, rail0.IsChange(dummy))
}
