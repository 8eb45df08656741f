package audit

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antigravity/railplan/internal/metrics"
	"github.com/antigravity/railplan/internal/stations"
	"github.com/antigravity/railplan/internal/timetable"
)

func TestOpenWithEmptyDSNReturnsNoop(t *testing.T) {
	s, err := Open(context.Background(), "")
	require.NoError(t, err)
	assert.IsType(t, noopSink{}, s)

	// Log and Close on the no-op sink must never panic or block.
	s.Log(Record{Origin: 1, Destinations: []stations.StationId{2}})
	s.Close()
}

func TestPgSinkDropsWhenBufferFull(t *testing.T) {
	s := &pgSink{recs: make(chan Record, 1)}

	before := testutil.ToFloat64(metrics.AuditRecordsDropped)

	s.Log(Record{Origin: 1, Depart: timetable.NewRailTime(10, 0), Destinations: []stations.StationId{2, 3}})
	s.Log(Record{Origin: 1, Depart: timetable.NewRailTime(10, 5), Destinations: []stations.StationId{4}})

	assert.Len(t, s.recs, 1)
	after := testutil.ToFloat64(metrics.AuditRecordsDropped)
	assert.Equal(t, before+1, after)
}

func TestRecordCarriesElapsed(t *testing.T) {
	r := Record{
		At:           time.Unix(0, 0),
		Origin:       1,
		Depart:       timetable.NewRailTime(9, 30),
		Destinations: []stations.StationId{2},
		Contingency:  300,
		FlexiDepart:  60,
		Elapsed:      5 * time.Millisecond,
	}
	assert.Equal(t, 5*time.Millisecond, r.Elapsed)
	assert.Equal(t, uint32(9*3600+30*60), r.Depart.Seconds())
}
