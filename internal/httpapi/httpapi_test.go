package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antigravity/railplan/internal/audit"
	"github.com/antigravity/railplan/internal/railservice"
	"github.com/antigravity/railplan/internal/stations"
	"github.com/antigravity/railplan/internal/timetable"
	"github.com/antigravity/railplan/internal/travelgraph"
)

func testRail(t *testing.T) *railservice.RailServices {
	t.Helper()

	reg := stations.NewRegistry([]stations.Station{
		stations.Simple("KLYNN", "KINGS LYNN", "KLN"),
		stations.Simple("KNGX", "LONDON KINGS CROSS", "KGX"),
	})
	kln, _ := reg.LookupByCRS("KLN")
	kgx, _ := reg.LookupByCRS("KGX")

	tt := &timetable.Timetable{Services: []timetable.Service{
		{
			ID:       0,
			TrainUID: "L22108",
			Stops: []timetable.Stop{
				{Station: kln, Arrival: timetable.NewRailTime(10, 45), Departure: timetable.NewRailTime(10, 45)},
				{Station: kgx, Arrival: timetable.NewRailTime(12, 35), Departure: timetable.NewRailTime(12, 35)},
			},
		},
	}}

	links := [][]travelgraph.Link{
		{travelgraph.SimpleRail(kgx, 0, timetable.NewRailTime(10, 45), 110*60)},
		{},
	}
	graph := travelgraph.NewRaw(links, []uint32{300, 300})

	return &railservice.RailServices{Stations: reg, Timetable: tt, Graph: graph}
}

func newTestHandler(t *testing.T) *Handler {
	return New(testRail(t), noopAudit{})
}

type noopAudit struct{}

func (noopAudit) Log(audit.Record) {}
func (noopAudit) Close()           {}

func TestStationInfoFound(t *testing.T) {
	h := newTestHandler(t)
	router := Router(h, []string{"*"}, false)

	req := httptest.NewRequest(http.MethodGet, "/station/KLN", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var info StationInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "KLN", info.CRS)
	assert.Equal(t, []string{"KINGS LYNN"}, info.Names)
}

func TestStationInfoNotFound(t *testing.T) {
	h := newTestHandler(t)
	router := Router(h, []string{"*"}, false)

	req := httptest.NewRequest(http.MethodGet, "/station/ZZZ", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStationLookupExactCRSFirst(t *testing.T) {
	h := newTestHandler(t)
	router := Router(h, []string{"*"}, false)

	req := httptest.NewRequest(http.MethodGet, "/lookup/KLN", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var infos []StationInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &infos))
	require.Len(t, infos, 1)
	assert.Equal(t, "KLN", infos[0].CRS)
}

func TestServiceInfo(t *testing.T) {
	h := newTestHandler(t)
	router := Router(h, []string{"*"}, false)

	req := httptest.NewRequest(http.MethodGet, "/service/0", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var info ServiceInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "L22108", info.TrainUID)
	require.Len(t, info.Stops, 2)
	assert.Equal(t, "KLN", info.Stops[0].Station)
	assert.Equal(t, "1045", info.Stops[0].Departure)
}

func TestServiceInfoNotFound(t *testing.T) {
	h := newTestHandler(t)
	router := Router(h, []string{"*"}, false)

	req := httptest.NewRequest(http.MethodGet, "/service/99", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestComputeJourneysHappyPath(t *testing.T) {
	h := newTestHandler(t)
	router := Router(h, []string{"*"}, false)

	body := `{"start":"1045","origin":"KLN","dests":["KGX"],"contingency":300,"flexi_depart":0}`
	req := httptest.NewRequest(http.MethodPost, "/computejourneys", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var journeys []JourneyInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &journeys))
	require.Len(t, journeys, 1)
	assert.Equal(t, "KLN", journeys[0].Origin)
	require.Len(t, journeys[0].Links, 1)
	assert.Equal(t, "Rail", journeys[0].Links[0].Type)
	assert.Equal(t, "KGX", journeys[0].Links[0].Dst)
}

func TestComputeJourneysBadTime(t *testing.T) {
	h := newTestHandler(t)
	router := Router(h, []string{"*"}, false)

	body := `{"start":"not-a-time","origin":"KLN","dests":["KGX"],"contingency":0,"flexi_depart":0}`
	req := httptest.NewRequest(http.MethodPost, "/computejourneys", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestComputeJourneysUnknownOrigin(t *testing.T) {
	h := newTestHandler(t)
	router := Router(h, []string{"*"}, false)

	body := `{"start":"1045","origin":"ZZZ","dests":["KGX"],"contingency":0,"flexi_depart":0}`
	req := httptest.NewRequest(http.MethodPost, "/computejourneys", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthzAndReadyz(t *testing.T) {
	h := newTestHandler(t)
	router := Router(h, []string{"*"}, false)

	for _, path := range []string{"/healthz", "/readyz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}
