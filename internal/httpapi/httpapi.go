// Package httpapi exposes the rail dataset and journey engine over
// HTTP (spec §6, §13): station lookup, service detail, and
// multi-destination journey computation, with chi-routed JSON
// responses.
package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/antigravity/railplan/internal/audit"
	"github.com/antigravity/railplan/internal/fixedlinks"
	"github.com/antigravity/railplan/internal/journey"
	"github.com/antigravity/railplan/internal/metrics"
	"github.com/antigravity/railplan/internal/railerr"
	"github.com/antigravity/railplan/internal/railservice"
	"github.com/antigravity/railplan/internal/stations"
	"github.com/antigravity/railplan/internal/timetable"
	"github.com/antigravity/railplan/internal/travelgraph"
)

// Handler serves the rail dataset and journey API backed by one loaded
// RailServices instance.
type Handler struct {
	rail  *railservice.RailServices
	audit audit.Sink
	ready bool
}

// New builds a Handler with its ready flag set, so /readyz answers 200.
// Callers construct the Handler only once loading has finished.
func New(rail *railservice.RailServices, sink audit.Sink) *Handler {
	return &Handler{rail: rail, audit: sink, ready: true}
}

// Router builds the chi router: middleware, CORS, and all routes.
func Router(h *Handler, corsOrigins []string, metricsEnabled bool) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	if metricsEnabled {
		r.Use(metrics.Middleware)
	}

	r.Use(cors.New(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}).Handler)

	r.Get("/healthz", h.Healthz)
	r.Get("/readyz", h.Readyz)
	if metricsEnabled {
		r.Handle("/metrics", metrics.Handler())
	}

	r.Get("/station/{crs}", h.StationInfo)
	r.Get("/lookup/{name}", h.StationLookup)
	r.Get("/service/{id}", h.ServiceInfo)
	r.Post("/computejourneys", h.ComputeJourneys)

	return r
}

// Healthz reports liveness unconditionally.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// Readyz reports readiness once the dataset has finished loading.
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	if !h.ready {
		http.Error(w, "loading", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// StationInfo is the JSON shape returned for a single station.
type StationInfo struct {
	CRS           string   `json:"crs"`
	TIPLOCs       []string `json:"tiplocs"`
	Names         []string `json:"names"`
	MinChangeTime uint32   `json:"min_change_time"`
	GrefEast      int32    `json:"gref_east"`
	GrefNorth     int32    `json:"gref_north"`
}

func newStationInfo(s stations.Station) StationInfo {
	return StationInfo{
		CRS:           s.CRS,
		TIPLOCs:       s.TIPLOCs,
		Names:         s.Names,
		MinChangeTime: s.MinChangeTime,
		GrefEast:      s.GrefEast,
		GrefNorth:     s.GrefNorth,
	}
}

// StationInfo serves GET /station/{crs}.
func (h *Handler) StationInfo(w http.ResponseWriter, r *http.Request) {
	crs := strings.ToUpper(chi.URLParam(r, "crs"))
	id, ok := h.rail.Stations.LookupByCRS(crs)
	if !ok {
		http.Error(w, "station not found", http.StatusNotFound)
		return
	}
	station, _ := h.rail.Stations.Get(id)
	writeJSON(w, newStationInfo(station))
}

// StationLookup serves GET /lookup/{name}: an exact CRS match (if any)
// followed by substring name matches, each appearing once.
func (h *Handler) StationLookup(w http.ResponseWriter, r *http.Request) {
	name := strings.ToUpper(chi.URLParam(r, "name"))

	matches := h.rail.Stations.NameSearch(name)
	infos := make([]StationInfo, 0, len(matches)+1)

	if exact, ok := h.rail.Stations.LookupByCRS(name); ok {
		station, _ := h.rail.Stations.Get(exact)
		infos = append(infos, newStationInfo(station))
		delete(matches, exact)
	}

	for id := range matches {
		station, _ := h.rail.Stations.Get(id)
		infos = append(infos, newStationInfo(station))
	}

	writeJSON(w, infos)
}

// ServiceStopInfo is one stop of a ServiceInfo.
type ServiceStopInfo struct {
	Station   string `json:"station"`
	Arrival   string `json:"arrival"`
	Departure string `json:"departure"`
}

// ServiceInfo is the JSON shape returned for a single timetabled
// service.
type ServiceInfo struct {
	ID       timetable.ServiceId `json:"id"`
	TrainUID string              `json:"train_uid"`
	Stops    []ServiceStopInfo   `json:"stops"`
}

// ServiceInfo serves GET /service/{id}.
func (h *Handler) ServiceInfo(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id < 0 || id >= len(h.rail.Timetable.Services) {
		http.Error(w, "service not found", http.StatusNotFound)
		return
	}

	svc := h.rail.Timetable.Services[id]
	stops := make([]ServiceStopInfo, len(svc.Stops))
	for i, stop := range svc.Stops {
		station, _ := h.rail.Stations.Get(stop.Station)
		stops[i] = ServiceStopInfo{
			Station:   station.CRS,
			Arrival:   stop.Arrival.To24h(),
			Departure: stop.Departure.To24h(),
		}
	}

	writeJSON(w, ServiceInfo{ID: svc.ID, TrainUID: svc.TrainUID, Stops: stops})
}

// ComputeJourneysRequest is the request body for POST /computejourneys.
type ComputeJourneysRequest struct {
	Start       string   `json:"start"`
	Origin      string   `json:"origin"`
	Dests       []string `json:"dests"`
	Contingency uint32   `json:"contingency"`
	FlexiDepart uint32   `json:"flexi_depart"`
}

// LinkInfo is a tagged link: Type selects which of the Rail- or
// Fixed-only fields are populated.
type LinkInfo struct {
	Type    string              `json:"type"`
	Dst     string              `json:"dst,omitempty"`
	Time    uint32              `json:"time,omitempty"`
	Depart  string              `json:"depart,omitempty"`
	Service timetable.ServiceId `json:"service,omitempty"`
}

func newLinkInfo(reg *stations.Registry, link travelgraph.Link) LinkInfo {
	dst, _ := reg.Get(link.Dst)
	switch link.Type {
	case travelgraph.Rail:
		return LinkInfo{Type: "Rail", Dst: dst.CRS, Time: link.Time, Depart: link.Depart.To24h(), Service: link.Service}
	case travelgraph.Fixed:
		return LinkInfo{Type: fixedLinkTypeName(link.Kind), Dst: dst.CRS, Time: link.Time}
	default:
		return LinkInfo{Type: "Dummy"}
	}
}

func fixedLinkTypeName(k fixedlinks.Kind) string {
	switch k {
	case fixedlinks.Walk:
		return "Walk"
	case fixedlinks.Tube:
		return "Tube"
	case fixedlinks.Metro:
		return "Metro"
	case fixedlinks.Bus:
		return "Bus"
	case fixedlinks.Ferry:
		return "Ferry"
	case fixedlinks.Transfer:
		return "Transfer"
	default:
		return "Dummy"
	}
}

// JourneyInfo is the JSON shape returned for one computed journey.
type JourneyInfo struct {
	Origin string     `json:"origin"`
	Depart string     `json:"depart"`
	Time   uint32     `json:"time"`
	Links  []LinkInfo `json:"links"`
}

// ComputeJourneys serves POST /computejourneys.
func (h *Handler) ComputeJourneys(w http.ResponseWriter, r *http.Request) {
	var req ComputeJourneysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	startTime, ok := timetable.From24h(req.Start)
	if !ok {
		writeBadRequest(w, railerr.BadRequestf("could not parse time %s", req.Start))
		return
	}

	originID, ok := h.rail.Stations.LookupByCRS(req.Origin)
	if !ok {
		writeBadRequest(w, railerr.BadRequestf("could not find CRS %s", req.Origin))
		return
	}

	destIDs := make([]stations.StationId, len(req.Dests))
	for i, crs := range req.Dests {
		id, ok := h.rail.Stations.LookupByCRS(crs)
		if !ok {
			writeBadRequest(w, railerr.BadRequestf("could not find CRS %s", crs))
			return
		}
		destIDs[i] = id
	}

	started := time.Now()
	journeys := journey.ComputeJourneys(h.rail.Graph, startTime, originID, destIDs, req.Contingency, req.FlexiDepart)
	elapsed := time.Since(started)

	metrics.JourneyQueryDuration.Observe(elapsed.Seconds())
	metrics.JourneyQueryDestinations.Observe(float64(len(destIDs)))
	metrics.JourneyQueriesTotal.WithLabelValues("ok").Inc()

	h.audit.Log(audit.Record{
		At:           time.Now(),
		Origin:       originID,
		Depart:       startTime,
		Destinations: destIDs,
		Contingency:  req.Contingency,
		FlexiDepart:  req.FlexiDepart,
		Elapsed:      elapsed,
	})

	infos := make([]JourneyInfo, len(journeys))
	for i, j := range journeys {
		origin, _ := h.rail.Stations.Get(j.Origin)
		links := make([]LinkInfo, len(j.Links))
		for li, link := range j.Links {
			links[li] = newLinkInfo(h.rail.Stations, link)
		}
		infos[i] = JourneyInfo{Origin: origin.CRS, Depart: j.Depart.To24h(), Time: j.Time, Links: links}
	}

	writeJSON(w, infos)
}

func writeBadRequest(w http.ResponseWriter, err error) {
	metrics.JourneyQueriesTotal.WithLabelValues("bad-request").Inc()
	http.Error(w, err.Error(), http.StatusBadRequest)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
