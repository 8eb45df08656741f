package stations

import "strings"

// Registry holds the full station list plus lookup indexes by CRS,
// TIPLOC, and name (including aliases).
type Registry struct {
	stations []Station
	byTIPLOC map[string]StationId
	byName   map[string]StationId
	byCRS    map[string]StationId
}

// NewRegistry builds a Registry directly from a station slice, with no
// CRS-merge pass — useful for constructing small graphs in tests where
// the caller has already ensured CRS uniqueness.
func NewRegistry(list []Station) *Registry {
	r := &Registry{
		stations: list,
		byTIPLOC: make(map[string]StationId),
		byName:   make(map[string]StationId),
		byCRS:    make(map[string]StationId),
	}
	for i := range r.stations {
		r.stations[i].ID = StationId(i)
		id := StationId(i)
		insertAll(r.byTIPLOC, r.stations[i].TIPLOCs, id)
		insertAll(r.byName, r.stations[i].Names, id)
		r.byCRS[r.stations[i].CRS] = id
	}
	return r
}

func insertAll(m map[string]StationId, keys []string, id StationId) {
	for _, k := range keys {
		m[k] = id
	}
}

// LookupByCRS returns the station with the given CRS code.
func (r *Registry) LookupByCRS(crs string) (StationId, bool) {
	id, ok := r.byCRS[crs]
	return id, ok
}

// LookupByTIPLOC returns the station with the given TIPLOC.
func (r *Registry) LookupByTIPLOC(tiploc string) (StationId, bool) {
	id, ok := r.byTIPLOC[tiploc]
	return id, ok
}

// LookupByName returns the station with the given exact display name
// or alias.
func (r *Registry) LookupByName(name string) (StationId, bool) {
	id, ok := r.byName[name]
	return id, ok
}

// NameSearch returns the set of stations with a name or alias
// containing substr (case-sensitive; callers uppercase first).
func (r *Registry) NameSearch(substr string) map[StationId]struct{} {
	out := make(map[StationId]struct{})
	for name, id := range r.byName {
		if strings.Contains(name, substr) {
			out[id] = struct{}{}
		}
	}
	return out
}

// Count returns the number of stations in the registry.
func (r *Registry) Count() int { return len(r.stations) }

// Get returns the station with the given id.
func (r *Registry) Get(id StationId) (Station, bool) {
	if int(id) < 0 || int(id) >= len(r.stations) {
		return Station{}, false
	}
	return r.stations[id], true
}
