// Package stations implements the station registry (spec §4.A): a
// dense array of stations addressed by a zero-based StationId, with
// O(1) lookup by CRS code, TIPLOC, and display name.
package stations

// StationId is a dense, non-negative index into a Registry.
type StationId int

// Station is a merged physical station: one or more TIPLOCs, one or
// more display names (Names[0] is primary), a single CRS code, a
// minimum interchange time, and an OS grid reference.
type Station struct {
	ID            StationId
	CRS           string
	TIPLOCs       []string
	Names         []string
	MinChangeTime uint32 // seconds, per spec §3/§9
	GrefEast      int32
	GrefNorth     int32
}

// Simple builds a single-TIPLOC, single-name station, useful for tests
// and for fixed-link unit construction that doesn't go through MSN
// parsing.
func Simple(tiploc, name, crs string) Station {
	return Station{
		TIPLOCs: []string{tiploc},
		Names:   []string{name},
		CRS:     crs,
	}
}

func (s *Station) mergeFrom(other Station) {
	for _, name := range other.Names {
		if !contains(s.Names, name) {
			s.Names = append(s.Names, name)
		}
	}
	s.TIPLOCs = append(s.TIPLOCs, other.TIPLOCs...)
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
