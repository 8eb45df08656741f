package stations

import (
	"bufio"
	"io"
	"strconv"

	"github.com/spkg/bom"

	"github.com/antigravity/railplan/internal/fixedwidth"
	"github.com/antigravity/railplan/internal/railerr"
)

// MSN field offsets (spec §6).
const (
	msnNameOff, msnNameLen       = 5, 26
	msnTiplocOff, msnTiplocLen   = 36, 7
	msnCRSOff, msnCRSLen         = 49, 3
	msnGrefEOff, msnGrefELen     = 53, 4
	msnGrefNOff, msnGrefNLen     = 59, 4
	msnChangeOff, msnChangeLen   = 63, 2
	aliasNameOff, aliasNameLen   = 5, 26
	aliasAliasOff, aliasAliasLen = 36, 26
)

func parseMsnStationRecord(line int, rec string) (Station, error) {
	name, err := fixedwidth.Field(line, "name", rec, msnNameOff, msnNameLen)
	if err != nil {
		return Station{}, err
	}
	tiploc, err := fixedwidth.Field(line, "tiploc", rec, msnTiplocOff, msnTiplocLen)
	if err != nil {
		return Station{}, err
	}
	crs, err := fixedwidth.Field(line, "crs", rec, msnCRSOff, msnCRSLen)
	if err != nil {
		return Station{}, err
	}
	grefEast, err := fixedwidth.Field(line, "os_gref_east", rec, msnGrefEOff, msnGrefELen)
	if err != nil {
		return Station{}, err
	}
	grefNorth, err := fixedwidth.Field(line, "os_gref_north", rec, msnGrefNOff, msnGrefNLen)
	if err != nil {
		return Station{}, err
	}
	changeTime, err := fixedwidth.Field(line, "min_change_time", rec, msnChangeOff, msnChangeLen)
	if err != nil {
		return Station{}, err
	}

	east, err := parseIntField(line, "os_gref_east", grefEast)
	if err != nil {
		return Station{}, err
	}
	north, err := parseIntField(line, "os_gref_north", grefNorth)
	if err != nil {
		return Station{}, err
	}
	change, err := parseUintField(line, "min_change_time", changeTime)
	if err != nil {
		return Station{}, err
	}

	return Station{
		TIPLOCs:       []string{tiploc},
		CRS:           crs,
		Names:         []string{name},
		MinChangeTime: change,
		GrefEast:      east,
		GrefNorth:     north,
	}, nil
}

func parseIntField(line int, name, s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, railerr.InvalidDataf(line, "could not parse field %s '%s'", name, s)
	}
	return int32(v), nil
}

func parseUintField(line int, name, s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, railerr.InvalidDataf(line, "could not parse field %s '%s'", name, s)
	}
	return uint32(v), nil
}

// ReadMSNFile builds a Registry from a Master Station Names stream
// (spec §4.A / §6). The first 'A' record is a file header and is
// skipped. 'A' records sharing a CRS code are merged; 'L' records add
// an alias name to the most recently-declared station with that name.
func ReadMSNFile(r io.Reader) (*Registry, error) {
	reg := &Registry{
		byTIPLOC: make(map[string]StationId),
		byName:   make(map[string]StationId),
		byCRS:    make(map[string]StationId),
	}

	scanner := bufio.NewScanner(bom.NewReader(r))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	aRecordSeen := false
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}

		switch line[0] {
		case 'A':
			if !aRecordSeen {
				aRecordSeen = true
				continue
			}
			station, err := parseMsnStationRecord(lineNum, line)
			if err != nil {
				return nil, err
			}
			reg.addOrMergeStation(station)
		case 'L':
			name, err := fixedwidth.Field(lineNum, "name", line, aliasNameOff, aliasNameLen)
			if err != nil {
				return nil, err
			}
			alias, err := fixedwidth.Field(lineNum, "alias", line, aliasAliasOff, aliasAliasLen)
			if err != nil {
				return nil, err
			}
			id, ok := reg.byName[name]
			if !ok {
				return nil, railerr.InvalidDataf(lineNum, "reference to non-existent station %s", name)
			}
			reg.byName[alias] = id
			reg.stations[id].Names = append(reg.stations[id].Names, alias)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, railerr.Wrap(err, "reading MSN file")
	}

	return reg, nil
}

func (r *Registry) addOrMergeStation(s Station) {
	if existing, ok := r.byCRS[s.CRS]; ok {
		r.stations[existing].mergeFrom(s)
		insertAll(r.byTIPLOC, s.TIPLOCs, existing)
		insertAll(r.byName, s.Names, existing)
		return
	}

	id := StationId(len(r.stations))
	s.ID = id
	r.stations = append(r.stations, s)
	r.byCRS[s.CRS] = id
	insertAll(r.byTIPLOC, s.TIPLOCs, id)
	insertAll(r.byName, s.Names, id)
}
