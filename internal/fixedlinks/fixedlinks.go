// Package fixedlinks parses the additional-links feed: fixed-duration,
// time-independent connections (walking transfers, tube/metro/bus/ferry
// hops) layered on top of the scheduled rail network (spec §4.B).
package fixedlinks

import (
	"bufio"
	"io"
	"regexp"
	"strconv"

	"github.com/antigravity/railplan/internal/railerr"
	"github.com/antigravity/railplan/internal/stations"
)

// Kind identifies the mode of transport a FixedLink represents.
type Kind int

const (
	Walk Kind = iota
	Tube
	Metro
	Bus
	Ferry
	Transfer
)

func (k Kind) String() string {
	switch k {
	case Walk:
		return "WALK"
	case Tube:
		return "TUBE"
	case Metro:
		return "METRO"
	case Bus:
		return "BUS"
	case Ferry:
		return "FERRY"
	case Transfer:
		return "TRANSFER"
	default:
		return "UNKNOWN"
	}
}

var kindByName = map[string]Kind{
	"WALK":     Walk,
	"TUBE":     Tube,
	"METRO":    Metro,
	"BUS":      Bus,
	"FERRY":    Ferry,
	"TRANSFER": Transfer,
}

// Link is a fixed-duration connection between two stations, independent
// of any timetable.
type Link struct {
	A, B stations.StationId
	Time uint32 // seconds
	Kind Kind
}

var linkPattern = regexp.MustCompile(
	`^ADDITIONAL LINK: (WALK|TUBE|METRO|BUS|FERRY|TRANSFER) BETWEEN ([A-Z]{3}) AND ([A-Z]{3}) IN +([0-9]+) MINUTES *$`,
)

func stationOrErr(reg *stations.Registry, crs string, line int) (stations.StationId, error) {
	id, ok := reg.LookupByCRS(crs)
	if !ok {
		return 0, railerr.InvalidDataf(line, "reference to non-existent station CRS %s", crs)
	}
	return id, nil
}

// Parse reads the additional-links feed, returning one Link per matching
// line. Lines that don't match the fixed format (comments, blanks,
// section headers) are silently skipped.
func Parse(reg *stations.Registry, r io.Reader) ([]Link, error) {
	var links []Link

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		caps := linkPattern.FindStringSubmatch(scanner.Text())
		if caps == nil {
			continue
		}

		kind, ok := kindByName[caps[1]]
		if !ok {
			return nil, railerr.InvalidDataf(lineNum, "unrecognised fixed link kind %s", caps[1])
		}

		a, err := stationOrErr(reg, caps[2], lineNum)
		if err != nil {
			return nil, err
		}
		b, err := stationOrErr(reg, caps[3], lineNum)
		if err != nil {
			return nil, err
		}

		mins, err := strconv.ParseUint(caps[4], 10, 32)
		if err != nil {
			return nil, railerr.InvalidDataf(lineNum, "could not parse fixed link duration %s", caps[4])
		}

		links = append(links, Link{A: a, B: b, Time: uint32(mins) * 60, Kind: kind})
	}
	if err := scanner.Err(); err != nil {
		return nil, railerr.Wrap(err, "reading fixed links file")
	}

	return links, nil
}
