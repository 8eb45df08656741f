// Package timetable parses the CIF schedule feed (MCA format) into
// Services: ordered stop sequences with public arrival/departure times
// (spec §4.C).
package timetable

import (
	"bufio"
	"io"

	"github.com/antigravity/railplan/internal/fixedwidth"
	"github.com/antigravity/railplan/internal/railerr"
	"github.com/antigravity/railplan/internal/stations"
)

// ServiceId is a dense, zero-based index into a Timetable's Services.
type ServiceId uint32

// Stop is one call a Service makes: the station and its public
// arrival/departure times. Origin and terminal stops carry the same
// value for both.
type Stop struct {
	Station   stations.StationId
	Arrival   RailTime
	Departure RailTime
}

// Service is a single scheduled train, identified by its CIF train UID,
// as a chronological sequence of Stops.
type Service struct {
	ID       ServiceId
	TrainUID string
	Stops    []Stop
}

// Timetable is the full set of Services parsed from one MCA feed.
type Timetable struct {
	Services []Service
}

// MCA field offsets (spec §6).
const (
	bsTrainUIDOff, bsTrainUIDLen = 3, 6

	loTiplocOff, loTiplocLen = 2, 7
	loPubDepOff, loPubDepLen = 15, 4

	liTiplocOff, liTiplocLen        = 2, 7
	liSchedPassOff, liSchedPassLen  = 20, 5
	liPubArrOff, liPubArrLen        = 25, 4
	liPubDepOff, liPubDepLen        = 29, 4

	ltTiplocOff, ltTiplocLen = 2, 7
	ltPubArrOff, ltPubArrLen = 15, 4
)

// readServiceEntry consumes lines from scanner until a terminal LT
// record, returning the assembled Service. It returns (nil, nil) at
// clean EOF (no BS record seen yet), and a ShortInput error if EOF is
// reached mid-service.
func readServiceEntry(reg *stations.Registry, scanner *bufio.Scanner, lineNum *int) (*Service, error) {
	service := &Service{}
	hasRecord := false
	startLine := 0

	for scanner.Scan() {
		*lineNum++
		line := scanner.Text()
		if len(line) <= 2 {
			continue
		}

		switch line[0:2] {
		case "BS":
			uid, err := fixedwidth.Field(*lineNum, "train_uid", line, bsTrainUIDOff, bsTrainUIDLen)
			if err != nil {
				return nil, err
			}
			service.TrainUID = uid
			hasRecord = true
			startLine = *lineNum

		case "LO":
			tiploc, err := fixedwidth.Field(*lineNum, "tiploc", line, loTiplocOff, loTiplocLen)
			if err != nil {
				return nil, err
			}
			if stationID, ok := reg.LookupByTIPLOC(tiploc); ok {
				depStr, err := fixedwidth.Field(*lineNum, "public_departure", line, loPubDepOff, loPubDepLen)
				if err != nil {
					return nil, err
				}
				dep, ok := From24h(depStr)
				if !ok {
					return nil, railerr.InvalidDataf(*lineNum, "bad origin departure time %q", depStr)
				}
				service.Stops = append(service.Stops, Stop{Station: stationID, Arrival: dep, Departure: dep})
			}

		case "LI":
			tiploc, err := fixedwidth.Field(*lineNum, "tiploc", line, liTiplocOff, liTiplocLen)
			if err != nil {
				return nil, err
			}
			stationID, ok := reg.LookupByTIPLOC(tiploc)
			if !ok {
				continue
			}

			passStr, err := fixedwidth.Field(*lineNum, "scheduled_pass", line, liSchedPassOff, liSchedPassLen)
			if err != nil {
				return nil, err
			}
			if _, isPass := From24h(passStr); isPass {
				continue
			}

			arrStr, err := fixedwidth.Field(*lineNum, "public_arrival", line, liPubArrOff, liPubArrLen)
			if err != nil {
				return nil, err
			}
			depStr, err := fixedwidth.Field(*lineNum, "public_departure", line, liPubDepOff, liPubDepLen)
			if err != nil {
				return nil, err
			}
			arr, ok := From24h(arrStr)
			if !ok {
				return nil, railerr.InvalidDataf(*lineNum, "bad intermediate arrival time %q", arrStr)
			}
			dep, ok := From24h(depStr)
			if !ok {
				return nil, railerr.InvalidDataf(*lineNum, "bad intermediate departure time %q", depStr)
			}
			service.Stops = append(service.Stops, Stop{Station: stationID, Arrival: arr, Departure: dep})

		case "LT":
			tiploc, err := fixedwidth.Field(*lineNum, "tiploc", line, ltTiplocOff, ltTiplocLen)
			if err != nil {
				return nil, err
			}
			if stationID, ok := reg.LookupByTIPLOC(tiploc); ok {
				arrStr, err := fixedwidth.Field(*lineNum, "public_arrival", line, ltPubArrOff, ltPubArrLen)
				if err != nil {
					return nil, err
				}
				arr, ok := From24h(arrStr)
				if !ok {
					return nil, railerr.InvalidDataf(*lineNum, "bad terminal arrival time %q", arrStr)
				}
				service.Stops = append(service.Stops, Stop{Station: stationID, Arrival: arr, Departure: arr})
			}
			return service, nil
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, railerr.Wrap(err, "reading MCA file")
	}
	if hasRecord {
		return nil, railerr.ShortInputf("EOF while reading service starting at line %d", startLine)
	}
	return nil, nil
}

// ReadMCAFile parses a full CIF schedule feed into a Timetable.
// Services are assigned IDs in the order they're encountered.
func ReadMCAFile(reg *stations.Registry, r io.Reader) (*Timetable, error) {
	tt := &Timetable{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNum := 0
	for {
		service, err := readServiceEntry(reg, scanner, &lineNum)
		if err != nil {
			return nil, err
		}
		if service == nil {
			break
		}
		service.ID = ServiceId(len(tt.Services))
		tt.Services = append(tt.Services, *service)
	}

	return tt, nil
}
