// Package railservice assembles the loaded dataset — stations, fixed
// links, timetable, and the resulting travel graph — into one
// immutable value the rest of the service queries (spec §4, §5).
package railservice

import (
	"fmt"
	"io"
	"os"

	"github.com/antigravity/railplan/internal/fixedlinks"
	"github.com/antigravity/railplan/internal/railerr"
	"github.com/antigravity/railplan/internal/stations"
	"github.com/antigravity/railplan/internal/timetable"
	"github.com/antigravity/railplan/internal/travelgraph"
)

// RailServices is the full loaded dataset for one timetable period.
type RailServices struct {
	Stations   *stations.Registry
	FixedLinks []fixedlinks.Link
	Timetable  *timetable.Timetable
	Graph      *travelgraph.Graph
}

// LoadServices loads the MSN/FLF/MCA triple sharing filePrefix (e.g.
// "RJTTF748" for "RJTTF748.MSN", "RJTTF748.FLF", "RJTTF748.MCA") and
// builds the travel graph over them.
func LoadServices(filePrefix string) (*RailServices, error) {
	stationList, err := readFile(filePrefix+".MSN", stations.ReadMSNFile)
	if err != nil {
		return nil, err
	}

	flinks, err := readFile(filePrefix+".FLF", func(r io.Reader) ([]fixedlinks.Link, error) {
		return fixedlinks.Parse(stationList, r)
	})
	if err != nil {
		return nil, err
	}

	tt, err := readFile(filePrefix+".MCA", func(r io.Reader) (*timetable.Timetable, error) {
		return timetable.ReadMCAFile(stationList, r)
	})
	if err != nil {
		return nil, err
	}

	graph := travelgraph.New(stationList, flinks, tt)

	return &RailServices{
		Stations:   stationList,
		FixedLinks: flinks,
		Timetable:  tt,
		Graph:      graph,
	}, nil
}

func readFile[T any](path string, parse func(io.Reader) (T, error)) (T, error) {
	var zero T

	f, err := os.Open(path)
	if err != nil {
		return zero, railerr.Wrap(err, fmt.Sprintf("opening %s", path))
	}
	defer f.Close()

	return parse(f)
}
