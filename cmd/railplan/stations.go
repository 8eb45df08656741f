package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/antigravity/railplan/internal/railservice"
)

var stationsCmd = &cobra.Command{
	Use:   "stations <crs-or-name>",
	Short: "Look up a station by CRS code or name against a loaded dataset",
	Args:  cobra.ExactArgs(1),
	RunE:  stationsLookup,
}

func stationsLookup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	rail, err := railservice.LoadServices(cfg.Data.Prefix)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	query := strings.ToUpper(args[0])

	printed := make(map[string]bool)
	if id, ok := rail.Stations.LookupByCRS(query); ok {
		station, _ := rail.Stations.Get(id)
		fmt.Printf("%s: %s\n", station.CRS, strings.Join(station.Names, " / "))
		printed[station.CRS] = true
	}

	for id := range rail.Stations.NameSearch(query) {
		station, _ := rail.Stations.Get(id)
		if printed[station.CRS] {
			continue
		}
		fmt.Printf("%s: %s\n", station.CRS, strings.Join(station.Names, " / "))
		printed[station.CRS] = true
	}

	if len(printed) == 0 {
		fmt.Printf("no station matching %q\n", args[0])
	}

	return nil
}
