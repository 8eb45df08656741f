// Command railplan bootstraps the rail dataset and query façade: a
// root command with persistent flags bound through viper, and
// subcommands wired in init().
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
