package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/antigravity/railplan/internal/config"
)

var v = viper.New()

var rootCmd = &cobra.Command{
	Use:          "railplan",
	Short:        "UK rail earliest-arrival journey planner",
	Long:         "Loads a CIF-derived rail dataset and serves earliest-arrival multi-destination journey queries",
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("data", "", "path prefix of the .MSN/.FLF/.MCA dataset trio")
	flags.Int("port", 8080, "HTTP listen port")
	flags.StringSlice("cors-origin", []string{"*"}, "allowed CORS origins")
	flags.Bool("metrics", true, "expose /metrics")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-format", "json", "log format: json or text")
	flags.String("audit-dsn", "", "Postgres DSN for the journey-audit sink; empty disables it")

	_ = v.BindPFlag("data.prefix", flags.Lookup("data"))
	_ = v.BindPFlag("server.port", flags.Lookup("port"))
	_ = v.BindPFlag("server.cors_origins", flags.Lookup("cors-origin"))
	_ = v.BindPFlag("server.metrics_enabled", flags.Lookup("metrics"))
	_ = v.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = v.BindPFlag("logging.format", flags.Lookup("log-format"))
	_ = v.BindPFlag("audit.dsn", flags.Lookup("audit-dsn"))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(stationsCmd)
}

func loadConfig() (*config.Config, error) {
	return config.Load(v)
}
