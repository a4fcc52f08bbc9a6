package main

import (
	"github.com/spf13/cobra"

	"github.com/awheeler/merakiusage/internal/config"
)

var (
	cfg        config.Config
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "merakiusage",
	Short: "Meraki Dashboard API usage reporting",
	Long: "Fetches an organization's API request log from the Meraki Dashboard, " +
		"resolves admin ids to display names, and writes a timestamped CSV report " +
		"with summary statistics.",
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.OrgID, "org", "", "Organization id (or set ORG_ID)")
	pf.StringVar(&cfg.BaseURL, "base-url", "", "Dashboard API base URL (or set MERAKI_BASE_URL)")
	pf.StringVar(&cfg.DSN, "dsn", "", "Postgres connection string for archiving (or set MERAKIUSAGE_DB_URL)")
	pf.StringVar(&configFile, "config", "", "Path to YAML config file")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.BoolVar(&cfg.Verbose, "verbose", false, "Enable debug logging")
}
