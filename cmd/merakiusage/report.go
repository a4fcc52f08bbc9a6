package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/awheeler/merakiusage/internal/config"
	"github.com/awheeler/merakiusage/internal/db"
	"github.com/awheeler/merakiusage/internal/exitcode"
	"github.com/awheeler/merakiusage/internal/logging"
	"github.com/awheeler/merakiusage/internal/meraki"
	"github.com/awheeler/merakiusage/internal/prompt"
	"github.com/awheeler/merakiusage/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the API usage report",
	Long: "Fetches the organization's API request log for a trailing window, " +
		"resolves admin ids to names, writes a timestamped CSV, and prints " +
		"summary tables for request types, response codes, and API calls.",
	RunE: runReport,
}

func init() {
	f := reportCmd.Flags()
	f.IntVar(&cfg.Days, "days", 0, "Days of history to include, 1-31 (prompts when omitted)")
	f.StringVar(&cfg.OutDir, "out", "", "Directory for the report files (default: current directory)")
	f.BoolVar(&cfg.Archive, "archive", false, "Also archive the run to Postgres")
	f.BoolVar(&cfg.Parquet, "parquet", false, "Also write a Parquet copy of the report")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.Verbose)
	ctx := context.Background()

	if err := cfg.Resolve(configFile); err != nil {
		log.Error().Err(err).Msg("config load failed")
		os.Exit(exitcode.UsageError)
	}

	report.Banner(os.Stdout, "Meraki API Usage Report")

	p := prompt.New()
	if cfg.APIKey == "" && term.IsTerminal(int(os.Stdin.Fd())) {
		key, err := p.Secret("Enter your Meraki API key")
		if err != nil {
			log.Error().Err(err).Msg("reading api key failed")
			os.Exit(exitcode.UsageError)
		}
		cfg.APIKey = key
	}

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	if err := cfg.ValidateDays(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	if cfg.Archive {
		if err := cfg.ValidateWithDSN(); err != nil {
			log.Error().Err(err).Msg("config validation failed")
			os.Exit(exitcode.UsageError)
		}
	}

	days := cfg.Days
	if days == 0 {
		var err error
		days, err = p.IntInRange("Enter Timespan (in days) to retrieve API Usage",
			config.MinWindowDays, config.MaxWindowDays, config.DefaultWindowDays)
		if err != nil {
			log.Error().Err(err).Msg("reading timespan failed")
			os.Exit(exitcode.UsageError)
		}
	}

	client, err := meraki.New(meraki.Options{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Caller:  cfg.Caller,
	}, log)
	if err != nil {
		log.Error().Err(err).Msg("client setup failed")
		os.Exit(exitcode.UsageError)
	}

	var pool *pgxpool.Pool
	if cfg.Archive {
		pool, err = db.NewPool(ctx, cfg.DSN)
		if err != nil {
			log.Error().Err(err).Msg("database connection failed")
			os.Exit(exitcode.DBConnError)
		}
		defer pool.Close()
	}

	summary, err := report.Run(ctx, client, pool, log, report.Params{
		OrgID:           cfg.OrgID,
		TimespanSeconds: config.TimespanSeconds(days),
		OutDir:          cfg.OutDir,
		Parquet:         cfg.Parquet,
		StartedAt:       time.Now(),
	})
	if err != nil {
		if pe, ok := err.(*report.PipelineError); ok {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("report failed")
			switch pe.Phase {
			case "admins":
				os.Exit(exitcode.AdminFetchError)
			case "requests":
				os.Exit(exitcode.LogFetchError)
			case "archive":
				os.Exit(exitcode.ArchiveError)
			default:
				os.Exit(exitcode.WriteError)
			}
		}
		log.Error().Err(err).Msg("report failed")
		os.Exit(exitcode.WriteError)
	}

	fmt.Printf("Successfully saved API requests to %s!\n", summary.OutputFile)
	if summary.ParquetFile != "" {
		fmt.Printf("Parquet copy written to %s\n", summary.ParquetFile)
	}
	if cfg.Archive {
		fmt.Printf("Archived %d rows to Postgres (run %s)\n", summary.RowsArchived, summary.RunID)
	}

	report.RenderSummaryTable(os.Stdout, "Request Type", summary.Methods)
	report.RenderSummaryTable(os.Stdout, "Response Code", summary.ResponseCodes)
	report.RenderSummaryTable(os.Stdout, "API Call", summary.Operations)

	return nil
}
