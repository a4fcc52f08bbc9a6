package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/awheeler/merakiusage/internal/exitcode"
	"github.com/awheeler/merakiusage/internal/logging"
	"github.com/awheeler/merakiusage/internal/meraki"
)

var adminsCmd = &cobra.Command{
	Use:   "admins",
	Short: "List the organization's dashboard administrators",
	RunE:  runAdmins,
}

func init() {
	rootCmd.AddCommand(adminsCmd)
}

func runAdmins(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.Verbose)
	ctx := context.Background()

	if err := cfg.Resolve(configFile); err != nil {
		log.Error().Err(err).Msg("config load failed")
		os.Exit(exitcode.UsageError)
	}
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
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

	admins, err := client.Admins(ctx, cfg.OrgID)
	if err != nil {
		log.Error().Err(err).Msg("admin fetch failed")
		os.Exit(exitcode.AdminFetchError)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tEMAIL\tORG ACCESS\tSTATUS\t2FA\tAPI KEY\tLAST ACTIVE")
	fmt.Fprintln(w, "----\t-----\t----------\t------\t---\t-------\t-----------")
	for _, a := range admins {
		lastActive := ""
		if a.LastActive != nil {
			lastActive = a.LastActive.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			a.Name, a.Email, a.OrgAccess, a.AccountStatus,
			yesNo(a.TwoFactorAuthEnabled), yesNo(a.HasAPIKey), lastActive)
	}
	w.Flush()

	fmt.Printf("\n%d administrators\n", len(admins))
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
