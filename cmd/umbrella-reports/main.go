// Package main provides the CLI entry point for the Umbrella reports client.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/umbrella-tools/umbrella-reports/internal/config"
	"github.com/umbrella-tools/umbrella-reports/internal/umbrella/auth"
	"github.com/umbrella-tools/umbrella-reports/internal/umbrella/client"
	"github.com/umbrella-tools/umbrella-reports/internal/umbrella/reports"
)

// version is set at build time via ldflags.
var version = "dev"

type reportCall func(context.Context, client.Params) (json.RawMessage, error)

// endpointCalls maps CLI endpoint names onto the reporting methods.
func endpointCalls(r *reports.Reports) map[string]reportCall {
	return map[string]reportCall{
		"summary":                r.Summary,
		"summary-by-category":    r.SummaryByCategory,
		"summary-by-destination": r.SummaryByDestination,
		"summary-by-rule":        r.SummaryByRule,
		"top-identities":         r.TopIdentities,
		"top-destinations":       r.TopDestinations,
		"top-categories":         r.TopCategories,
		"top-event-types":        r.TopEventTypes,
		"top-dns-query-types":    r.TopDNSQueryTypes,
		"top-files":              r.TopFiles,
		"top-threats":            r.TopThreats,
		"top-threat-types":       r.TopThreatTypes,
		"top-ips":                r.TopIPs,
		"top-urls":               r.TopURLs,
		"activity":               r.Activity,
		"identity-distribution":  r.IdentityDistribution,
		"total-requests":         r.TotalRequests,
	}
}

// endpointNames lists the CLI endpoint names for help output, sorted.
// Must stay in step with endpointCalls.
var endpointNames = []string{
	"activity",
	"identity-distribution",
	"summary",
	"summary-by-category",
	"summary-by-destination",
	"summary-by-rule",
	"top-categories",
	"top-destinations",
	"top-dns-query-types",
	"top-event-types",
	"top-files",
	"top-identities",
	"top-ips",
	"top-threat-types",
	"top-threats",
	"top-urls",
	"total-requests",
}

func newAuth(cfg *config.Config) (*auth.Auth, error) {
	authCfg := auth.DefaultConfig()
	authCfg.TokenURL = cfg.TokenURL

	a, err := auth.New(cfg.Credentials, authCfg)
	if err != nil {
		return nil, fmt.Errorf("configuring auth: %w", err)
	}
	return a, nil
}

func buildRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "umbrella-reports",
		Short: "Query the Cisco Umbrella reporting API",
		Long: `Query the Cisco Umbrella reporting v2 API from the command line.

Credentials are read from the DNS_API_KEY and DNS_API_SECRET environment
variables (a local .env file is honoured).`,
		Version: version,
	}

	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Fetch a bearer token and print its expiry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			a, err := newAuth(cfg)
			if err != nil {
				return err
			}

			if err := a.FetchToken(cmd.Context()); err != nil {
				return fmt.Errorf("fetching token: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "token acquired, expires at %s\n",
				a.ExpiresAt().Format(time.RFC3339))
			return nil
		},
	}

	var (
		timeFrom string
		timeTo   string
		size     int
		page     int
	)

	reportCmd := &cobra.Command{
		Use:   "report <endpoint>",
		Short: "Run a reporting endpoint and print the JSON body",
		Long: "Run a reporting endpoint and print the JSON body.\n\nEndpoints:\n  " +
			strings.Join(endpointNames, "\n  "),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			a, err := newAuth(cfg)
			if err != nil {
				return err
			}

			clientCfg := client.DefaultConfig()
			clientCfg.BaseURL = cfg.BaseURL

			rc, err := client.New(a, clientCfg)
			if err != nil {
				return fmt.Errorf("creating client: %w", err)
			}

			call, ok := endpointCalls(reports.New(rc))[args[0]]
			if !ok {
				return fmt.Errorf("unknown endpoint %q, see --help for the list", args[0])
			}

			params := client.Params{
				From: timeFrom,
				To:   timeTo,
			}
			// Only flags the caller actually set become overrides, so an
			// explicit --page 0 still counts.
			if cmd.Flags().Changed("size") {
				params.Size = &size
			}
			if cmd.Flags().Changed("page") {
				params.Page = &page
			}

			body, err := call(cmd.Context(), params)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(body))
			return nil
		},
	}

	reportCmd.Flags().StringVar(&timeFrom, "from", "",
		`start of the time range ("now", an epoch value or -<N><unit>)`)
	reportCmd.Flags().StringVar(&timeTo, "to", "",
		`end of the time range ("now", an epoch value or -<N><unit>)`)
	reportCmd.Flags().IntVar(&size, "size", 0, "number of results per page")
	reportCmd.Flags().IntVar(&page, "page", 0, "pagination offset")

	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(reportCmd)

	return rootCmd
}

func main() {
	ctx := context.Background()
	rootCmd := buildRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
