// Package main provides costctl, a command line client of the construction
// cost API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ojmarte/construction-api/pkg/clients/costapi"
)

var version = "0.1.0-dev"

const defaultAPIURL = "http://localhost:8080/api"

type rootOptions struct {
	apiURL  string
	timeout time.Duration
	output  string
}

func (o *rootOptions) client() *costapi.Client {
	return costapi.NewClient(o.apiURL, o.timeout)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	_ = godotenv.Load()
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "costctl",
		Short:         "Manage construction cost data through the cost API",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return validateOutput(opts.output)
		},
	}

	apiURL := os.Getenv("COSTAPI_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	rootCmd.PersistentFlags().StringVar(&opts.apiURL, "api-url", apiURL, "Base URL of the API (env COSTAPI_URL)")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 15*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", formatJSON, "Output format: json or yaml")

	rootCmd.AddCommand(
		newListCmd(opts),
		newGetCmd(opts),
		newDeleteCmd(opts),
		newAddEntryCmd(opts),
		newSeedCmd(opts),
		newRefsCmd(opts),
		newResourcesCmd(),
	)

	return rootCmd
}
