package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/sitesearch/internal/config"
	"github.com/kailas-cloud/sitesearch/internal/version"
)

type rootOptions struct {
	env string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "sitesearch",
		Short: "Full-text search for a static blog",
		Long: `sitesearch indexes the blog corpus in memory and answers queries.

Example usage:
  sitesearch serve                         # serve the search page (config/$ENV.yaml)
  sitesearch search personalization        # print ranked hits
  sitesearch search --view list --html go  # print the rendered results container`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), opts.env)
		},
	}
	root.PersistentFlags().StringVar(&opts.env, "env", config.GetEnv(), "config environment (local, dev, prod)")

	root.AddCommand(
		newServeCmd(opts),
		newSearchCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return err
		},
	}
}
