package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	sitesearch "github.com/kailas-cloud/sitesearch/pkg/sdk"
)

type searchOptions struct {
	corpusPath string
	view       string
	html       bool
	titleBoost float64
}

func newSearchCmd() *cobra.Command {
	opts := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search <term>...",
		Short: "Query the corpus once and print the results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, opts, strings.Join(args, " "))
		},
	}
	cmd.Flags().StringVar(&opts.corpusPath, "corpus", "", "JSON corpus file (default: bundled corpus)")
	cmd.Flags().StringVar(&opts.view, "view", "", "results view for --html: modal or list")
	cmd.Flags().BoolVar(&opts.html, "html", false, "print the rendered results container")
	cmd.Flags().Float64Var(&opts.titleBoost, "title-boost", 0, "weight of title matches")
	return cmd
}

func runSearch(cmd *cobra.Command, opts *searchOptions, term string) error {
	var clientOpts []sitesearch.Option
	if opts.corpusPath != "" {
		clientOpts = append(clientOpts, sitesearch.WithCorpusFile(opts.corpusPath))
	}
	if opts.titleBoost > 0 {
		clientOpts = append(clientOpts, sitesearch.WithTitleBoost(opts.titleBoost))
	}

	client, err := sitesearch.New(cmd.Context(), clientOpts...)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	out := cmd.OutOrStdout()
	if opts.html {
		html, err := client.Render(cmd.Context(), term, sitesearch.View(opts.view))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, html)
		return err
	}

	hits, err := client.Search(cmd.Context(), term)
	if err != nil {
		return err
	}
	if len(hits) == 0 {
		_, err = fmt.Fprintln(out, "No results found...")
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "SCORE\tTITLE\tURL")
	for _, h := range hits {
		_, _ = fmt.Fprintf(tw, "%.3f\t%s\t%s\n", h.Score, h.Title, h.URL)
	}
	return tw.Flush()
}
