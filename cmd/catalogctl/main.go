// Command catalogctl queries the embedded listing catalog from the shell.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"neighborhood-share/internal/catalog"
	"neighborhood-share/internal/fixtures"
	"neighborhood-share/internal/model"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "catalogctl",
		Short:        "Query the neighborhood resource catalog",
		SilenceUsage: true,
	}
	root.AddCommand(newSearchCmd(), newShowCmd())
	return root
}

func newSearchCmd() *cobra.Command {
	var (
		category string
		query    string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "search",
		Short: "List listings matching a category selector and search text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := catalog.Filter(fixtures.Listings(), category, query)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			return writeTable(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", model.SelectorAll, "All, Featured, New or an exact category")
	cmd.Flags().StringVarP(&query, "query", "q", "", "case-insensitive text matched against title, owner and description")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one listing with its related items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			listings := fixtures.Listings()
			l, ok := catalog.Resolve(listings, args[0])
			if !ok {
				return fmt.Errorf("listing %q not found", args[0])
			}
			related, _ := catalog.Related(listings, l)

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s (%s)\n", l.Title, l.Category)
			fmt.Fprintf(w, "by %s, trust %.1f, rating %.1f, %s\n", l.Owner, l.TrustScore, l.Rating, l.Distance)
			if l.Price != "" {
				fmt.Fprintf(w, "price: %s\n", l.Price)
			}
			fmt.Fprintf(w, "\n%s\n", l.FullDescription)
			if len(related) > 0 {
				fmt.Fprintln(w, "\nrelated:")
				return writeTable(w, related)
			}
			return nil
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTable(w io.Writer, ls []model.Listing) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tOWNER\tAVAILABLE")
	for _, l := range ls {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\n", l.ID, l.Title, l.Category, l.Owner, l.IsAvailable)
	}
	return tw.Flush()
}
