// Package cli implements hrctl, the operator command line for the employee
// slot: inspect, print and reseed the collection without the HTTP server.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aanand-mishra/employees-api/internal/persistence"
	"github.com/aanand-mishra/employees-api/internal/report"
	"github.com/aanand-mishra/employees-api/internal/storage/sqlite"
	"github.com/aanand-mishra/employees-api/internal/store"
	"github.com/aanand-mishra/employees-api/internal/types"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	DBPath  string
	Key     string
	Verbose bool
}

// NewRootCommand creates the root command for hrctl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "hrctl",
		Short:         "Inspect and maintain the employee store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "storage/employees.db", "path to the SQLite database")
	cmd.PersistentFlags().StringVar(&opts.Key, "key", persistence.DefaultKey, "durable slot name")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log persistence activity to stderr")

	cmd.AddCommand(newListCommand(opts))
	cmd.AddCommand(newPrintCommand(opts))
	cmd.AddCommand(newStatsCommand(opts))
	cmd.AddCommand(newResetCommand(opts))

	return cmd
}

// withStore opens the slot, loads the collection and hands a store to fn.
func withStore(cmd *cobra.Command, opts *RootOptions, fn func(*store.Store) error) error {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	if opts.Verbose {
		log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
	}

	slot, err := sqlite.Open(opts.DBPath)
	if err != nil {
		return err
	}
	defer slot.Close()

	adapter := persistence.New(slot, opts.Key, log)
	return fn(store.New(adapter.Load(), adapter, log))
}

func newListCommand(opts *RootOptions) *cobra.Command {
	var q report.Query
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List employees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, opts, func(s *store.Store) error {
				employees := q.Apply(s.List())
				if asJSON {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(employees)
				}
				report.WriteTable(cmd.OutOrStdout(), employees)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&q.Search, "search", "", "case-insensitive name filter")
	cmd.Flags().StringVar(&q.Gender, "gender", report.All, "All, Male, Female or Other")
	cmd.Flags().StringVar(&q.Status, "status", report.All, "All, Active or Inactive")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print records as JSON")
	return cmd
}

func newPrintCommand(opts *RootOptions) *cobra.Command {
	var html bool

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Render the printable employee list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, opts, func(s *store.Store) error {
				if html {
					return report.WriteHTML(cmd.OutOrStdout(), s.List(), time.Now())
				}
				report.WriteTable(cmd.OutOrStdout(), s.List())
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&html, "html", false, "emit the HTML print view")
	return cmd
}

func newStatsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show total, active and inactive counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, opts, func(s *store.Store) error {
				st := report.Summarize(s.List())
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "total: %d\nactive: %d\ninactive: %d\n",
					st.Total, st.Active, st.Inactive)
				return err
			})
		},
	}
}

func newResetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Replace the collection with the sample records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, opts, func(s *store.Store) error {
				s.Replace(types.SeedEmployees())
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "reset %q to %d sample records\n",
					opts.Key, len(types.SeedEmployees()))
				return err
			})
		},
	}
}
