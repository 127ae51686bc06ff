package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/packit/internal/config"
	"github.com/jask/packit/internal/export"
	"github.com/jask/packit/internal/secrets"
	"github.com/jask/packit/internal/service"
	"github.com/jask/packit/internal/store"
	"github.com/jask/packit/internal/testdata"
	"github.com/jask/packit/internal/trip"
	"github.com/jask/packit/internal/tui"
)

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	o := &rootOptions{}
	root := &cobra.Command{
		Use:           "packit",
		Short:         "Plan what to pack for a trip",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(ctx context.Context, e *env) error {
				return runTUI(ctx, e, tui.ScreenTrips)
			})
		},
	}
	root.PersistentFlags().StringVar(&o.configPath, "config", "", "config file (default $PACKIT_CONFIG or ~/.config/packit/config.toml)")
	root.PersistentFlags().StringVar(&o.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&o.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	root.AddCommand(newNewCmd(o))
	root.AddCommand(newShowCmd(o))
	root.AddCommand(newTripsCmd(o))
	root.AddCommand(newConfigCmd(o))
	root.AddCommand(newSeedCmd(o))
	root.AddCommand(newDeleteCmd(o))
	root.AddCommand(newResetCmd(o))
	return root
}

func (o *rootOptions) run(cmd *cobra.Command, fn func(ctx context.Context, e *env) error) error {
	e, err := o.setup()
	if err != nil {
		return err
	}
	defer e.close()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return fn(ctx, e)
}

func runTUI(ctx context.Context, e *env, start tui.Screen) error {
	app := tui.New(ctx, tui.Deps{Runner: e.runner(), Trips: e.trips, Draft: e.draft}, start)
	_, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

func newNewCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Plan a new trip with the step-by-step wizard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(ctx context.Context, e *env) error {
				return runTUI(ctx, e, tui.ScreenWizard)
			})
		},
	}
}

func newShowCmd(o *rootOptions) *cobra.Command {
	var exportPath string
	cmd := &cobra.Command{
		Use:   "show <tripID>",
		Short: "Print a saved trip or export it as a checklist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(ctx context.Context, e *env) error {
				c, err := e.trips.Load(ctx, args[0])
				if err != nil {
					return err
				}
				if exportPath != "" {
					if err := export.WriteFile(exportPath, c); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", c.Destination, exportPath)
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), tui.RenderSummary(c, 0))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&exportPath, "export", "", "write a checklist file (.toml or .json)")
	return cmd
}

func newTripsCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "trips",
		Short: "List your saved trips",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(ctx context.Context, e *env) error {
				trips, err := e.trips.List(ctx)
				if err != nil {
					return err
				}
				return printTrips(cmd.OutOrStdout(), trips)
			})
		},
	}
}

func printTrips(w io.Writer, trips []trip.Canonical) error {
	if len(trips) == 0 {
		_, err := fmt.Fprintln(w, "No trips yet. Run `packit new` to plan one.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDESTINATION\tDATES\tDETAILS")
	for _, c := range trips {
		fmt.Fprintf(tw, "%s\t%s\t%s → %s\t%s\n", c.ID, c.Destination, c.StartDate, c.EndDate, tui.TripLine(c))
	}
	return tw.Flush()
}

func newConfigCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration and credentials",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set-token <token>",
		Short: "Store the packing service token in the secrets store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sec, err := secrets.Default()
			if err != nil {
				return err
			}
			if err := sec.Put(secrets.BackendToken, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Token saved.")
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.loadConfig()
			if err != nil {
				return err
			}
			if err := config.Save(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", config.Path())
			return nil
		},
	})
	return cmd
}

func newSeedCmd(o *rootOptions) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Save sample trips for the current user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(ctx context.Context, e *env) error {
				now := time.Now()
				ids, err := testdata.Seed(ctx, e.store, e.uid, count, rand.New(rand.NewSource(now.UnixNano())), now)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d trips.\n", len(ids))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&count, "count", 5, "number of trips")
	return cmd
}

func newDeleteCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <tripID>",
		Short: "Delete one trip from the local store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(ctx context.Context, e *env) error {
				local, ok := e.store.(*store.SQLite)
				if !ok {
					return fmt.Errorf("delete needs store.driver = %q", config.DriverSQLite)
				}
				m := &service.MaintenanceService{DB: local.DB}
				if err := m.DeleteTrip(ctx, e.uid, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted trip %s.\n", args[0])
				return nil
			})
		},
	}
}

func newResetCmd(o *rootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every trip in the local store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("reset deletes all local trips; pass --yes to confirm")
			}
			return o.run(cmd, func(ctx context.Context, e *env) error {
				local, ok := e.store.(*store.SQLite)
				if !ok {
					return fmt.Errorf("reset needs store.driver = %q", config.DriverSQLite)
				}
				m := &service.MaintenanceService{DB: local.DB}
				if err := m.Reset(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Local store cleared.")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}
