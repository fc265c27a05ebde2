package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/MichalMitros/pim-sync/cmd/pimsync/config"
	"github.com/MichalMitros/pim-sync/internal/handler"
	"github.com/MichalMitros/pim-sync/internal/platform"
	"github.com/MichalMitros/pim-sync/internal/platform/models"
	"github.com/MichalMitros/pim-sync/internal/platform/storage"
	"github.com/MichalMitros/pim-sync/internal/scheduler"
	"github.com/MichalMitros/pim-sync/pkg/v1/commander"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root, closeApp := newRootCmd()
	err := root.ExecuteContext(ctx)
	closeApp()

	if err != nil {
		stop()
		os.Exit(1)
	}
}

// newRootCmd returns root command and function closing dependencies it opened.
func newRootCmd() (*cobra.Command, func()) {
	var a *app

	root := &cobra.Command{
		Use:          "pimsync",
		Short:        "Synchronizes PIM catalog into local store",
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
			level, err := zerolog.ParseLevel(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("can't parse log level: %w", err)
			}
			zerolog.SetGlobalLevel(level)

			a, err = newApp(cfg, &logger)
			return err
		},
	}

	root.AddCommand(
		newSyncCmd(&a),
		newServeCmd(&a),
		newTriggerCmd(&a),
		newTestConnectionCmd(&a),
		newMigrateCmd(&a),
		newRunsCmd(&a),
		newStatsCmd(&a),
	)

	return root, func() {
		if a != nil {
			a.close()
		}
	}
}

func newSyncCmd(a **app) *cobra.Command {
	var full bool
	var days uint

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Runs delta synchronization, or full one with --full",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := *a
			out := cmd.OutOrStdout()

			if !app.cfg.Sync.Enabled {
				fmt.Fprintln(out, "synchronization disabled")
				return nil
			}

			err := runSync(cmd.Context(), app, out, full, lo.Ternary(days > 0, days, app.cfg.Sync.DeltaDays))
			if errors.Is(err, platform.ErrAlreadyRunning) {
				fmt.Fprintln(out, "synchronization already running, skipped")
				return nil
			}

			if _, cleanupErr := app.syncer.Cleanup(context.WithoutCancel(cmd.Context())); cleanupErr != nil {
				app.logger.Error().Err(cleanupErr).Msg("can't cleanup run log")
			}

			return err
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "synchronize categories and all products")
	cmd.Flags().UintVar(&days, "days", 0, "changes window of delta synchronization in days (default SYNC_DELTA_DAYS)")

	return cmd
}

func runSync(ctx context.Context, app *app, out io.Writer, full bool, days uint) error {
	if full {
		fmt.Fprintln(out, "running full synchronization")
		result, err := app.syncer.RunFull(ctx)
		if errors.Is(err, platform.ErrAlreadyRunning) {
			return err
		}

		fmt.Fprintf(out, "categories synced: %d\nproducts synced: %d\n", result.CategoriesSynced, result.ProductsSynced)
		printErrors(out, result.Errors, err)

		return err
	}

	fmt.Fprintf(out, "running delta synchronization of last %d days\n", days)
	result, err := app.syncer.RunDelta(ctx, days)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		return err
	}

	fmt.Fprintf(out, "products updated: %d\nproducts created: %d\n", result.ProductsUpdated, result.ProductsCreated)
	printErrors(out, result.Errors, err)

	return err
}

func printErrors(out io.Writer, errs []models.EntityError, runErr error) {
	fmt.Fprintf(out, "errors: %d\n", len(errs))
	for _, err := range errs {
		fmt.Fprintf(out, "  %s\n", err)
	}
	if runErr != nil {
		fmt.Fprintf(out, "synchronization failed: %s\n", runErr)
	}
}

func newServeCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Runs scheduled synchronizations and consumes sync commands from RabbitMQ",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := *a
			if !app.cfg.Sync.Enabled {
				app.logger.Info().Msg("synchronization disabled, nothing to serve")
				return nil
			}

			g, ctx := errgroup.WithContext(cmd.Context())

			if app.cfg.RabbitMQ.URL != "" {
				conn, mq, err := app.openRabbitMQ()
				if err != nil {
					return err
				}
				defer func() {
					if err := conn.Close(); err != nil {
						app.logger.Error().
							Err(err).
							Msg("can't close RabbitMQ connection")
					}
				}()

				han := handler.NewHandler(mq, app.syncer, app.cfg.Sync.DeltaDays, app.logger)
				if err := han.Start(ctx, app.cfg.RabbitMQ.Queue); err != nil {
					return fmt.Errorf("can't start consuming: %w", err)
				}

				// wait for consumer to finish
				g.Go(func() error {
					<-mq.Done()
					if ctx.Err() == nil {
						return errors.New("RabbitMQ consumer stopped")
					}
					return nil
				})
			}

			g.Go(func() error {
				return scheduler.NewScheduler(app.syncer, app.logger).Run(ctx, scheduler.Schedule{
					DeltaInterval: app.cfg.Sync.Interval,
					DeltaDays:     app.cfg.Sync.DeltaDays,
					FullSpec:      app.cfg.Sync.FullSchedule,
				})
			})

			app.logger.Info().Msg("pim-sync up and running")

			err := g.Wait()

			app.logger.Info().Msg("graceful shutdown successful")

			return err
		},
	}
}

func newTriggerCmd(a **app) *cobra.Command {
	var full bool
	var days uint

	cmd := &cobra.Command{
		Use:   "trigger",
		Short: "Publishes sync command to RabbitMQ",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := *a

			conn, mq, err := app.openRabbitMQ()
			if err != nil {
				return err
			}
			defer func() { _ = conn.Close() }()

			cmdr := commander.NewSyncCommander(commander.NewRabbitMQSender(mq, app.cfg.RabbitMQ.RoutingKey))
			if full {
				err = cmdr.SendFullSync(cmd.Context())
			} else {
				err = cmdr.SendDeltaSync(cmd.Context(), days)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "sync command sent")

			return nil
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "request full synchronization")
	cmd.Flags().UintVar(&days, "days", 0, "changes window of delta synchronization in days (default SYNC_DELTA_DAYS of consumer)")

	return cmd
}

func newTestConnectionCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "test-connection",
		Short: "Checks PIM credentials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !(*a).syncer.TestConnection(cmd.Context()) {
				return errors.New("can't connect to PIM")
			}

			fmt.Fprintln(cmd.OutOrStdout(), "connection ok")

			return nil
		},
	}
}

func newMigrateCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Applies database schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			version, err := storage.Migrate((*a).db)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "schema version: %d\n", version)

			return nil
		},
	}
}

func newRunsCmd(a **app) *cobra.Command {
	var limit int
	var errorsOf int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Prints recent synchronization runs, or entities failed during run with --errors",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if errorsOf > 0 {
				run, mappings, err := (*a).syncer.RunErrors(cmd.Context(), errorsOf, limit)
				if err != nil {
					return err
				}

				return printRunErrors(cmd.OutOrStdout(), run, mappings)
			}

			runs, err := (*a).syncer.LastRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}

			return printRuns(cmd.OutOrStdout(), runs)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "number of runs or failed entities")
	cmd.Flags().IntVar(&errorsOf, "errors", 0, "id of run whose failed entities are printed")

	return cmd
}

func newStatsCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Prints synchronization statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := (*a).syncer.Stats(cmd.Context())
			if err != nil {
				return err
			}

			printStats(cmd.OutOrStdout(), stats)

			return nil
		},
	}
}

func printRuns(out io.Writer, runs []models.Run) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tSTATUS\tSTARTED\tCOMPLETED\tCATEGORIES\tPRODUCTS\tFAILED")

	for _, run := range runs {
		completed := "-"
		if run.CompletedAt != nil {
			completed = run.CompletedAt.Format(time.DateTime)
		}

		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\t%d\t%d\n",
			run.ID,
			run.Type,
			run.Status,
			run.StartedAt.Format(time.DateTime),
			completed,
			lo.FromPtr(run.AffectedCategories),
			lo.FromPtr(run.AffectedProducts),
			lo.FromPtr(run.FailedEntities),
		)
	}

	return w.Flush()
}

func printRunErrors(out io.Writer, run *models.Run, mappings []models.Mapping) error {
	fmt.Fprintf(out, "run %d (%s, %s) started %s\n", run.ID, run.Type, run.Status, run.StartedAt.Format(time.DateTime))
	if run.ErrorDetails != nil {
		fmt.Fprintf(out, "%s\n", *run.ErrorDetails)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tUID\tLOCAL ID\tLAST SYNC")
	for _, mapping := range mappings {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			mapping.EntityType,
			mapping.ExternalUID,
			mapping.LocalID,
			mapping.LastSync.Format(time.DateTime),
		)
	}

	return w.Flush()
}

func printStats(out io.Writer, stats models.Stats) {
	fmt.Fprintf(out, "categories synced: %d\n", stats.Count(models.EntityCategory, models.StatusSynced))
	fmt.Fprintf(out, "products synced: %d\n", stats.Count(models.EntityProduct, models.StatusSynced))
	fmt.Fprintf(out, "pending: %d\n", stats.Count("", models.StatusPending))
	fmt.Fprintf(out, "errors: %d\n", stats.Count("", models.StatusError))

	lastSync := "never"
	if stats.LastCompleted != nil && stats.LastCompleted.CompletedAt != nil {
		lastSync = stats.LastCompleted.CompletedAt.Format(time.DateTime)
	}
	fmt.Fprintf(out, "last completed sync: %s\n", lastSync)

	if stats.Running != nil {
		fmt.Fprintf(out, "running: %s run %d since %s\n",
			stats.Running.Type, stats.Running.ID, stats.Running.StartedAt.Format(time.DateTime))
	}
}
