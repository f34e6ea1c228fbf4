// Command triplog records and manages trips from the terminal against the
// same store the API server uses.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pkordes/triplog/internal/config"
	"github.com/pkordes/triplog/internal/domain"
	"github.com/pkordes/triplog/internal/repo"
	"github.com/pkordes/triplog/internal/service"
	"github.com/pkordes/triplog/internal/timeline"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// app is an opened store plus the services the commands need.
// The caller must defer Close.
type app struct {
	cfg       config.Config
	store     *repo.Store
	log       *slog.Logger
	recording *service.RecordingService
	trips     *service.TripService
	export    *service.ExportService
	stats     *service.StatsService
	backup    *service.BackupService
}

// newApp reads the config and opens the configured store.
// The --config file, when given, replaces TRIPLOG_CONFIG.
func newApp(ctx context.Context) (*app, error) {
	load := config.Load
	if configPath != "" {
		load = func() (config.Config, error) { return config.LoadFile(configPath) }
	}
	cfg, err := load()
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	// The CLI talks to the user on stdout; logs go to stderr and stay quiet
	// unless something goes wrong.
	if level < slog.LevelWarn {
		level = slog.LevelWarn
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	store, err := repo.Open(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	return &app{
		cfg:       cfg,
		store:     store,
		log:       log,
		recording: service.NewRecordingService(store.Trips, nil, log).WithDefaultLocation(cfg.DefaultLocation),
		trips:     service.NewTripService(store.Trips, log),
		export:    service.NewExportService(store.Trips, nil),
		stats:     service.NewStatsService(store.Trips, nil),
		backup:    service.NewBackupService(store.Trips, nil, log),
	}, nil
}

func (a *app) Close() error { return a.store.Close() }

// configPath is set by the persistent --config flag.
var configPath string

var rootCmd = &cobra.Command{
	Use:           "triplog",
	Short:         "Record trips as timestamped events and manage the logbook",
	SilenceUsage:  true,
	SilenceErrors: false,
}

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a trip interactively",
	Long: `Starts a recording and reads one event label per line from stdin.

Commands:
  :from <location>   set the start location
  :photo <n> <ref>   attach a photo reference to event n
  :status            print the current summary
  :save [notes]      save the trip and exit
  :reset             discard the recording and exit
  :quit              same as :reset`,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		tick, _ := cmd.Flags().GetDuration("tick")

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		return runRecorder(cmd.Context(), a.recording, from, tick, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved trips",
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")
		sort, _ := cmd.Flags().GetString("sort")

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		trips, err := a.trips.List(cmd.Context(), domain.NewListQuery(search, sort))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(trips) == 0 {
			fmt.Fprintln(out, "No trips found.")
			return nil
		}
		for _, t := range trips {
			loc := t.StartLocation
			if loc == "" {
				loc = "-"
			}
			fmt.Fprintf(out, "%s  %s  %-12s %3d events  %s\n",
				t.ID, t.StartTime.Local().Format("2006-01-02 15:04"),
				timeline.FormatDuration(t.DurationSeconds()), len(t.Events), loc)
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <trip-id>",
	Short: "Print a trip's summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		trip, err := a.trips.GetByID(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, trip.Summary)
		if trip.Notes != "" {
			fmt.Fprintf(out, "\nNotes: %s\n", trip.Notes)
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every trip as json, csv or text",
	RunE: func(cmd *cobra.Command, args []string) error {
		formatName, _ := cmd.Flags().GetString("format")
		outPath, _ := cmd.Flags().GetString("out")

		format, ok := domain.ParseExportFormat(formatName)
		if !ok {
			return fmt.Errorf("unknown format %q (want json, csv or text)", formatName)
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		file, err := a.export.Export(cmd.Context(), format)
		if err != nil {
			return err
		}
		if outPath == "" {
			_, err = cmd.OutOrStdout().Write(file.Body)
			return err
		}
		if outPath == "." {
			outPath = file.Name
		}
		if err := os.WriteFile(outPath, file.Body, 0o644); err != nil {
			return fmt.Errorf("writing export: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s\n", outPath)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics over every trip",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		st, err := a.stats.Compute(cmd.Context())
		if err != nil {
			return err
		}
		printStats(cmd.OutOrStdout(), st)
		return nil
	},
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Write a full backup to a file or stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath, _ := cmd.Flags().GetString("out")

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		var w io.Writer = cmd.OutOrStdout()
		if outPath != "" {
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("creating backup file: %w", err)
			}
			defer f.Close()
			w = f
		}
		n, err := a.backup.Write(cmd.Context(), w)
		if err != nil {
			return err
		}
		if outPath != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Backed up %d trips to %s\n", n, outPath)
		}
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <backup-file>",
	Short: "Replace every trip with the contents of a backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "This replaces every stored trip. Continue?") {
			return nil
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening backup: %w", err)
		}
		defer f.Close()

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		n, err := a.backup.Restore(cmd.Context(), f)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Restored %d trips\n", n)
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every stored trip",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "This deletes every stored trip. Continue?") {
			return nil
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.backup.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "All trips deleted")
		return nil
	},
}

// confirm asks a yes/no question and reports whether the answer was yes.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func printStats(w io.Writer, st domain.Statistics) {
	fmt.Fprintf(w, "Trips:              %d\n", st.TotalTrips)
	if st.TotalTrips == 0 {
		return
	}
	fmt.Fprintf(w, "Total time:         %s\n", timeline.FormatDuration(st.TotalDuration))
	fmt.Fprintf(w, "Average trip:       %s\n", timeline.FormatDuration(st.AverageDuration))
	fmt.Fprintf(w, "Shortest trip:      %s (%s)\n", timeline.FormatDuration(st.ShortestTrip.Duration), st.ShortestTrip.Date.Local().Format("2006-01-02"))
	fmt.Fprintf(w, "Longest trip:       %s (%s)\n", timeline.FormatDuration(st.LongestTrip.Duration), st.LongestTrip.Date.Local().Format("2006-01-02"))
	fmt.Fprintf(w, "Events:             %d (%d per trip)\n", st.TotalEvents, st.AverageEventsPerTrip)
	fmt.Fprintf(w, "Last 7 / 30 days:   %d / %d\n", st.Last7Days, st.Last30Days)
	if len(st.MostCommonEvents) > 0 {
		fmt.Fprintln(w, "Most common events:")
		for _, ec := range st.MostCommonEvents {
			fmt.Fprintf(w, "  %-20s %d\n", ec.Label, ec.Count)
		}
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "TOML config file (environment variables still take precedence)")

	rootCmd.AddCommand(recordCmd)
	recordCmd.Flags().String("from", "", "Start location of the trip")
	recordCmd.Flags().Duration("tick", 0, "Print elapsed time at this interval (0 disables)")

	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringP("search", "q", "", "Case-insensitive search over labels, summary, location and notes")
	listCmd.Flags().StringP("sort", "s", string(domain.SortNewest), "newest, oldest, longest, shortest or most_events")

	rootCmd.AddCommand(showCmd)

	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("format", "f", "json", "json, csv or text")
	exportCmd.Flags().StringP("out", "o", "", "Write to this file instead of stdout (\".\" picks the default name)")

	rootCmd.AddCommand(statsCmd)

	rootCmd.AddCommand(backupCmd)
	backupCmd.Flags().StringP("out", "o", "", "Write to this file instead of stdout")

	rootCmd.AddCommand(restoreCmd)
	restoreCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")

	rootCmd.AddCommand(clearCmd)
	clearCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
