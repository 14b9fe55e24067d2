// Package cli defines the dnatop command line.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/turtir-ai/upwork-dna-sub001/internal/app"
)

// Build metadata, set via ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// New constructs the root command.
func New() *cobra.Command {
	var (
		apiURL    string
		viaProxy  bool
		poll      time.Duration
		prefsPath string
		logFile   string
		exportDir string
	)

	root := &cobra.Command{
		Use:   "dnatop",
		Short: "Terminal console for the Upwork DNA scraping backend",
		Long: "dnatop is a terminal dashboard for the Upwork DNA scraping backend.\n" +
			"It polls the backend's queue, results, status, and settings, and lets\n" +
			"you queue keywords, start scrapes, triage results, and export CSVs.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), app.Options{
				APIBaseURL:   apiURL,
				ViaProxy:     viaProxy,
				PollInterval: poll,
				PrefsPath:    prefsPath,
				LogFile:      logFile,
				ExportDir:    exportDir,
			})
		},
	}

	root.Flags().StringVar(&apiURL, "api", "", "backend base URL (default $UPWORK_DNA_API_URL or http://127.0.0.1:8000)")
	root.Flags().BoolVar(&viaProxy, "via-proxy", false, "route requests through $UPWORK_DNA_PROXY_URL instead of the backend")
	root.Flags().DurationVar(&poll, "poll", 0, "poll interval, e.g. 5s (default 5s)")
	root.Flags().StringVar(&prefsPath, "prefs", "", "preferences file (default ~/.config/dnatop/prefs.toml)")
	root.Flags().StringVar(&logFile, "log-file", "", "log file (default ~/.local/state/dnatop/dnatop.log)")
	root.Flags().StringVar(&exportDir, "export-dir", "", "directory for CSV exports (default current directory)")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dnatop %s (commit %s, built %s)\n", Version, Commit, Date)
		},
	})

	return root
}
