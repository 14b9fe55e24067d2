// Package app wires the pieces together: configuration, preferences,
// logging, the backend client, and the Bubble Tea program.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/turtir-ai/upwork-dna-sub001/internal/api"
	"github.com/turtir-ai/upwork-dna-sub001/internal/config"
	"github.com/turtir-ai/upwork-dna-sub001/internal/prefs"
	"github.com/turtir-ai/upwork-dna-sub001/internal/ui"
)

// Options are the command-line overrides. Zero values mean "use the
// environment or the defaults".
type Options struct {
	APIBaseURL   string
	ViaProxy     bool
	PollInterval time.Duration
	PrefsPath    string
	LogFile      string
	ExportDir    string
}

// Run starts the console and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	cfg := config.Load()
	if opts.APIBaseURL != "" {
		cfg.APIBaseURL = opts.APIBaseURL
	}
	if opts.ViaProxy {
		// Route requests through the server-side proxy instead of hitting
		// the backend directly.
		cfg.APIBaseURL = cfg.ProxyBaseURL
	}
	if opts.PollInterval > 0 {
		cfg.PollInterval = opts.PollInterval
	}
	if opts.LogFile != "" {
		cfg.LogFile = opts.LogFile
	}
	if opts.ExportDir != "" {
		cfg.ExportDir = opts.ExportDir
	}

	userPrefs := prefs.Load(opts.PrefsPath)
	// A poll interval flag beats the preference file.
	if opts.PollInterval <= 0 && userPrefs.PollSeconds > 0 {
		cfg.PollInterval = time.Duration(userPrefs.PollSeconds) * time.Second
	}

	log, closeLog, err := openLogger(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := api.NewClient(cfg.APIBaseURL, log)
	if err != nil {
		return fmt.Errorf("create backend client: %w", err)
	}

	log.WithFields(logrus.Fields{
		"api":  cfg.APIBaseURL,
		"poll": cfg.PollInterval.String(),
	}).Info("starting console")

	model := ui.New(ui.Options{
		Context:      ctx,
		Client:       client,
		Log:          log,
		PollInterval: cfg.PollInterval,
		ThemeName:    userPrefs.Theme,
		PrefsPath:    opts.PrefsPath,
		ExportDir:    cfg.ExportDir,
	})

	program := tea.NewProgram(model)
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	if m, ok := final.(ui.Model); ok {
		m.Shutdown()
	}

	log.Info("console exited")
	return nil
}

// openLogger sends diagnostics to a file since the TUI owns the terminal.
func openLogger(path string) (*logrus.Logger, func(), error) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if path == "" {
		log.SetOutput(os.Stderr)
		return log, func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(file)
	return log, func() { _ = file.Close() }, nil
}
