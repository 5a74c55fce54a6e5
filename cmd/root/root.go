// Package root contains the root command for the application
package root

import (
	"fmt"
	"io"
	"os"

	"fjacquet/doc-extract-csv/internal/config"
	"fjacquet/doc-extract-csv/internal/container"
	"fjacquet/doc-extract-csv/internal/extraction"
	"fjacquet/doc-extract-csv/internal/fileutils"
	"fjacquet/doc-extract-csv/internal/logging"
	"fjacquet/doc-extract-csv/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	// ConfigFile is the explicit config file given with --config.
	ConfigFile string

	// AppContainer holds the wired dependencies once PersistentPreRunE ran.
	AppContainer *container.Container

	logOutput io.WriteCloser

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "doc-extract-csv",
		Short: "Extract text from PDF, text and Word documents and save it with product details to a CSV file.",
		Long: `doc-extract-csv is an interactive terminal tool. Upload PDF, plain text or
Word documents, fill in the company and product fields, and save everything
as one row of a CSV file. The CSV file can then be downloaded as a copy.`,
		SilenceUsage:      true,
		Args:              cobra.NoArgs,
		PersistentPreRunE: setup,
		RunE:              run,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			teardown()
		},
	}
)

// Init initializes the root command flags
func Init() {
	if Cmd.PersistentFlags().Lookup("config") != nil {
		return
	}
	Cmd.PersistentFlags().StringVar(&ConfigFile, "config", "",
		"config file (default is config.yaml in ., .doc-extract-csv or $HOME/.doc-extract-csv)")
}

// setup loads configuration and wires the container. The interactive session
// owns the terminal, so logs go to the configured log file.
func setup(cmd *cobra.Command, args []string) error {
	config.LoadEnv()

	cfg, err := config.InitializeConfig(ConfigFile)
	if err != nil {
		return err
	}

	out, err := openLogOutput(cfg.Log.File)
	if err != nil {
		return err
	}
	logOutput = out

	AppContainer, err = container.NewContainer(cfg, out)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return nil
}

func run(cmd *cobra.Command, args []string) error {
	session, err := NewSession(AppContainer)
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewModel(session), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running interactive session: %w", err)
	}
	return nil
}

// NewSession prepares the store and returns a fresh interactive session.
func NewSession(c *container.Container) (*tui.Session, error) {
	if c == nil {
		return nil, fmt.Errorf("application is not initialized")
	}
	logger := c.GetLogger()
	cfg := c.GetConfig()

	if fileutils.FileExists(cfg.Store.Path) {
		logger.Debug("Using existing CSV store", logging.Field{Key: logging.FieldStorePath, Value: cfg.Store.Path})
	}
	if err := c.GetStore().EnsureExists(); err != nil {
		return nil, err
	}

	acc := extraction.NewAccumulator(c.GetDispatcher(), logger)
	logger.Info("Session started",
		logging.Field{Key: logging.FieldSession, Value: acc.SessionID()},
		logging.Field{Key: logging.FieldStorePath, Value: cfg.Store.Path})

	return &tui.Session{
		Title:       tui.DefaultTitle,
		Accumulator: acc,
		Store:       c.GetStore(),
		Exporter:    c.GetExporter(),
		Logger:      logger,
		MaxFileSize: cfg.MaxFileSizeBytes(),
		XLSXEnabled: cfg.Download.XLSXEnabled,
		BrowseDir:   ".",
	}, nil
}

func teardown() {
	if AppContainer != nil {
		_ = AppContainer.Close()
		AppContainer = nil
	}
	if logOutput != nil {
		_ = logOutput.Close()
		logOutput = nil
	}
}

// nopCloser wraps writers that teardown must not close.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func openLogOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{io.Discard}, nil
	}
	if path == "-" {
		return nopCloser{os.Stderr}, nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return f, nil
}
