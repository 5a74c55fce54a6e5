// Package container provides dependency injection for the doc-extract-csv application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"
	"io"
	"os"

	"fjacquet/doc-extract-csv/internal/config"
	"fjacquet/doc-extract-csv/internal/export"
	"fjacquet/doc-extract-csv/internal/extraction"
	"fjacquet/doc-extract-csv/internal/logging"
	"fjacquet/doc-extract-csv/internal/store"
	"fjacquet/doc-extract-csv/internal/validation"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation; fields are private and only reachable
// through getters.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	dispatcher *extraction.Dispatcher
	store      *store.CSVStore
	exporter   *export.Exporter
}

// NewContainer creates and wires all application dependencies. Log output goes
// to logOut, or stderr when it is nil.
func NewContainer(cfg *config.Config, logOut io.Writer) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	// Create logger first as it's needed by other components
	logger := config.NewLoggerFromConfig(cfg, logOut)

	delimiter := []rune(cfg.Store.Delimiter)
	if len(delimiter) != 1 {
		return nil, fmt.Errorf("store delimiter must be a single character, got: %q", cfg.Store.Delimiter)
	}

	dispatcher := extraction.NewDispatcher(logger, cfg.Extraction.StrictUnsupported, cfg.MaxFileSizeBytes())
	csvStore := store.NewCSVStore(cfg.Store.Path, delimiter[0], logger)
	exporter := export.NewExporter(csvStore, cfg.Download.Directory, cfg.Download.FileName, logger)

	if info, err := os.Stat(cfg.Store.Path); err == nil {
		if err := validation.IsValidFilePermissions(info.Mode()); err != nil {
			logger.Warn("CSV store is writable by other users",
				logging.Field{Key: logging.FieldStorePath, Value: cfg.Store.Path},
				logging.Field{Key: logging.FieldError, Value: err.Error()})
		}
	}

	logger.Info("Container initialized successfully",
		logging.Field{Key: logging.FieldStorePath, Value: cfg.Store.Path},
		logging.Field{Key: logging.FieldDelimiter, Value: cfg.Store.Delimiter},
		logging.Field{Key: "strict_unsupported", Value: cfg.Extraction.StrictUnsupported},
		logging.Field{Key: "xlsx_enabled", Value: cfg.Download.XLSXEnabled})

	return &Container{
		logger:     logger,
		config:     cfg,
		dispatcher: dispatcher,
		store:      csvStore,
		exporter:   exporter,
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetDispatcher returns the extraction dispatcher.
func (c *Container) GetDispatcher() *extraction.Dispatcher {
	return c.dispatcher
}

// GetStore returns the CSV store.
func (c *Container) GetStore() *store.CSVStore {
	return c.store
}

// GetExporter returns the download exporter.
func (c *Container) GetExporter() *export.Exporter {
	return c.exporter
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Info("Container closed")
	return nil
}
