// Package importer runs one import of a Piraeus export: parse, resolve
// accounts, classify, report and optionally export the prepared
// transactions.
package importer

import (
	"context"
	"fmt"

	"fjacquet/firefly-importer/internal/accountcache"
	"fjacquet/firefly-importer/internal/classifier"
	"fjacquet/firefly-importer/internal/export"
	"fjacquet/firefly-importer/internal/logging"
	"fjacquet/firefly-importer/internal/models"
	"fjacquet/firefly-importer/internal/piraeusparser"

	"github.com/google/uuid"
)

// Options selects the input file and what to do with the result.
type Options struct {
	DataFile   string
	OutputFile string
	DryRun     bool
}

// Result summarizes a run.
type Result struct {
	RunID        string
	DataRows     int
	Skipped      int
	Unmatched    int
	Transactions []models.Transaction
}

// Importer wires the parser, a per-run account cache and the classifier.
type Importer struct {
	directory accountcache.Directory
	exporter  *export.Writer
	logger    logging.Logger
	newRunID  func() string
}

// New creates an Importer resolving accounts against directory.
func New(directory accountcache.Directory, exporter *export.Writer, logger logging.Logger) *Importer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if exporter == nil {
		exporter = export.NewWriter(',', logger)
	}
	return &Importer{
		directory: directory,
		exporter:  exporter,
		logger:    logger,
		newRunID:  uuid.NewString,
	}
}

// Run imports opts.DataFile. Input format errors and invariant violations
// abort the run; row-level problems are logged and skipped.
func (i *Importer) Run(ctx context.Context, opts Options) (*Result, error) {
	runID := i.newRunID()
	log := i.logger.WithField(logging.FieldRunID, runID)

	rows, err := piraeusparser.New(log).ParseFile(opts.DataFile)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", opts.DataFile, err)
	}

	cache := accountcache.New(i.directory, log)
	classified, err := classifier.New(cache, log).Classify(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to classify %s: %w", opts.DataFile, err)
	}

	log.Info(fmt.Sprintf("Parsed %d data rows", classified.DataRows),
		logging.F(logging.FieldCount, classified.DataRows))
	log.Info(fmt.Sprintf("Prepared %d transactions", len(classified.Transactions)),
		logging.F(logging.FieldCount, len(classified.Transactions)))
	for _, tx := range classified.Transactions {
		log.Info(tx.String(), logging.F(logging.FieldType, tx.Type.String()))
	}
	if classified.Skipped > 0 || classified.Unmatched > 0 {
		log.Warn("Some rows were not turned into transactions",
			logging.F("skipped", classified.Skipped),
			logging.F("unmatched", classified.Unmatched))
	}

	result := &Result{
		RunID:        runID,
		DataRows:     classified.DataRows,
		Skipped:      classified.Skipped,
		Unmatched:    classified.Unmatched,
		Transactions: classified.Transactions,
	}

	if opts.OutputFile != "" {
		if err := i.exporter.WriteFile(opts.OutputFile, result.Transactions); err != nil {
			return nil, fmt.Errorf("failed to export transactions: %w", err)
		}
	}

	if opts.DryRun {
		log.Info("Dry run, no transactions submitted")
	} else {
		log.Warn("Submitting transactions to Firefly III is not implemented")
	}

	return result, nil
}
