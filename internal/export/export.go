// Package export writes prepared transactions to a CSV or YAML file.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"fjacquet/firefly-importer/internal/fileutils"
	"fjacquet/firefly-importer/internal/logging"
	"fjacquet/firefly-importer/internal/models"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported export file extension %q (use .csv, .yaml or .yml)", filepath.Ext(path))
	}
}

// Writer writes transactions in a configured format.
type Writer struct {
	delimiter rune
	logger    logging.Logger
}

// NewWriter creates a Writer using delimiter for CSV output.
func NewWriter(delimiter rune, logger logging.Logger) *Writer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if delimiter == 0 {
		delimiter = ','
	}
	return &Writer{delimiter: delimiter, logger: logger}
}

// WriteFile writes transactions to path, choosing the format by extension.
func (w *Writer) WriteFile(path string, transactions []models.Transaction) error {
	if transactions == nil {
		return fmt.Errorf("cannot export nil transactions")
	}
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}

	log := w.logger.WithFields(
		logging.F(logging.FieldOutputFile, path),
		logging.F(logging.FieldCount, len(transactions)))
	log.Debug("Writing export file")

	file, err := fileutils.CreateFile(path)
	if err != nil {
		return fmt.Errorf("error creating export file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := w.Write(file, format, transactions); err != nil {
		return err
	}

	log.Info("Wrote export file")
	return nil
}

// Write encodes transactions to out.
func (w *Writer) Write(out io.Writer, format Format, transactions []models.Transaction) error {
	switch format {
	case FormatCSV:
		return w.writeCSV(out, transactions)
	case FormatYAML:
		return writeYAML(out, transactions)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

func (w *Writer) writeCSV(out io.Writer, transactions []models.Transaction) error {
	csvWriter := csv.NewWriter(out)
	csvWriter.Comma = w.delimiter

	if err := gocsv.MarshalCSV(transactions, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

type yamlDocument struct {
	Transactions []models.Transaction `yaml:"transactions"`
}

func writeYAML(out io.Writer, transactions []models.Transaction) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	if err := encoder.Encode(yamlDocument{Transactions: transactions}); err != nil {
		return fmt.Errorf("error writing YAML data: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("error writing YAML data: %w", err)
	}
	return nil
}
