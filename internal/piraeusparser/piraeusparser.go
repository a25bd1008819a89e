// Package piraeusparser reads the tab-separated "unified transactions" export
// of Piraeus e-banking and turns its data lines into normalized rows.
//
// The export starts with a few free-text information lines, followed by a
// header line, the data lines and a closing summary line. The header columns
// are:
//
//	Κατηγορία	Περιγραφή Συναλλαγής (είδος)	Ημερομηνία Καταχώρησης	Αριθμός Προϊόντος	Ποσό
package piraeusparser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"fjacquet/firefly-importer/internal/dateutils"
	"fjacquet/firefly-importer/internal/logging"
	"fjacquet/firefly-importer/internal/models"
	"fjacquet/firefly-importer/internal/parsererror"
)

const (
	// HeaderColumns is the number of tab-separated columns of the export.
	HeaderColumns = 5

	headerCategory    = "Κατηγορία"
	headerDescription = "Περιγραφή Συναλλαγής"

	utf8BOM = "\uFEFF"
)

const expectedFormat = "Piraeus unified transactions export with 5 tab-separated columns"

var (
	friendlyNamePattern = regexp.MustCompile(`\s*\(.*?\)`)
	whitespacePattern   = regexp.MustCompile(`\s+`)
)

// Parser converts Piraeus export lines into normalized rows.
type Parser struct {
	logger logging.Logger
}

// New creates a Parser. A nil logger falls back to an info-level logrus
// logger.
func New(logger logging.Logger) *Parser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Parser{logger: logger}
}

// ParseFile reads the whole export at filePath and parses it.
func (p *Parser) ParseFile(filePath string) ([]models.NormalizedRow, error) {
	p.logger.Info("Importing data from file", logging.F(logging.FieldFile, filePath))

	file, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &parsererror.ValidationError{FilePath: filePath, Reason: "file not found", Err: err}
		}
		return nil, &parsererror.ValidationError{FilePath: filePath, Reason: "error reading file", Err: err}
	}
	defer func() {
		if err := file.Close(); err != nil {
			p.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	lines, err := ReadLines(file)
	if err != nil {
		return nil, &parsererror.ValidationError{FilePath: filePath, Reason: "error reading file", Err: err}
	}
	if len(lines) == 0 {
		return nil, &parsererror.ValidationError{FilePath: filePath, Reason: "file is empty", Err: parsererror.ErrEmptyFile}
	}

	rows, err := p.ParseLines(lines)
	if err != nil {
		var snippet string
		if errors.Is(err, parsererror.ErrMalformedHeader) {
			snippet = headerSnippet(lines)
		}
		return nil, &parsererror.InvalidFormatError{
			FilePath:             filePath,
			ExpectedFormat:       expectedFormat,
			ActualContentSnippet: snippet,
			Err:                  err,
		}
	}
	return rows, nil
}

// ReadLines reads all lines of r. Line terminators are dropped and a leading
// UTF-8 byte order mark is removed.
func ReadLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(lines) > 0 {
		lines[0] = strings.TrimPrefix(lines[0], utf8BOM)
	}
	return lines, nil
}

// ParseLines locates the header and normalizes every data line after it.
//
// Blank lines are skipped. The first line after the header that does not
// split into HeaderColumns columns is the closing summary line and ends the
// data section.
func (p *Parser) ParseLines(lines []string) ([]models.NormalizedRow, error) {
	headerIndex := FindHeader(lines)
	if headerIndex < 0 {
		return nil, parsererror.ErrHeaderNotFound
	}

	headers := SplitFields(lines[headerIndex])
	if len(headers) != HeaderColumns {
		return nil, fmt.Errorf("%w: found %d columns, expected %d",
			parsererror.ErrMalformedHeader, len(headers), HeaderColumns)
	}
	p.logger.Info("Found header",
		logging.F(logging.FieldLine, headerIndex+1),
		logging.F(logging.FieldCount, len(headers)))

	rows := make([]models.NormalizedRow, 0, len(lines)-headerIndex-1)
	for i := headerIndex + 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		fields := SplitFields(line)
		if len(fields) != HeaderColumns {
			p.logger.Debug("Reached end of data section",
				logging.F(logging.FieldLine, i+1),
				logging.F(logging.FieldCount, len(fields)))
			break
		}

		row, dateOK := NormalizeRow(i+1, fields)
		if !dateOK {
			p.logger.Debug("Keeping unparseable posting date",
				logging.F(logging.FieldLine, i+1),
				logging.F("date", fields[2]))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// FindHeader returns the index of the first line holding both the category
// and the description header text, or -1.
func FindHeader(lines []string) int {
	for i, line := range lines {
		if strings.Contains(line, headerCategory) && strings.Contains(line, headerDescription) {
			return i
		}
	}
	return -1
}

// SplitFields splits a line on tabs. Trailing empty fields are dropped, so a
// header ending in a tab still counts as five columns.
func SplitFields(line string) []string {
	fields := strings.Split(line, "\t")
	end := len(fields)
	for end > 1 && fields[end-1] == "" {
		end--
	}
	return fields[:end]
}

// NormalizeRow builds a NormalizedRow from the five columns of a data line.
// The boolean is false when the posting date did not parse and was kept as is.
func NormalizeRow(line int, fields []string) (models.NormalizedRow, bool) {
	date, dateOK := dateutils.DMYToISO(fields[2])
	return models.NormalizedRow{
		Line:        line,
		Category:    fields[0],
		Description: fields[1],
		Date:        date,
		AccountRef:  CleanAccountRef(fields[3]),
		Amount:      NormalizeAmount(fields[4]),
	}, dateOK
}

// CleanAccountRef drops the parenthesised friendly name and every whitespace
// character from a product number column.
func CleanAccountRef(raw string) string {
	ref := friendlyNamePattern.ReplaceAllString(raw, "")
	return whitespacePattern.ReplaceAllString(ref, "")
}

// NormalizeAmount keeps the text before the first space (dropping a currency
// code), removes thousands separators and turns the decimal comma into a
// period: "-1.234,56 EUR" becomes "-1234.56".
func NormalizeAmount(raw string) string {
	amount := strings.SplitN(raw, " ", 2)[0]
	amount = strings.ReplaceAll(amount, ".", "")
	return strings.ReplaceAll(amount, ",", ".")
}

func headerSnippet(lines []string) string {
	i := FindHeader(lines)
	if i < 0 {
		return ""
	}
	snippet := lines[i]
	if len([]rune(snippet)) > 120 {
		snippet = string([]rune(snippet)[:120])
	}
	return snippet
}
