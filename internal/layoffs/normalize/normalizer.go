// Package normalize turns the layoffs CSV extract into validated layoff records.
// Rows that cannot be used are reported as validation errors and skipped; a bad
// row never aborts the file.
package normalize

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	e "github.com/gartstein/layofflens/internal/layoffs/errors"
	"github.com/gartstein/layofflens/internal/layoffs/models"
	"go.uber.org/zap"
)

// Column names of the CSV extract.
const (
	ColCompany  = "Company"
	ColLocation = "Location HQ"
	ColLaidOff  = "# Laid Off"
	ColDate     = "Date"
	ColIndustry = "Industry"
	ColSource   = "Source"
)

const defaultProgressEvery = 500

// MaxCount is the largest employee count the store's integer column holds.
const MaxCount = math.MaxInt32

var (
	utf8BOM       = []byte{0xEF, 0xBB, 0xBF}
	nonNumeric    = regexp.MustCompile(`[^\d.]`)
	numericPrefix = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)`)
)

// ValidationError is a rejected row. Row is 1-based over data rows.
type ValidationError struct {
	Row int
	Err error
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("Row %d: %v", v.Row, v.Err)
}

func (v ValidationError) Unwrap() error {
	return v.Err
}

// Result is the outcome of normalizing one file.
type Result struct {
	Records  []models.LayoffRecord
	Errors   []ValidationError
	RowsRead int
}

// Normalizer parses CSV extracts.
type Normalizer struct {
	logger        *zap.Logger
	now           func() time.Time
	progressEvery int
}

// NewNormalizer constructs a Normalizer that logs progress to logger.
func NewNormalizer(logger *zap.Logger) *Normalizer {
	return &Normalizer{
		logger:        logger.Named("normalizer"),
		now:           time.Now,
		progressEvery: defaultProgressEvery,
	}
}

// Parse reads the whole CSV stream. It fails only when the stream itself is
// unusable (unreadable, or no Company column); row problems land in Result.Errors.
func (n *Normalizer) Parse(r io.Reader) (*Result, error) {
	reader := csv.NewReader(stripBOM(r))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s (empty file)", e.ErrMissingColumn, ColCompany)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	columns := indexColumns(header)
	if _, ok := columns[ColCompany]; !ok {
		return nil, fmt.Errorf("%w: %s", e.ErrMissingColumn, ColCompany)
	}

	// The whole file shares one import instant for unparseable dates.
	importedAt := n.now().UTC()
	res := &Result{}
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		res.RowsRead++
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				res.Errors = append(res.Errors, ValidationError{Row: res.RowsRead, Err: parseErr.Err})
				continue
			}
			return nil, fmt.Errorf("read row %d: %w", res.RowsRead, err)
		}

		row := columns.row(fields)
		if res.RowsRead == 1 && row[ColCompany] == ColCompany {
			continue
		}

		rec, err := NormalizeRow(row, importedAt)
		if err != nil {
			res.Errors = append(res.Errors, ValidationError{Row: res.RowsRead, Err: err})
			continue
		}
		if _, outOfRange := parseCount(row[ColLaidOff]); outOfRange {
			n.logger.Warn("Count out of range; storing as unknown",
				zap.Int("row", res.RowsRead),
				zap.String("value", row[ColLaidOff]),
				zap.Int("max", MaxCount),
			)
		}
		res.Records = append(res.Records, rec)

		if n.progressEvery > 0 && res.RowsRead%n.progressEvery == 0 {
			n.logger.Info("Normalizing rows", zap.Int("rows_read", res.RowsRead))
		}
	}

	n.logger.Info("CSV parsing completed",
		zap.Int("rows_read", res.RowsRead),
		zap.Int("valid", len(res.Records)),
		zap.Int("invalid", len(res.Errors)),
	)
	return res, nil
}

// NormalizeRow validates one row keyed by column name. now is used when the
// date is blank or unparseable.
func NormalizeRow(row map[string]string, now time.Time) (models.LayoffRecord, error) {
	company := strings.TrimSpace(row[ColCompany])
	if company == "" {
		return models.LayoffRecord{}, e.ErrMissingCompany
	}

	sector := strings.TrimSpace(row[ColIndustry])
	if sector == "" {
		sector = models.UnknownLabel
	}

	return models.LayoffRecord{
		Company:   company,
		Location:  strings.TrimSpace(row[ColLocation]),
		Count:     ParseCount(row[ColLaidOff]),
		Date:      ParseDate(row[ColDate], now),
		Sector:    sector,
		SourceURL: strings.TrimSpace(row[ColSource]),
	}, nil
}

// ParseCount keeps digits and dots, then reads the leading decimal number.
// Input with no number in it yields nil, never zero. Numbers above
// MaxCount also yield nil; Parse logs those rows.
func ParseCount(value string) *int {
	n, _ := parseCount(value)
	return n
}

// parseCount reports whether a number was present but exceeded MaxCount.
func parseCount(value string) (*int, bool) {
	if strings.TrimSpace(value) == "" {
		return nil, false
	}
	cleaned := nonNumeric.ReplaceAllString(value, "")
	prefix := numericPrefix.FindString(cleaned)
	if prefix == "" {
		return nil, false
	}
	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Round(f) > MaxCount {
		return nil, true
	}
	n := int(math.Round(f))
	return &n, false
}

// ParseDate parses value in UTC, falling back to now.
func ParseDate(value string, now time.Time) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return now.UTC()
	}
	t, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return now.UTC()
	}
	return t.UTC()
}

type columnIndex map[string]int

func indexColumns(header []string) columnIndex {
	idx := make(columnIndex, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF"))
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	return idx
}

func (c columnIndex) row(fields []string) map[string]string {
	row := make(map[string]string, len(c))
	for name, i := range c {
		if i < len(fields) {
			row[name] = fields[i]
		}
	}
	return row
}

func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}
