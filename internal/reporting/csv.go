package reporting

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"gbm-asset-lab/internal/domain"
)

// Column names used in asset tables.
const (
	DateColumn   = "date"
	VolumeColumn = "volume"
)

// PriceDecimals is the number of decimal places written for prices.
const PriceDecimals = 2

// ErrShapeMismatch is returned when a path or volume series does not have
// one value per grid date.
var ErrShapeMismatch = errors.New("series length does not match date grid")

// Header returns the CSV header for a record: date, close_0..close_{k-1}
// and, when present, volume.
func Header(rec *domain.AssetRecord) []string {
	header := make([]string, 0, len(rec.Paths)+2)
	header = append(header, DateColumn)
	for i := range rec.Paths {
		header = append(header, domain.ColumnName(i))
	}
	if rec.Volume != nil {
		header = append(header, VolumeColumn)
	}
	return header
}

// WriteCSV writes an asset table with ISO dates and 2-decimal prices.
func WriteCSV(w io.Writer, rec *domain.AssetRecord) error {
	n := len(rec.Dates)
	for i, p := range rec.Paths {
		if len(p) != n {
			return fmt.Errorf("%w: %s has %d values for %d dates", ErrShapeMismatch, domain.ColumnName(i), len(p), n)
		}
	}
	if rec.Volume != nil && len(rec.Volume) != n {
		return fmt.Errorf("%w: volume has %d values for %d dates", ErrShapeMismatch, len(rec.Volume), n)
	}

	cw := csv.NewWriter(w)
	header := Header(rec)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]string, len(header))
	for r, d := range rec.Dates {
		row[0] = d.Format(domain.DateLayout)
		for i, p := range rec.Paths {
			row[i+1] = FormatPrice(p[r])
		}
		if rec.Volume != nil {
			row[len(row)-1] = strconv.FormatInt(rec.Volume[r], 10)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", r, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// RenderCSV renders an asset table as a CSV string.
func RenderCSV(rec *domain.AssetRecord) (string, error) {
	var sb strings.Builder
	if err := WriteCSV(&sb, rec); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// FormatPrice rounds a price to PriceDecimals places for display.
// Non-finite values are written verbatim rather than rounded.
func FormatPrice(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', PriceDecimals, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(PriceDecimals)
}

// ReadCSV parses a table written by WriteCSV back into a record.
// The symbol is not part of the table and is left empty.
func ReadCSV(r io.Reader) (*domain.AssetRecord, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read csv: missing header")
	}

	header := records[0]
	if header[0] != DateColumn {
		return nil, fmt.Errorf("read csv: first column is %q, want %q", header[0], DateColumn)
	}

	hasVolume := header[len(header)-1] == VolumeColumn
	numPaths := len(header) - 1
	if hasVolume {
		numPaths--
	}
	for i := 0; i < numPaths; i++ {
		if header[i+1] != domain.ColumnName(i) {
			return nil, fmt.Errorf("read csv: column %d is %q, want %q", i+1, header[i+1], domain.ColumnName(i))
		}
	}

	rows := records[1:]
	rec := &domain.AssetRecord{
		Paths: make(domain.PathSet, numPaths),
	}
	for i := range rec.Paths {
		rec.Paths[i] = make(domain.Path, len(rows))
	}
	if hasVolume {
		rec.Volume = make([]int64, len(rows))
	}

	for r, row := range rows {
		d, err := domain.ParseDate(row[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", r+1, err)
		}
		rec.Dates = append(rec.Dates, d)

		for i := 0; i < numPaths; i++ {
			v, err := strconv.ParseFloat(row[i+1], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d %s: %w", r+1, header[i+1], err)
			}
			rec.Paths[i][r] = v
		}
		if hasVolume {
			v, err := strconv.ParseInt(row[len(row)-1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d volume: %w", r+1, err)
			}
			rec.Volume[r] = v
		}
	}

	return rec, nil
}
