// Package export renders dashboard tables as CSV or PDF downloads.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Format of an export
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// ParseFormat accepts "csv" (the default when empty) or "pdf".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(FormatCSV):
		return FormatCSV, nil
	case string(FormatPDF):
		return FormatPDF, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// ContentType of the rendered file
func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "text/csv; charset=utf-8"
}

// Table is a titled grid of already formatted cells.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Write renders t in format f.
func Write(w io.Writer, f Format, t Table) error {
	switch f {
	case FormatPDF:
		return WritePDF(w, t)
	default:
		return WriteCSV(w, t)
	}
}

// FileName builds "<base>-YYYYMMDD-HHMM.<ext>".
func FileName(base string, f Format, now time.Time) string {
	return fmt.Sprintf("%s-%s.%s", base, now.Format("20060102-1504"), f)
}
