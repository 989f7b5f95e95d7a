package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable(rows int) Table {
	t := Table{
		Title:   "Contestants",
		Headers: []string{"Name", "School", "Category", "Status"},
	}
	for i := 0; i < rows; i++ {
		t.Rows = append(t.Rows, []string{fmt.Sprintf("Contestant %d", i), "Ñiño National High School", "singing", "pending"})
	}
	return t
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat("PDF")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)
	assert.Equal(t, "application/pdf", f.ContentType())

	_, err = ParseFormat("xlsx")
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	table := sampleTable(2)
	table.Rows = append(table.Rows, []string{"=HYPERLINK(\"x\")", "a,b", "other", "approved"})

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, table))
	require.True(t, bytes.HasPrefix(buf.Bytes(), utf8BOM))

	records, err := csv.NewReader(bytes.NewReader(buf.Bytes()[len(utf8BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, table.Headers, records[0])
	assert.Equal(t, "Ñiño National High School", records[1][1])
	assert.Equal(t, "'=HYPERLINK(\"x\")", records[3][0])
	assert.Equal(t, "a,b", records[3][1])
}

func TestWritePDF_Paginates(t *testing.T) {
	var small, large bytes.Buffer
	require.NoError(t, WritePDF(&small, sampleTable(3)))
	require.NoError(t, WritePDF(&large, sampleTable(120)))

	assert.True(t, bytes.HasPrefix(small.Bytes(), []byte("%PDF-")))
	assert.Equal(t, 1, pageCount(small.Bytes()))
	assert.Greater(t, pageCount(large.Bytes()), 1)
}

func pageCount(pdf []byte) int {
	return bytes.Count(pdf, []byte("/Type /Page")) - bytes.Count(pdf, []byte("/Type /Pages"))
}

func TestFit_KeepsNonASCIILetters(t *testing.T) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 8)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	got := fit(pdf, tr, "Mariano Peña Dela Cruz Santos Villanueva", 30)
	assert.True(t, strings.HasSuffix(got, "..."), got)
	assert.Contains(t, got, "Pe\xf1a", "ñ is a single cp1252 byte")
	assert.NotContains(t, got, "\xef\xbf\xbd")
	assert.LessOrEqual(t, pdf.GetStringWidth(got), 28.0)

	assert.Equal(t, tr("Peña"), fit(pdf, tr, "Peña", 30))
}

func TestWritePDF_NoColumns(t *testing.T) {
	assert.Error(t, WritePDF(&bytes.Buffer{}, Table{Title: "empty"}))
}

func TestFileName(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 5, 0, 0, time.UTC)
	assert.Equal(t, "guests-20260301-0905.pdf", FileName("guests", FormatPDF, at))
}
