package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

const (
	pdfRowHeight    = 7.0
	pdfHeaderHeight = 8.0
	pdfMargin       = 10.0
)

// WritePDF lays the table out on landscape A4 pages, repeating the header
// row on every page.
func WritePDF(w io.Writer, t Table) error {
	if len(t.Headers) == 0 {
		return fmt.Errorf("pdf export needs at least one column")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(t.Title, true)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, pageH := pdf.GetPageSize()
	colW := (pageW - 2*pdfMargin) / float64(len(t.Headers))

	header := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(11, 79, 113)
		pdf.SetTextColor(255, 255, 255)
		for _, h := range t.Headers {
			pdf.CellFormat(colW, pdfHeaderHeight, fit(pdf, tr, h, colW), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(0, 0, 0)
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, tr(t.Title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(0, 6, fmt.Sprintf("%d records", len(t.Rows)), "", 1, "L", false, 0, "")
	header()

	for i, row := range t.Rows {
		if pdf.GetY()+pdfRowHeight > pageH-pdfMargin {
			pdf.AddPage()
			header()
		}
		fill := i%2 == 1
		pdf.SetFillColor(238, 244, 248)
		for c := range t.Headers {
			cell := ""
			if c < len(row) {
				cell = row[c]
			}
			pdf.CellFormat(colW, pdfRowHeight, fit(pdf, tr, cell, colW), "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to build pdf: %w", err)
	}
	return pdf.Output(w)
}

// fit shortens the UTF-8 text s with an ellipsis until it fits into a
// column and returns it translated for the core fonts. Truncation happens
// before translation so multi-byte letters are never split.
func fit(pdf *fpdf.Fpdf, tr func(string) string, s string, width float64) string {
	limit := width - 2
	if out := tr(s); pdf.GetStringWidth(out) <= limit {
		return out
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(tr(string(r)+"...")) > limit {
		r = r[:len(r)-1]
	}
	return tr(string(r) + "...")
}
