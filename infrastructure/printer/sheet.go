package printer

import (
	"bytes"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/silverium/labelgen/domain/kepingan"
)

// A4 dimensions in millimeters
const (
	pageWidth  = 210.0
	pageHeight = 297.0
)

// Default grid when the caller gives none
const (
	defaultCols = 3
	defaultRows = 7
)

// Sheet lays composed label images out on an A4 PDF grid for physical
// printing. It implements kepingan.SheetBuilder.
type Sheet struct {
	marginTop  float64
	marginLeft float64
	gapX       float64
	gapY       float64
}

// NewSheet creates a sheet builder with symmetric 10mm margins and 2mm gaps
func NewSheet() *Sheet {
	return &Sheet{
		marginTop:  10,
		marginLeft: 10,
		gapX:       2,
		gapY:       2,
	}
}

// Build renders the entries cols × rows per page, each cell holding one
// label image with its serial/validation caption underneath.
func (s *Sheet) Build(entries []kepingan.Entry, cols, rows int) ([]byte, error) {
	if cols <= 0 {
		cols = defaultCols
	}
	if rows <= 0 {
		rows = defaultRows
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Arial", "B", 10)

	totalGapX := float64(cols-1) * s.gapX
	totalGapY := float64(rows-1) * s.gapY

	availW := pageWidth - (s.marginLeft * 2)
	availH := pageHeight - (s.marginTop * 2)

	cellW := (availW - totalGapX) / float64(cols)
	cellH := (availH - totalGapY) / float64(rows)

	perPage := cols * rows

	for i, e := range entries {
		if i%perPage == 0 {
			pdf.AddPage()
		}

		indexOnPage := i % perPage
		col := indexOnPage % cols
		row := indexOnPage / cols

		x := s.marginLeft + float64(col)*(cellW+s.gapX)
		y := s.marginTop + float64(row)*(cellH+s.gapY)

		imgOptions := gofpdf.ImageOptions{
			ImageType: "PNG",
			ReadDpi:   true,
		}
		pdf.RegisterImageOptionsReader(e.Name, imgOptions, bytes.NewReader(e.Data))

		// Width-constrained, height follows the label's aspect ratio
		imgW := cellW * 0.9
		imgX := x + (cellW-imgW)/2
		pdf.ImageOptions(e.Name, imgX, y, imgW, 0, false, imgOptions, 0, "")

		pdf.SetXY(x, y+cellH-5)
		pdf.SetFontSize(7)
		pdf.CellFormat(cellW, 4, caption(e.Name), "", 0, "C", false, 0, "")

		if pdf.Err() {
			return nil, pdf.Error()
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// caption strips the qrcode_ prefix and .png suffix from an entry name,
// leaving "{serial}_{validationCode}".
func caption(name string) string {
	return strings.TrimSuffix(strings.TrimPrefix(name, "qrcode_"), ".png")
}
