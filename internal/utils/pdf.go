package utils

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

type RosterPDFData struct {
	Title       string
	GeneratedAt time.Time
	Rows        []RosterRow
	QRCodePNG   []byte // QR code sebagai bytes PNG
	PublicURL   string
}

type RosterRow struct {
	No       int
	Fullname string
	Age      string
	Active   bool
	Group    string
}

// GenerateRosterPDF renders the student table as an A4 roster.
func GenerateRosterPDF(data RosterPDFData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// ─────────────────────────────────────────
	// HEADER
	// ─────────────────────────────────────────
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 8, data.Title, "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 5, fmt.Sprintf("Generated %s", data.GeneratedAt.Format("02/01/2006 15:04")), "", 1, "C", false, 0, "")

	// Garis pembatas
	pdf.SetDrawColor(0, 51, 102)
	pdf.SetLineWidth(0.8)
	pdf.Line(20, pdf.GetY()+3, 190, pdf.GetY()+3)
	pdf.Ln(8)

	// ─────────────────────────────────────────
	// TABEL SISWA
	// ─────────────────────────────────────────
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(0, 51, 102)
	pdf.SetTextColor(255, 255, 255)

	headers := []string{"No", "Fullname", "Age", "Active/Block", "Group"}
	widths := []float64{10, 70, 20, 30, 40}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(0, 0, 0)

	if len(data.Rows) == 0 {
		pdf.CellFormat(sum(widths), 6, "No items yet", "1", 1, "C", false, 0, "")
	}

	for i, r := range data.Rows {
		fill := i%2 == 0
		if fill {
			pdf.SetFillColor(240, 245, 255)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		state := "Block"
		if r.Active {
			state = "Active"
		}

		pdf.CellFormat(widths[0], 6, fmt.Sprintf("%d", r.No), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(widths[1], 6, truncate(r.Fullname, 45), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(widths[2], 6, truncate(r.Age, 10), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(widths[3], 6, state, "1", 0, "C", fill, 0, "")
		pdf.CellFormat(widths[4], 6, truncate(r.Group, 24), "1", 0, "L", fill, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(6)

	// QR ke halaman console
	if len(data.QRCodePNG) > 0 {
		y := pdf.GetY()
		pdf.SetFont("Arial", "", 8)
		pdf.CellFormat(60, 5, "Open the live roster:", "", 1, "L", false, 0, "")

		pdf.RegisterImageOptionsReader("qrcode", gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(data.QRCodePNG))
		pdf.ImageOptions("qrcode", 20, y+6, 30, 30, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	}

	// ─────────────────────────────────────────
	// FOOTER
	// ─────────────────────────────────────────
	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 7)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(0, 5, fmt.Sprintf("%d student(s) | %s", len(data.Rows), data.PublicURL), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate roster PDF: %w", err)
	}

	return buf.Bytes(), nil
}

func sum(xs []float64) float64 {
	var total float64
	for _, x := range xs {
		total += x
	}
	return total
}

// truncate shortens s to max runes, ending with "..." when cut.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
