package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Generator — interface so handlers can be tested with a stub.
type Generator interface {
	GenerateBookingConfirmation(data BookingConfirmationData) (string, error)
}

type DocumentGenerator struct {
	RootDir string // storage root, e.g. "./files"
}

type BookingConfirmationData struct {
	RefCode     string
	ChurchName  string
	ServiceName string
	MemberName  string
	Date        time.Time
	Status      string
	CreatedAt   time.Time
	Filename    string // file name without path; generated when empty
}

func NewDocumentGenerator(rootDir string) *DocumentGenerator {
	return &DocumentGenerator{RootDir: filepath.Clean(rootDir)}
}

func (g *DocumentGenerator) GenerateBookingConfirmation(data BookingConfirmationData) (string, error) {
	filename := data.Filename
	if filename == "" {
		filename = fmt.Sprintf("booking_%s.pdf", data.RefCode)
	}
	absPath, err := g.ensureTarget(filename)
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Booking %s", data.RefCode), false)
	pdf.SetAuthor("ChurchConnect", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "BOOKING CONFIRMATION", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	sub := fmt.Sprintf("Ref %s  -  issued %s", data.RefCode, data.CreatedAt.Format("02 Jan 2006"))
	pdf.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	g.hr(pdf)
	pdf.Ln(3)

	g.sectionTitle(pdf, "Appointment")
	g.kvLine(pdf, "Church", data.ChurchName)
	g.kvLine(pdf, "Service", data.ServiceName)
	g.kvLine(pdf, "Date", data.Date.Format("02 January 2006"))
	g.kvLine(pdf, "Status", data.Status)
	pdf.Ln(2)
	g.hr(pdf)

	g.sectionTitle(pdf, "Requested by")
	g.kvLine(pdf, "Member", data.MemberName)
	pdf.Ln(2)
	g.hr(pdf)

	pdf.SetFont("Helvetica", "", 11)
	note := "Please present this confirmation (printed or on your phone) at the parish office. " +
		"Schedules remain subject to parish announcements; contact the office for changes."
	pdf.MultiCell(0, 6, note, "", "L", false)

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	if err := pdf.OutputFileAndClose(absPath); err != nil {
		return "", err
	}
	return absPath, nil
}

func (g *DocumentGenerator) ensureTarget(filename string) (string, error) {
	if err := os.MkdirAll(g.RootDir, 0o755); err != nil {
		return "", fmt.Errorf("create files root: %w", err)
	}
	return filepath.Join(g.RootDir, filepath.Base(filename)), nil
}

func (g *DocumentGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
}

func (g *DocumentGenerator) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(45, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *DocumentGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}
