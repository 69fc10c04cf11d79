package services

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf/v2"

	"invoice-desk/internal/billing"
	"invoice-desk/internal/metrics"
	"invoice-desk/internal/timeutil"
)

// issuerBlock is the fixed COMPANY identity printed on every invoice.
// It is not part of the data model.
var issuerBlock = []string{
	"Balasabari Software Developer",
	"No. 78, 1st Street, Kumaran Colony,",
	"Vadapalani, Chennai - 600026",
	"Tamil Nadu, India",
	"Contact: 7397260093",
	"balasabarisoftwaredeveloper@gmail.com",
	"https://balasabarisoftwaredeveloper.org/",
}

const paymentTermsNote = "Payment Terms Are Usually Stated on the Invoice. " +
	"The Buyer Could Have Already Paid for the Products or Services Listed on the Invoice."

// PDFService renders a composed invoice into the fixed A4 layout and
// saves it as Invoice-<invoiceNo>.pdf. The only failure path besides I/O
// is the letterhead image: if it cannot be loaded, the render is aborted
// and no file is produced.
type PDFService struct {
	LetterheadPath string
	OutputDir      string
	Archive        *ArchiveService

	httpClient *http.Client
}

// NewPDFService creates a renderer. letterheadPath may be a local file or
// an http(s) URL.
func NewPDFService(letterheadPath, outputDir string, archive *ArchiveService) *PDFService {
	return &PDFService{
		LetterheadPath: letterheadPath,
		OutputDir:      outputDir,
		Archive:        archive,
		httpClient:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Render produces the invoice PDF bytes for the given draft view
func (s *PDFService) Render(view DraftView) ([]byte, error) {
	img, imgType, err := s.loadLetterhead()
	if err != nil {
		metrics.RendersTotal.WithLabelValues("letterhead_error").Inc()
		return nil, fmt.Errorf("letterhead: %w", err)
	}

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(true, 40)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()

	// Letterhead centered at the top
	opts := gofpdf.ImageOptions{ImageType: imgType}
	pdf.RegisterImageOptionsReader("letterhead", opts, bytes.NewReader(img))
	logoW := 60.0
	pdf.ImageOptions("letterhead", (pageW-logoW)/2, 30, logoW, 60, false, opts, 0, "")

	// Invoice sequence number and date. The number shown is the part
	// after the first '-'; the full invoiceNo stays the identifier.
	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(40, 110, "No. "+invoiceSequence(view.InvoiceNo))
	pdf.Text(40, 135, "DATE: "+timeutil.InvoiceDisplayDate(view.Date))

	// Title
	pdf.SetFont("Helvetica", "B", 34)
	pdf.SetTextColor(26, 125, 96)
	title := "INVOICE"
	pdf.Text(pageW-40-pdf.GetStringWidth(title), 125, title)

	// Divider
	pdf.SetDrawColor(180, 180, 180)
	pdf.SetLineWidth(0.5)
	pdf.Line(40, 150, pageW-40, 150)

	// Party blocks
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(40, 170, "INVOICE TO")
	pdf.Text(pageW/2, 170, "COMPANY")

	pdf.SetFont("Helvetica", "", 13)
	y := 195.0
	lineGap := 20.0
	pdf.Text(40, y, tr(view.ClientCompany))
	pdf.Text(40, y+lineGap, tr(view.ClientAddress))
	pdf.Text(40, y+2*lineGap, tr(view.District+", "+view.Country))
	pdf.Text(40, y+3*lineGap, tr("Contact: "+orDash(view.ClientContact)))
	pdf.Text(40, y+4*lineGap, tr("Email: "+orDash(view.ClientEmail)))

	for i, line := range issuerBlock {
		pdf.Text(pageW/2, y+float64(i)*lineGap, line)
	}

	// Itemized table
	itemsY := s.drawItemTable(pdf, tr, view, y+160, pageW)

	// Summary table
	summaryY := s.drawSummaryTable(pdf, view.Totals, itemsY+30, pageW)

	// Payment method
	paymentY := summaryY + 30
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(40, paymentY, "PAYMENT METHOD")
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(40, paymentY+20, "Gpay: "+view.PaymentMethod)

	// Payment terms note, wrapped to page width
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(40, paymentY+35)
	pdf.MultiCell(pageW-80, 12, paymentTermsNote, "", "L", false)

	// Signature rules
	footerY := paymentY + 80
	pdf.SetDrawColor(0, 0, 0)
	pdf.Line(40, footerY, 200, footerY)
	pdf.Text(40, footerY+15, "Signature of Authorized Person")
	pdf.Line(pageW-160, footerY, pageW-40, footerY)
	pdf.Text(pageW-120, footerY+15, "Date")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		metrics.RendersTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("render invoice PDF: %w", err)
	}

	metrics.RendersTotal.WithLabelValues("ok").Inc()
	return buf.Bytes(), nil
}

// RenderToFile renders the invoice and saves it under the output
// directory, returning the saved path. Nothing is written when the
// render fails.
func (s *PDFService) RenderToFile(view DraftView) (string, error) {
	data, err := s.Render(view)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	name := Filename(view.InvoiceNo)
	path := filepath.Join(s.OutputDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("save invoice PDF: %w", err)
	}
	log.Printf("[PDF] Saved %s (%d bytes)", path, len(data))

	if s.Archive.Enabled() {
		if err := s.Archive.Store(name, data); err != nil {
			log.Printf("[PDF] Archive upload failed for %s: %v", name, err)
		}
	}

	return path, nil
}

// Filename returns the download name for an invoice number
func Filename(invoiceNo string) string {
	return fmt.Sprintf("Invoice-%s.pdf", invoiceNo)
}

// drawItemTable draws the two-column itemized table starting at startY
// and returns the y position below the last row.
func (s *PDFService) drawItemTable(pdf *gofpdf.Fpdf, tr func(string) string, view DraftView, startY, pageW float64) float64 {
	tableW := pageW - 80
	priceW := 140.0
	descW := tableW - priceW

	pdf.SetXY(40, startY)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetFillColor(26, 125, 96)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetDrawColor(180, 180, 180)
	pdf.CellFormat(descW, 26, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(priceW, 26, "Price", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 13)
	pdf.SetTextColor(0, 0, 0)
	for _, it := range view.Items {
		pdf.SetX(40)
		pdf.CellFormat(descW, 25, tr(it.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(priceW, 25, billing.FormatItemPrice(it.Price), "1", 1, "R", false, 0, "")
	}

	return pdf.GetY()
}

// drawSummaryTable draws the five fixed summary rows in a narrower table
// aligned to the right margin and returns the y position below it.
func (s *PDFService) drawSummaryTable(pdf *gofpdf.Fpdf, totals billing.Totals, startY, pageW float64) float64 {
	tableW := 250.0
	left := pageW - 290
	labelW := 130.0
	valueW := tableW - labelW

	rows := []struct {
		label string
		value float64
	}{
		{"Subtotal:", totals.Subtotal},
		{billing.TaxLabel() + ":", totals.Tax},
		{"TOTAL:", totals.Total},
		{"Paid:", totals.Paid},
		{"Balance:", totals.Balance},
	}

	pdf.SetY(startY)
	pdf.SetDrawColor(180, 180, 180)
	for _, r := range rows {
		pdf.SetX(left)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(labelW, 28, r.label, "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(valueW, 28, billing.FormatAmount(r.value), "1", 1, "R", false, 0, "")
	}

	return pdf.GetY()
}

// loadLetterhead fetches the letterhead image from disk or over HTTP.
// Any failure here is fatal to the render.
func (s *PDFService) loadLetterhead() ([]byte, string, error) {
	if s.LetterheadPath == "" {
		return nil, "", fmt.Errorf("no letterhead configured")
	}

	var data []byte
	if strings.HasPrefix(s.LetterheadPath, "http://") || strings.HasPrefix(s.LetterheadPath, "https://") {
		resp, err := s.httpClient.Get(s.LetterheadPath)
		if err != nil {
			return nil, "", fmt.Errorf("fetch %s: %w", s.LetterheadPath, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, "", fmt.Errorf("fetch %s: status %d", s.LetterheadPath, resp.StatusCode)
		}
		data, err = io.ReadAll(resp.Body)
		if err != nil {
			return nil, "", fmt.Errorf("fetch %s: %w", s.LetterheadPath, err)
		}
	} else {
		var err error
		data, err = os.ReadFile(s.LetterheadPath)
		if err != nil {
			return nil, "", err
		}
	}

	return data, imageType(s.LetterheadPath), nil
}

// imageType maps a letterhead path to the gofpdf image type name
func imageType(path string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "jpg", "jpeg":
		return "JPEG"
	case "gif":
		return "GIF"
	default:
		return "PNG"
	}
}

// invoiceSequence extracts the display number: the part after the first
// '-' in the invoice number, or the whole value when there is none.
func invoiceSequence(invoiceNo string) string {
	if i := strings.Index(invoiceNo, "-"); i >= 0 {
		return invoiceNo[i+1:]
	}
	return invoiceNo
}

// orDash substitutes the placeholder dash for an absent value
func orDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "—"
	}
	return v
}
