package services

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoice-desk/internal/billing"
	"invoice-desk/internal/models"
)

func writeTestLetterhead(t *testing.T, dir string) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for x := 0; x < 64; x++ {
		for y := 0; y < 64; y++ {
			img.Set(x, y, color.RGBA{R: 26, G: 125, B: 96, A: 255})
		}
	}

	path := filepath.Join(dir, "letterhead.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func testDraftView() DraftView {
	items := []models.LineItem{
		{Name: "Web Page Development", Price: 5000},
		{Name: "Logo Design", Price: 1000},
	}
	return DraftView{
		Draft: Draft{
			Items:            items,
			InvoiceNo:        "INV-0042",
			Date:             "2025-08-05",
			ClientCompany:    "Acme Ltd",
			ClientAddress:    "12 Mount Road",
			District:         "Chennai",
			Country:          "India",
			ClientContact:    "9876543210",
			PaymentMethod:    models.PaymentUPI,
			AuthorizedPerson: "R. Kumar",
		},
		Totals: billing.Compute(items, 0),
	}
}

func TestRenderProducesPDF(t *testing.T) {
	dir := t.TempDir()
	svc := NewPDFService(writeTestLetterhead(t, dir), dir, nil)

	data, err := svc.Render(testDraftView())
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderToFileUsesInvoiceNumber(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	svc := NewPDFService(writeTestLetterhead(t, dir), out, nil)

	path, err := svc.RenderToFile(testDraftView())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "Invoice-INV-0042.pdf"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestMissingLetterheadAbortsRender(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	svc := NewPDFService(filepath.Join(dir, "missing.png"), out, nil)

	_, err := svc.RenderToFile(testDraftView())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "letterhead")

	// No partial invoice file is left behind
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestInvoiceSequence(t *testing.T) {
	assert.Equal(t, "0042", invoiceSequence("INV-0042"))
	assert.Equal(t, "0001-A", invoiceSequence("INV-0001-A"))
	assert.Equal(t, "73", invoiceSequence("73"))
}
