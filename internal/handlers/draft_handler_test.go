package handlers_test

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoice-desk/internal/handlers"
	"invoice-desk/internal/health"
	routerpkg "invoice-desk/internal/http"
	"invoice-desk/internal/remote"
	"invoice-desk/internal/services"
)

func newTestRouter(t *testing.T, mock *remote.MockClient) http.Handler {
	t.Helper()

	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for x := 0; x < 32; x++ {
		for y := 0; y < 32; y++ {
			img.Set(x, y, color.RGBA{R: 26, G: 125, B: 96, A: 255})
		}
	}
	letterhead := filepath.Join(dir, "letterhead.png")
	f, err := os.Create(letterhead)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	f.Close()

	drafts := services.NewDraftService(mock)
	pdf := services.NewPDFService(letterhead, filepath.Join(dir, "out"), nil)
	search := services.NewSearchService(mock)

	return routerpkg.NewRouter(
		handlers.NewDraftHandler(drafts, pdf),
		handlers.NewSearchHandler(search),
		handlers.NewCatalogHandler(),
		handlers.NewHealthHandler(health.NewHealthChecker("http://127.0.0.1:0")),
	)
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeView(t *testing.T, rr *httptest.ResponseRecorder) services.DraftView {
	t.Helper()
	var view services.DraftView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	return view
}

func TestGetDraftReturnsFixedItemsAndTotals(t *testing.T) {
	router := newTestRouter(t, remote.NewMockClient())

	rr := doJSON(t, router, http.MethodGet, "/api/draft", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	view := decodeView(t, rr)
	assert.Len(t, view.Items, 4)
	assert.Equal(t, 5900.0, view.Totals.Total)
}

func TestAddAndDeleteItems(t *testing.T) {
	router := newTestRouter(t, remote.NewMockClient())

	rr := doJSON(t, router, http.MethodPost, "/api/draft/items", map[string]string{"name": "SEO Optimization"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeView(t, rr).Items, 5)

	rr = doJSON(t, router, http.MethodPost, "/api/draft/items", map[string]string{"name": "Underwater Welding"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSON(t, router, http.MethodDelete, "/api/draft/items/0", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeView(t, rr).Items, 4)

	rr = doJSON(t, router, http.MethodDelete, "/api/draft/items/99", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdateItemCoercesBadPriceToZero(t *testing.T) {
	router := newTestRouter(t, remote.NewMockClient())

	rr := doJSON(t, router, http.MethodPut, "/api/draft/items/0", map[string]interface{}{
		"name":  "Web Page Development",
		"price": "not-a-number",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	view := decodeView(t, rr)
	assert.Equal(t, 0.0, view.Items[0].Price)
	assert.Equal(t, 0.0, view.Totals.Subtotal)
}

func TestUpdateFieldsCoercesBadPaidToZero(t *testing.T) {
	router := newTestRouter(t, remote.NewMockClient())

	rr := doJSON(t, router, http.MethodPut, "/api/draft", map[string]interface{}{"paid": 250})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 250.0, decodeView(t, rr).Paid)

	rr = doJSON(t, router, http.MethodPut, "/api/draft", map[string]interface{}{"paid": "not-a-number"})
	require.Equal(t, http.StatusOK, rr.Code)

	view := decodeView(t, rr)
	assert.Equal(t, 0.0, view.Paid)
	assert.Equal(t, view.Totals.Total, view.Totals.Balance)
}

func TestUpdateFieldsRejectsBadPaymentMethod(t *testing.T) {
	router := newTestRouter(t, remote.NewMockClient())

	rr := doJSON(t, router, http.MethodPut, "/api/draft", map[string]string{"paymentMethod": "BARTER"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSON(t, router, http.MethodPut, "/api/draft", map[string]string{"paymentMethod": "cash"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "CASH", decodeView(t, rr).PaymentMethod)
}

func TestSaveValidationAndSuccess(t *testing.T) {
	router := newTestRouter(t, remote.NewMockClient())

	rr := doJSON(t, router, http.MethodPost, "/api/draft/save", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = doJSON(t, router, http.MethodPut, "/api/draft", map[string]string{"authorizedPerson": "R. Kumar"})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, router, http.MethodPost, "/api/draft/save", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "INV-0001")
}

func TestSaveFailureReturnsBadGateway(t *testing.T) {
	mock := remote.NewMockClient()
	mock.FailCreate = true
	router := newTestRouter(t, mock)

	rr := doJSON(t, router, http.MethodPut, "/api/draft", map[string]string{"authorizedPerson": "R. Kumar"})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, router, http.MethodPost, "/api/draft/save", nil)
	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestDownloadPDFStreamsDocument(t *testing.T) {
	router := newTestRouter(t, remote.NewMockClient())

	rr := doJSON(t, router, http.MethodGet, "/api/draft/pdf", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rr.Body.String(), "%PDF"))
}

func TestResetRestoresDraft(t *testing.T) {
	router := newTestRouter(t, remote.NewMockClient())

	rr := doJSON(t, router, http.MethodDelete, "/api/draft/items/0", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, router, http.MethodPost, "/api/draft/reset", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeView(t, rr).Items, 4)
}

func TestGetCatalog(t *testing.T) {
	router := newTestRouter(t, remote.NewMockClient())

	rr := doJSON(t, router, http.MethodGet, "/api/catalog", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "SEO Optimization")
	assert.Contains(t, rr.Body.String(), "Chennai")
	assert.Contains(t, rr.Body.String(), "UPI")
}
