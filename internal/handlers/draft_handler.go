package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"invoice-desk/internal/services"
	"invoice-desk/pkg/utils"
)

type DraftHandler struct {
	Drafts *services.DraftService
	PDF    *services.PDFService
}

func NewDraftHandler(drafts *services.DraftService, pdf *services.PDFService) *DraftHandler {
	return &DraftHandler{Drafts: drafts, PDF: pdf}
}

// flexFloat accepts a JSON number or a numeric string; anything that
// does not parse becomes 0, matching form-input coercion.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(v)
	return nil
}

// GetDraft returns the current draft with its derived totals
func (h *DraftHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.Drafts.View())
}

// fieldPatchRequest shadows the paid field with the flexible binding so
// non-numeric input degrades to 0 instead of failing the decode.
type fieldPatchRequest struct {
	services.FieldPatch
	Paid *flexFloat `json:"paid"`
}

// UpdateFields applies a partial update to the draft's scalar fields
func (h *DraftHandler) UpdateFields(w http.ResponseWriter, r *http.Request) {
	var req fieldPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	patch := req.FieldPatch
	if req.Paid != nil {
		paid := float64(*req.Paid)
		patch.Paid = &paid
	}

	if err := h.Drafts.ApplyFields(&patch); err != nil {
		if errors.Is(err, services.ErrInvalidPaymentMethod) {
			utils.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, h.Drafts.View())
}

// AddItem appends an optional catalog service to the draft
func (h *DraftHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.Drafts.AddOptionalService(req.Name); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, h.Drafts.View())
}

// UpdateItem edits the line item at the given position
func (h *DraftHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid item index")
		return
	}

	var req struct {
		Name  string    `json:"name"`
		Price flexFloat `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.Drafts.UpdateItem(index, req.Name, float64(req.Price)); err != nil {
		utils.Error(w, http.StatusNotFound, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, h.Drafts.View())
}

// DeleteItem removes the line item at the given position
func (h *DraftHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid item index")
		return
	}

	if err := h.Drafts.DeleteItem(index); err != nil {
		utils.Error(w, http.StatusNotFound, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, h.Drafts.View())
}

// Reset discards the draft and starts a fresh one
func (h *DraftHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.Drafts.Reset()
	utils.JSON(w, http.StatusOK, h.Drafts.View())
}

// Save sends the flattened draft to the remote invoice service
func (h *DraftHandler) Save(w http.ResponseWriter, r *http.Request) {
	invoiceNo, err := h.Drafts.Save(r.Context())
	if err != nil {
		if errors.Is(err, services.ErrAuthorizedPersonRequired) {
			utils.Error(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		utils.Error(w, http.StatusBadGateway, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"invoiceNo": invoiceNo})
}

// Render produces the invoice PDF and saves it to the output directory
func (h *DraftHandler) Render(w http.ResponseWriter, r *http.Request) {
	view := h.Drafts.View()
	path, err := h.PDF.RenderToFile(view)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{
		"path":     path,
		"filename": services.Filename(view.InvoiceNo),
	})
}

// DownloadPDF renders the draft and streams the PDF back
func (h *DraftHandler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	view := h.Drafts.View()
	data, err := h.PDF.Render(view)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+services.Filename(view.InvoiceNo)+`"`)
	w.Write(data)
}
