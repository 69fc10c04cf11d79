package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"invoice-desk/internal/models"
	"invoice-desk/internal/services"
	"invoice-desk/pkg/utils"
)

type SearchHandler struct {
	Search *services.SearchService
}

func NewSearchHandler(search *services.SearchService) *SearchHandler {
	return &SearchHandler{Search: search}
}

// SearchInvoices fetches records matching the keyword from the remote service
func (h *SearchHandler) SearchInvoices(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")

	res, err := h.Search.Search(r.Context(), keyword)
	if err != nil {
		utils.Error(w, http.StatusBadGateway, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, res)
}

// OpenEdit returns an edit buffer copied from the current results
func (h *SearchHandler) OpenEdit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid invoice ID")
		return
	}

	rec, err := h.Search.OpenEdit(id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, rec)
}

// UpdateInvoice commits a full-record edit and returns the reloaded results
func (h *SearchHandler) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid invoice ID")
		return
	}

	var rec models.InvoiceRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.Search.CommitEdit(r.Context(), id, &rec)
	if err != nil {
		utils.Error(w, http.StatusBadGateway, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, res)
}

// DeleteInvoice removes an invoice. The caller must confirm explicitly.
func (h *SearchHandler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid invoice ID")
		return
	}

	if r.URL.Query().Get("confirm") != "true" {
		utils.Error(w, http.StatusBadRequest, "Deletion requires confirm=true")
		return
	}

	if err := h.Search.Delete(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrNotInResults) {
			utils.Error(w, http.StatusNotFound, err.Error())
			return
		}
		utils.Error(w, http.StatusBadGateway, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
