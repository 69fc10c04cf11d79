package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"invoice-desk/internal/handlers"
)

func NewRouter(
	draftHandler *handlers.DraftHandler,
	searchHandler *handlers.SearchHandler,
	catalogHandler *handlers.CatalogHandler,
	healthHandler *handlers.HealthHandler,
) *mux.Router {
	r := mux.NewRouter()

	// Draft composition
	draftAPI := r.PathPrefix("/api/draft").Subrouter()
	draftAPI.HandleFunc("", draftHandler.GetDraft).Methods("GET")
	draftAPI.HandleFunc("", draftHandler.UpdateFields).Methods("PUT")
	draftAPI.HandleFunc("/items", draftHandler.AddItem).Methods("POST")
	draftAPI.HandleFunc("/items/{index}", draftHandler.UpdateItem).Methods("PUT")
	draftAPI.HandleFunc("/items/{index}", draftHandler.DeleteItem).Methods("DELETE")
	draftAPI.HandleFunc("/reset", draftHandler.Reset).Methods("POST")
	draftAPI.HandleFunc("/save", draftHandler.Save).Methods("POST")
	draftAPI.HandleFunc("/render", draftHandler.Render).Methods("POST")
	draftAPI.HandleFunc("/pdf", draftHandler.DownloadPDF).Methods("GET")

	// Saved invoice search and editing
	invoicesAPI := r.PathPrefix("/api/invoices").Subrouter()
	invoicesAPI.HandleFunc("/search", searchHandler.SearchInvoices).Methods("GET")
	invoicesAPI.HandleFunc("/{id}/edit", searchHandler.OpenEdit).Methods("GET")
	invoicesAPI.HandleFunc("/{id}", searchHandler.UpdateInvoice).Methods("PUT")
	invoicesAPI.HandleFunc("/{id}", searchHandler.DeleteInvoice).Methods("DELETE")

	// Catalogs for the form
	r.HandleFunc("/api/catalog", catalogHandler.GetCatalog).Methods("GET")

	// Health and metrics
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return r
}
