package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"invoice-desk/internal/config"
	"invoice-desk/internal/handlers"
	"invoice-desk/internal/health"
	h "invoice-desk/internal/http"
	"invoice-desk/internal/middleware"
	"invoice-desk/internal/remote"
	"invoice-desk/internal/services"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	letterhead := flag.String("letterhead", "", "Letterhead image path or URL (overrides config)")
	flag.Parse()

	cfg := config.Load()
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *letterhead != "" {
		cfg.PDF.LetterheadPath = *letterhead
	}

	// Remote invoice API client; the in-memory mock serves offline runs
	var api remote.InvoiceAPI
	if cfg.InvoiceAPI.UseMock {
		log.Println("[Remote] Using in-memory mock invoice API")
		api = remote.NewMockClient()
	} else {
		log.Printf("[Remote] Invoice API at %s (timeout %s)", cfg.InvoiceAPI.BaseURL, cfg.Timeout())
		api = remote.NewHTTPClient(cfg.InvoiceAPI.BaseURL, cfg.Timeout())
	}

	// Services
	archive := services.NewArchiveService(
		cfg.Archive.Endpoint,
		cfg.Archive.AccessKey,
		cfg.Archive.SecretKey,
		cfg.Archive.Bucket,
		cfg.Archive.Region,
		cfg.Archive.Prefix,
	)
	if archive.Enabled() {
		log.Printf("[Archive] Mirroring rendered invoices to bucket %s", cfg.Archive.Bucket)
	}

	draftService := services.NewDraftService(api)
	searchService := services.NewSearchService(api)
	pdfService := services.NewPDFService(cfg.PDF.LetterheadPath, cfg.PDF.OutputDir, archive)

	// Handlers
	draftHandler := handlers.NewDraftHandler(draftService, pdfService)
	searchHandler := handlers.NewSearchHandler(searchService)
	catalogHandler := handlers.NewCatalogHandler()
	healthChecker := health.NewHealthChecker(cfg.InvoiceAPI.BaseURL)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	router := h.NewRouter(draftHandler, searchHandler, catalogHandler, healthHandler)

	corsMiddleware := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
