package health

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker probes the remote invoice API the application depends
// on. The service is not ready when the API cannot be reached.
type HealthChecker struct {
	apiBaseURL string
	client     *http.Client
}

type HealthStatus struct {
	Status     string    `json:"status"`
	InvoiceAPI APIHealth `json:"invoice_api"`
}

type APIHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

func NewHealthChecker(apiBaseURL string) *HealthChecker {
	return &HealthChecker{
		apiBaseURL: apiBaseURL,
		client:     &http.Client{Timeout: 2 * time.Second},
	}
}

func (h *HealthChecker) CheckBasic() HealthStatus {
	apiHealth := h.checkInvoiceAPI()

	status := "healthy"
	if apiHealth.Status != "healthy" {
		status = "unhealthy"
	}

	return HealthStatus{
		Status:     status,
		InvoiceAPI: apiHealth,
	}
}

func (h *HealthChecker) checkInvoiceAPI() APIHealth {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.apiBaseURL, nil)
	if err != nil {
		return APIHealth{Status: "unhealthy"}
	}

	resp, err := h.client.Do(req)
	responseTime := time.Since(start).Milliseconds()
	if err != nil {
		return APIHealth{Status: "unhealthy", ResponseTime: responseTime}
	}
	resp.Body.Close()

	// Any response proves the API is up; 5xx means it is unhealthy
	if resp.StatusCode >= http.StatusInternalServerError {
		return APIHealth{Status: "unhealthy", ResponseTime: responseTime}
	}

	return APIHealth{Status: "healthy", ResponseTime: responseTime}
}
