package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"invoice-desk/internal/metrics"
	"invoice-desk/internal/models"
)

// InvoiceAPI is the binding to the external invoice service that owns all
// persistence. Requests and responses are plain JSON invoice records; the
// service carries no authentication and offers no pagination.
type InvoiceAPI interface {
	Create(ctx context.Context, rec *models.InvoiceRecord) (*models.InvoiceRecord, error)
	List(ctx context.Context) ([]models.InvoiceRecord, error)
	Search(ctx context.Context, keyword string) ([]models.InvoiceRecord, error)
	Update(ctx context.Context, id int, rec *models.InvoiceRecord) error
	Delete(ctx context.Context, id int) error
}

// HTTPClient implements InvoiceAPI against a base URL such as
// http://localhost:8000/api/invoice.
type HTTPClient struct {
	BaseURL string
	client  *http.Client
}

// NewHTTPClient creates an invoice API client. A zero timeout disables the
// client-side deadline.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Create saves a new invoice; the service assigns and returns the invoice number
func (c *HTTPClient) Create(ctx context.Context, rec *models.InvoiceRecord) (*models.InvoiceRecord, error) {
	body, err := c.do(ctx, http.MethodPost, c.BaseURL, rec)
	if err != nil {
		return nil, err
	}

	var saved models.InvoiceRecord
	if err := json.Unmarshal(body, &saved); err != nil {
		return nil, fmt.Errorf("invoice API: decode create response: %w", err)
	}
	return &saved, nil
}

// List returns all invoices held by the service
func (c *HTTPClient) List(ctx context.Context) ([]models.InvoiceRecord, error) {
	body, err := c.do(ctx, http.MethodGet, c.BaseURL, nil)
	if err != nil {
		return nil, err
	}

	var recs []models.InvoiceRecord
	if err := json.Unmarshal(body, &recs); err != nil {
		return nil, fmt.Errorf("invoice API: decode list response: %w", err)
	}
	return recs, nil
}

// Search returns the invoices matching a free-text keyword
func (c *HTTPClient) Search(ctx context.Context, keyword string) ([]models.InvoiceRecord, error) {
	u := fmt.Sprintf("%s/search?keyword=%s", c.BaseURL, url.QueryEscape(keyword))
	body, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	var recs []models.InvoiceRecord
	if err := json.Unmarshal(body, &recs); err != nil {
		return nil, fmt.Errorf("invoice API: decode search response: %w", err)
	}
	return recs, nil
}

// Update replaces the stored invoice with the given record (full replace)
func (c *HTTPClient) Update(ctx context.Context, id int, rec *models.InvoiceRecord) error {
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", c.BaseURL, id), rec)
	return err
}

// Delete removes the stored invoice
func (c *HTTPClient) Delete(ctx context.Context, id int) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", c.BaseURL, id), nil)
	return err
}

// do sends one request and returns the response body. Any non-2xx status
// is surfaced as an error carrying the body for the notification text.
func (c *HTTPClient) do(ctx context.Context, method, u string, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("invoice API: encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("invoice API: create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.RemoteCallsTotal.WithLabelValues(method, "error").Inc()
		return nil, fmt.Errorf("invoice API: %s %s: %w", method, u, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	metrics.RemoteCallsTotal.WithLabelValues(method, fmt.Sprintf("%d", resp.StatusCode)).Inc()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("invoice API error (status %d): %s", resp.StatusCode, string(body))
	}

	return body, nil
}
