package remote

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"invoice-desk/internal/models"
)

// ErrMockFailure is returned by a MockClient call that was told to fail
var ErrMockFailure = errors.New("mock invoice API failure")

// MockClient is an in-memory InvoiceAPI for tests and offline runs.
// Individual calls can be made to fail via the Fail* switches.
type MockClient struct {
	mu      sync.Mutex
	nextID  int
	records []models.InvoiceRecord

	FailCreate bool
	FailSearch bool
	FailUpdate bool
	FailDelete bool
}

// NewMockClient creates an empty in-memory invoice store
func NewMockClient() *MockClient {
	return &MockClient{nextID: 1}
}

// Create stores the record and assigns id and invoice number
func (m *MockClient) Create(_ context.Context, rec *models.InvoiceRecord) (*models.InvoiceRecord, error) {
	if m.FailCreate {
		return nil, ErrMockFailure
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	saved := *rec
	saved.ID = m.nextID
	saved.InvoiceNo = fmt.Sprintf("INV-%04d", m.nextID)
	m.nextID++
	m.records = append(m.records, saved)
	return &saved, nil
}

// List returns every stored record
func (m *MockClient) List(_ context.Context) ([]models.InvoiceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.InvoiceRecord, len(m.records))
	copy(out, m.records)
	return out, nil
}

// Search matches the keyword against invoice number, customer name and
// service description, case-insensitively.
func (m *MockClient) Search(_ context.Context, keyword string) ([]models.InvoiceRecord, error) {
	if m.FailSearch {
		return nil, ErrMockFailure
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	kw := strings.ToLower(keyword)
	var out []models.InvoiceRecord
	for _, r := range m.records {
		if strings.Contains(strings.ToLower(r.InvoiceNo), kw) ||
			strings.Contains(strings.ToLower(r.CustomerName), kw) ||
			strings.Contains(strings.ToLower(r.ServiceDescription), kw) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Update replaces the stored record with the given one
func (m *MockClient) Update(_ context.Context, id int, rec *models.InvoiceRecord) error {
	if m.FailUpdate {
		return ErrMockFailure
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, r := range m.records {
		if r.ID == id {
			updated := *rec
			updated.ID = id
			m.records[i] = updated
			return nil
		}
	}
	return fmt.Errorf("invoice %d not found", id)
}

// Delete removes the stored record
func (m *MockClient) Delete(_ context.Context, id int) error {
	if m.FailDelete {
		return ErrMockFailure
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, r := range m.records {
		if r.ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("invoice %d not found", id)
}
