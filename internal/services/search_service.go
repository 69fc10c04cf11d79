package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"invoice-desk/internal/models"
	"invoice-desk/internal/remote"
)

// ErrNotInResults is returned when an edit targets a row that is not in
// the current result list.
var ErrNotInResults = errors.New("invoice not in current results")

// SearchResult is the state of the search view after a fetch. Empty is
// explicit so the caller can render a "no results" state rather than a
// bare table.
type SearchResult struct {
	Keyword string                 `json:"keyword"`
	Records []models.InvoiceRecord `json:"records"`
	Empty   bool                   `json:"empty"`
}

// SearchService drives the search/edit/delete view. It owns an
// independent copy of the last result list; the edit buffer handed out
// by OpenEdit is a full copy of the selected row, replaced on each open.
type SearchService struct {
	mu          sync.Mutex
	api         remote.InvoiceAPI
	lastKeyword string
	records     []models.InvoiceRecord
}

// NewSearchService creates a search view bound to the remote invoice API
func NewSearchService(api remote.InvoiceAPI) *SearchService {
	return &SearchService{api: api}
}

// Search fetches the records matching the keyword. Every distinct query
// triggers exactly one fetch; there is no cache and no debounce. On
// failure the previously held list is left untouched.
func (s *SearchService) Search(ctx context.Context, keyword string) (*SearchResult, error) {
	recs, err := s.api.Search(ctx, keyword)
	if err != nil {
		log.Printf("[Search] Fetch failed for %q: %v", keyword, err)
		return nil, fmt.Errorf("search invoices: %w", err)
	}

	s.mu.Lock()
	s.lastKeyword = keyword
	s.records = recs
	s.mu.Unlock()

	return &SearchResult{Keyword: keyword, Records: recs, Empty: len(recs) == 0}, nil
}

// OpenEdit returns a copy of the selected row from the held results.
// No fresh fetch is made; the buffer reflects what the table shows.
func (s *SearchService) OpenEdit(id int) (*models.InvoiceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.records {
		if r.ID == id {
			buf := r
			return &buf, nil
		}
	}
	return nil, fmt.Errorf("%w: id %d", ErrNotInResults, id)
}

// CommitEdit performs a full-record update and then reloads the whole
// result list from the server. An update failure leaves the held list
// exactly as it was.
func (s *SearchService) CommitEdit(ctx context.Context, id int, rec *models.InvoiceRecord) (*SearchResult, error) {
	if err := s.api.Update(ctx, id, rec); err != nil {
		log.Printf("[Search] Update failed for invoice %d: %v", id, err)
		return nil, fmt.Errorf("update invoice: %w", err)
	}

	s.mu.Lock()
	keyword := s.lastKeyword
	s.mu.Unlock()

	// Reload from the server rather than patching locally, so the view
	// never diverges from remote state.
	return s.Search(ctx, keyword)
}

// Delete removes the invoice remotely and, on success only, drops the
// row from the held list.
func (s *SearchService) Delete(ctx context.Context, id int) error {
	if err := s.api.Delete(ctx, id); err != nil {
		log.Printf("[Search] Delete failed for invoice %d: %v", id, err)
		return fmt.Errorf("delete invoice: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.records {
		if r.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			break
		}
	}
	return nil
}

// Results returns a copy of the currently held result list
func (s *SearchService) Results() []models.InvoiceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.InvoiceRecord, len(s.records))
	copy(out, s.records)
	return out
}
