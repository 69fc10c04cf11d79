package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"invoice-desk/internal/billing"
	"invoice-desk/internal/models"
	"invoice-desk/internal/remote"
	"invoice-desk/internal/timeutil"
)

var (
	// ErrAuthorizedPersonRequired blocks a save before any network call is made
	ErrAuthorizedPersonRequired = errors.New("authorized person name is required")

	// ErrUnknownService is returned when an add names no optional catalog entry
	ErrUnknownService = errors.New("unknown optional service")

	// ErrItemIndex is returned for an edit or delete outside the item list
	ErrItemIndex = errors.New("item index out of range")

	// ErrInvalidPaymentMethod is returned for a method outside the fixed set
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// Draft is the invoice being composed. The DraftService owns the only
// mutable copy; everything handed out is a snapshot.
type Draft struct {
	Items            []models.LineItem `json:"items"`
	InvoiceNo        string            `json:"invoiceNo"`
	Date             string            `json:"date"`
	ClientCompany    string            `json:"clientCompany"`
	ClientAddress    string            `json:"clientAddress"`
	District         string            `json:"district"`
	Country          string            `json:"country"`
	ClientEmail      string            `json:"clientEmail"`
	ClientContact    string            `json:"clientContact"`
	PaymentMethod    string            `json:"paymentMethod"`
	AuthorizedPerson string            `json:"authorizedPerson"`
	Paid             float64           `json:"paid"`
}

// DraftView is the read-only preview of the draft with its derived totals
type DraftView struct {
	Draft
	Totals billing.Totals `json:"totals"`
}

// FieldPatch carries scalar field updates; nil fields are left unchanged
type FieldPatch struct {
	Date             *string  `json:"date"`
	ClientCompany    *string  `json:"clientCompany"`
	ClientAddress    *string  `json:"clientAddress"`
	District         *string  `json:"district"`
	Country          *string  `json:"country"`
	ClientEmail      *string  `json:"clientEmail"`
	ClientContact    *string  `json:"clientContact"`
	PaymentMethod    *string  `json:"paymentMethod"`
	AuthorizedPerson *string  `json:"authorizedPerson"`
	Paid             *float64 `json:"paid"`
}

// DraftService is the form controller: it owns the draft for its whole
// lifetime and recomputes totals synchronously on every mutation.
type DraftService struct {
	mu     sync.Mutex
	draft  Draft
	totals billing.Totals
	api    remote.InvoiceAPI
}

// NewDraftService creates the controller with a fresh draft
func NewDraftService(api remote.InvoiceAPI) *DraftService {
	s := &DraftService{api: api}
	s.resetLocked()
	return s
}

// Reset discards the draft and starts over from the fixed catalog
func (s *DraftService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *DraftService) resetLocked() {
	s.draft = Draft{
		Items:         models.NewFixedItems(),
		Date:          timeutil.Now().Format(timeutil.DateLayout),
		Country:       models.DefaultCountry,
		PaymentMethod: models.PaymentUPI,
	}
	s.recomputeLocked()
}

// recomputeLocked re-derives totals; callers hold the lock. Every setter
// goes through here before the next read can observe the draft.
func (s *DraftService) recomputeLocked() {
	s.totals = billing.Compute(s.draft.Items, s.draft.Paid)
}

// View returns a snapshot of the draft and its totals
func (s *DraftService) View() DraftView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *DraftService) viewLocked() DraftView {
	d := s.draft
	d.Items = make([]models.LineItem, len(s.draft.Items))
	copy(d.Items, s.draft.Items)
	return DraftView{Draft: d, Totals: s.totals}
}

// AddOptionalService appends the named optional catalog item. Adding an
// item already present by name is a silent no-op; names outside the
// catalog are rejected.
func (s *DraftService) AddOptionalService(name string) error {
	svc, ok := models.FindOptionalService(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownService, name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, it := range s.draft.Items {
		if it.Name == svc.Name {
			return nil
		}
	}

	s.draft.Items = append(s.draft.Items, svc)
	s.recomputeLocked()
	return nil
}

// UpdateItem edits the item at the given position in place
func (s *DraftService) UpdateItem(index int, name string, price float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.draft.Items) {
		return ErrItemIndex
	}

	s.draft.Items[index].Name = name
	s.draft.Items[index].Price = price
	s.recomputeLocked()
	return nil
}

// DeleteItem removes the item at the given position, preserving the
// order of the rest.
func (s *DraftService) DeleteItem(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.draft.Items) {
		return ErrItemIndex
	}

	s.draft.Items = append(s.draft.Items[:index], s.draft.Items[index+1:]...)
	s.recomputeLocked()
	return nil
}

// ApplyFields updates the scalar draft fields present in the patch
func (s *DraftService) ApplyFields(p *FieldPatch) error {
	if p.PaymentMethod != nil && !models.IsValidPaymentMethod(strings.ToUpper(*p.PaymentMethod)) {
		return fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, *p.PaymentMethod)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if p.Date != nil {
		s.draft.Date = *p.Date
	}
	if p.ClientCompany != nil {
		s.draft.ClientCompany = *p.ClientCompany
	}
	if p.ClientAddress != nil {
		s.draft.ClientAddress = *p.ClientAddress
	}
	if p.District != nil {
		s.draft.District = *p.District
	}
	if p.Country != nil {
		s.draft.Country = *p.Country
	}
	if p.ClientEmail != nil {
		s.draft.ClientEmail = *p.ClientEmail
	}
	if p.ClientContact != nil {
		s.draft.ClientContact = *p.ClientContact
	}
	if p.PaymentMethod != nil {
		s.draft.PaymentMethod = strings.ToUpper(*p.PaymentMethod)
	}
	if p.AuthorizedPerson != nil {
		s.draft.AuthorizedPerson = *p.AuthorizedPerson
	}
	if p.Paid != nil {
		paid := *p.Paid
		if paid < 0 {
			paid = 0
		}
		s.draft.Paid = paid
	}

	s.recomputeLocked()
	return nil
}

// Record flattens the draft into the wire shape the remote service
// stores: item names comma-joined, itemization dropped.
func (s *DraftService) Record() *models.InvoiceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recordLocked()
}

func (s *DraftService) recordLocked() *models.InvoiceRecord {
	names := make([]string, len(s.draft.Items))
	for i, it := range s.draft.Items {
		names[i] = it.Name
	}

	return &models.InvoiceRecord{
		InvoiceNo:          s.draft.InvoiceNo,
		InvoiceDate:        s.draft.Date,
		CustomerName:       s.draft.ClientCompany,
		Email:              s.draft.ClientEmail,
		Phone:              s.draft.ClientContact,
		Address:            s.draft.ClientAddress,
		District:           s.draft.District,
		Country:            s.draft.Country,
		ServiceDescription: strings.Join(names, ", "),
		ServicePrice:       s.totals.Subtotal,
		Tax:                s.totals.Tax,
		TotalAmount:        s.totals.Total,
		Paid:               s.totals.Paid,
		Balance:            s.totals.Balance,
		PaymentMethod:      strings.ToUpper(s.draft.PaymentMethod),
	}
}

// Save sends the flattened draft to the remote service. On success the
// assigned invoice number is captured into the draft; on failure the
// draft is left exactly as it was.
func (s *DraftService) Save(ctx context.Context) (string, error) {
	s.mu.Lock()
	if strings.TrimSpace(s.draft.AuthorizedPerson) == "" {
		s.mu.Unlock()
		return "", ErrAuthorizedPersonRequired
	}
	rec := s.recordLocked()
	s.mu.Unlock()

	saved, err := s.api.Create(ctx, rec)
	if err != nil {
		log.Printf("[Draft] Save failed: %v", err)
		return "", fmt.Errorf("save invoice: %w", err)
	}

	s.mu.Lock()
	s.draft.InvoiceNo = saved.InvoiceNo
	s.mu.Unlock()

	log.Printf("[Draft] Invoice saved as %s", saved.InvoiceNo)
	return saved.InvoiceNo, nil
}
