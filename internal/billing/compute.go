package billing

import (
	"fmt"
	"math"

	"invoice-desk/internal/models"
)

// TaxRate is the GST rate applied to every invoice. TaxLabel is derived
// from it so a future rate change cannot leave a stale summary label.
const TaxRate = 0.18

// TaxLabel returns the summary-row label for the configured tax rate,
// e.g. "Tax (18%)".
func TaxLabel() string {
	return fmt.Sprintf("Tax (%d%%)", int(TaxRate*100))
}

// Totals holds the derived amounts for an item set and a paid amount.
// Never stored on its own; recomputed on every draft mutation.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
	Paid     float64 `json:"paid"`
	Balance  float64 `json:"balance"`
}

// Compute derives subtotal, tax, total and balance from the item list and
// the paid amount. Pure function, safe to call on every edit. Callers are
// responsible for coercing malformed numeric input to 0 first; Compute
// itself raises no errors.
//
//	subtotal = sum(item.Price)
//	tax      = round(subtotal * TaxRate) to the nearest rupee
//	total    = subtotal + tax
//	balance  = max(total - paid, 0)  (over-payment clamps to zero)
func Compute(items []models.LineItem, paid float64) Totals {
	var subtotal float64
	for _, it := range items {
		subtotal += it.Price
	}

	tax := math.Round(subtotal * TaxRate)
	total := subtotal + tax

	balance := total - paid
	if balance < 0 {
		balance = 0
	}

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    total,
		Paid:     paid,
		Balance:  balance,
	}
}
