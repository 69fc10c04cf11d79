package models

// LineItem is a named service entry on the invoice draft.
// Items have no identity beyond their position in the draft;
// row order is display order.
type LineItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Payment methods accepted on an invoice
const (
	PaymentUPI             = "UPI"
	PaymentCard            = "CARD"
	PaymentAccountTransfer = "ACCOUNT_TRANSFER"
	PaymentCash            = "CASH"
)

// PaymentMethods lists the accepted payment methods in display order
var PaymentMethods = []string{
	PaymentUPI,
	PaymentCard,
	PaymentAccountTransfer,
	PaymentCash,
}

// IsValidPaymentMethod reports whether m is one of the accepted methods
func IsValidPaymentMethod(m string) bool {
	for _, pm := range PaymentMethods {
		if pm == m {
			return true
		}
	}
	return false
}

// InvoiceRecord is the wire shape of an invoice as stored by the remote
// invoice service. The itemized line list is flattened into
// ServiceDescription on save; only the aggregate price survives.
type InvoiceRecord struct {
	ID                 int     `json:"id,omitempty"`
	InvoiceNo          string  `json:"invoiceNo,omitempty"`
	InvoiceDate        string  `json:"invoiceDate"`
	CustomerName       string  `json:"customerName"`
	Email              string  `json:"email"`
	Phone              string  `json:"phone"`
	Address            string  `json:"address"`
	District           string  `json:"district"`
	Country            string  `json:"country"`
	ServiceDescription string  `json:"serviceDescription"`
	ServicePrice       float64 `json:"servicePrice"`
	Tax                float64 `json:"tax"`
	TotalAmount        float64 `json:"totalAmount"`
	Paid               float64 `json:"paid"`
	Balance            float64 `json:"balance"`
	PaymentMethod      string  `json:"paymentMethod"`
}
