package timeutil

import (
	"strings"
	"time"
)

// IST is the Indian Standard Time location (UTC+5:30). Invoice dates are
// entered and displayed in the issuer's local time.
var IST *time.Location

func init() {
	var err error
	IST, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// Fallback: create fixed zone if Asia/Kolkata not available
		IST = time.FixedZone("IST", 5*60*60+30*60) // UTC+5:30
	}
}

// Now returns the current time in IST
func Now() time.Time {
	return time.Now().In(IST)
}

// ParseInIST parses a time string and returns it in IST
func ParseInIST(layout, value string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, value, IST)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// DateLayout is the wire format for invoice dates
const DateLayout = "2006-01-02"

// InvoiceDisplayDate formats a wire date for the printed invoice:
// uppercase day, full month name and year, e.g. "05 AUGUST 2025".
// A value that does not parse is returned unchanged.
func InvoiceDisplayDate(value string) string {
	t, err := ParseInIST(DateLayout, value)
	if err != nil {
		return value
	}
	return strings.ToUpper(t.Format("02 January 2006"))
}
