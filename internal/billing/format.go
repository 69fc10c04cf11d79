package billing

import "fmt"

// FormatAmount renders a summary amount as "Rs. <n>" with two decimals
func FormatAmount(v float64) string {
	return fmt.Sprintf("Rs. %.2f", v)
}

// FormatItemPrice renders an item price for the itemized table:
// "Rs. <n>/-" with two decimals, or the literal "Rs. 0" when the
// price is not positive.
func FormatItemPrice(v float64) string {
	if v <= 0 {
		return "Rs. 0"
	}
	return fmt.Sprintf("Rs. %.2f/-", v)
}
