package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatItemPrice(t *testing.T) {
	assert.Equal(t, "Rs. 5000.00/-", FormatItemPrice(5000))
	assert.Equal(t, "Rs. 1500.50/-", FormatItemPrice(1500.5))
	assert.Equal(t, "Rs. 0", FormatItemPrice(0))
	assert.Equal(t, "Rs. 0", FormatItemPrice(-10))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "Rs. 3540.00", FormatAmount(3540))
	assert.Equal(t, "Rs. 0.00", FormatAmount(0))
}
