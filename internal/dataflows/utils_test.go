package dataflows

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateSymbol(t *testing.T) {
	for _, symbol := range []string{"AAPL", "brk.b", "BF-B", "A", " SPY "} {
		assert.NoError(t, ValidateSymbol(symbol), symbol)
	}

	for _, symbol := range []string{"", "1AAPL", "AAPL$", "TOOLONGTICKER", ".SPX"} {
		assert.Error(t, ValidateSymbol(symbol), symbol)
	}
}

func TestNormalizeSymbol(t *testing.T) {
	assert.Equal(t, "AAPL", NormalizeSymbol(" aapl "))
	assert.Equal(t, "BRK.B", NormalizeSymbol("brk.b"))
}

func TestFormatDateRange(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-02..2024-03-15", FormatDateRange(start, end))
}
