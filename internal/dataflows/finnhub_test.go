package dataflows

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFinancialsReportStableOrder(t *testing.T) {
	metrics := map[string]json.RawMessage{
		"peTTM":          json.RawMessage(`28.4`),
		"grossMarginTTM": json.RawMessage(`0.46`),
		"beta":           json.RawMessage(`1.2`),
	}

	want := "## Basic financials for AAPL\n" +
		"beta: 1.2\n" +
		"grossMarginTTM: 0.46\n" +
		"peTTM: 28.4\n"

	// Map iteration order varies; the rendered report must not.
	for i := 0; i < 5; i++ {
		assert.Equal(t, want, formatFinancialsReport("AAPL", metrics))
	}
}
