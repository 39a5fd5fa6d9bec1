package dataflows

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var symbolPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9.\-]{0,9}$`)

// ValidateSymbol rejects obviously malformed ticker symbols before they
// reach an external API.
func ValidateSymbol(symbol string) error {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return fmt.Errorf("symbol cannot be empty")
	}
	if !symbolPattern.MatchString(symbol) {
		return fmt.Errorf("invalid symbol %q", symbol)
	}
	return nil
}

func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

func FormatDateRange(start, end time.Time) string {
	return fmt.Sprintf("%s..%s", start.Format("2006-01-02"), end.Format("2006-01-02"))
}
