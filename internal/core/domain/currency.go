package domain

import "fmt"

// Currency represents a selectable currency loaded from the currency list.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // e.g., "USD"
	Name         string `json:"name"`         // e.g., "US Dollar"
}

// DisplayName returns the selector label, e.g. "USD (US Dollar)".
func (c Currency) DisplayName() string {
	if c.Name == "" {
		return c.CurrencyCode
	}
	return fmt.Sprintf("%s (%s)", c.CurrencyCode, c.Name)
}
