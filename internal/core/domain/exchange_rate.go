package domain

// ExchangeRateTable maps target currency codes to the rate against a single base currency.
// It is fetched fresh for every conversion and never cached.
type ExchangeRateTable struct {
	BaseCode string
	Rates    map[string]float64
}

// Rate returns the rate for the given target code.
// Non-positive entries violate the table invariant and are reported as absent.
func (t ExchangeRateTable) Rate(code string) (float64, bool) {
	rate, ok := t.Rates[code]
	if !ok || rate <= 0 {
		return 0, false
	}
	return rate, true
}
