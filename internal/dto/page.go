package dto

import (
	"github.com/SscSPs/forexflex/internal/core/domain"
	"github.com/SscSPs/forexflex/internal/utils"
	"github.com/samber/lo"
)

// CurrencyOption is one entry of a currency selector.
type CurrencyOption struct {
	Code     string
	Label    string
	Selected bool
}

// ConversionResultView is the success banner and rate metric of a conversion.
type ConversionResultView struct {
	Headline  string // "100.0 USD = 92.00 EUR"
	Rate      string
	RateDelta string
	Negative  bool
}

// HistoryCardView is one card of the history sidebar.
type HistoryCardView struct {
	Title           string // "100.0 USD (US Dollar) → 92.00 EUR (Euro)"
	Rate            string
	ConvertedAmount string
}

// ConverterPage is the view model of the converter page.
type ConverterPage struct {
	FromOptions []CurrencyOption
	ToOptions   []CurrencyOption
	Amount      string
	Result      *ConversionResultView
	Warning     string
	Error       string
	History     []HistoryCardView
}

// NewConverterPage builds the page for the given selection state.
func NewConverterPage(currencies []domain.Currency, fromCode, toCode string, history []domain.ConversionRecord) ConverterPage {
	return ConverterPage{
		FromOptions: toOptions(currencies, fromCode),
		ToOptions:   toOptions(currencies, toCode),
		History:     ToHistoryCards(history),
	}
}

func toOptions(currencies []domain.Currency, selected string) []CurrencyOption {
	return lo.Map(currencies, func(c domain.Currency, _ int) CurrencyOption {
		return CurrencyOption{Code: c.CurrencyCode, Label: c.DisplayName(), Selected: c.CurrencyCode == selected}
	})
}

// ToConversionResultView formats a successful conversion for the result banner.
func ToConversionResultView(record *domain.ConversionRecord) *ConversionResultView {
	return &ConversionResultView{
		Headline:  utils.FormatAmount(record.Amount) + " " + record.FromCode + " = " + utils.FormatMoney(record.ConvertedAmount) + " " + record.ToCode,
		Rate:      utils.FormatRate(record.Rate),
		RateDelta: utils.FormatRateDelta(record.Rate),
		Negative:  record.Rate < 1,
	}
}

// ToHistoryCards formats history records for the sidebar, keeping their order.
func ToHistoryCards(records []domain.ConversionRecord) []HistoryCardView {
	return lo.Map(records, func(r domain.ConversionRecord, _ int) HistoryCardView {
		return HistoryCardView{
			Title:           utils.FormatAmount(r.Amount) + " " + r.FromName + " → " + utils.FormatMoney(r.ConvertedAmount) + " " + r.ToName,
			Rate:            utils.FormatRate(r.Rate),
			ConvertedAmount: utils.FormatMoney(r.ConvertedAmount) + " " + r.ToCode,
		}
	})
}
