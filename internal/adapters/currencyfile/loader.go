package currencyfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/SscSPs/forexflex/internal/apperrors"
	"github.com/SscSPs/forexflex/internal/core/domain"
)

const (
	codeColumn = "code"
	nameColumn = "name"
)

// LoadCurrencies reads the currency list from a CSV file with "Code" and "Name" header columns.
func LoadCurrencies(path string) ([]domain.Currency, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: currency list path is empty", apperrors.ErrValidation)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open currency list: %w", err)
	}
	defer f.Close() //nolint:errcheck

	currencies, err := ParseCurrencies(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse currency list %s: %w", path, err)
	}
	return currencies, nil
}

// ParseCurrencies parses a currency table. Columns are located by header name,
// case-insensitively, and any extra columns are ignored.
func ParseCurrencies(r io.Reader) ([]domain.Currency, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: currency list is empty", apperrors.ErrValidation)
	}
	if err != nil {
		return nil, err
	}

	codeIdx, nameIdx := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))) {
		case codeColumn:
			codeIdx = i
		case nameColumn:
			nameIdx = i
		}
	}
	if codeIdx < 0 || nameIdx < 0 {
		return nil, fmt.Errorf("%w: header must contain Code and Name columns, got %v", apperrors.ErrValidation, header)
	}

	var currencies []domain.Currency
	seen := make(map[string]int)
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := reader.FieldPos(0)
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if len(rec) <= codeIdx || len(rec) <= nameIdx {
			return nil, fmt.Errorf("%w: line %d has %d columns", apperrors.ErrValidation, line, len(rec))
		}

		code := strings.ToUpper(strings.TrimSpace(rec[codeIdx]))
		if code == "" {
			return nil, fmt.Errorf("%w: line %d has an empty code", apperrors.ErrValidation, line)
		}
		if prev, dup := seen[code]; dup {
			return nil, fmt.Errorf("%w: duplicate code %s on lines %d and %d", apperrors.ErrValidation, code, prev, line)
		}
		seen[code] = line

		currencies = append(currencies, domain.Currency{
			CurrencyCode: code,
			Name:         strings.TrimSpace(rec[nameIdx]),
		})
	}

	if len(currencies) == 0 {
		return nil, fmt.Errorf("%w: currency list has no entries", apperrors.ErrValidation)
	}
	return currencies, nil
}
