package amount

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/OlixIgnacious/indian-startups-transformations/pkg/contracts/domain"
)

// undisclosedToken marks an amount the source chose not to publish
const undisclosedToken = "undisclosed"

// Normalize converts a free-text amount such as "$ 1,500,000" or "Undisclosed".
//
// Every character other than digits, '.' and '-' is dropped, so currency
// symbols, thousands separators and whitespace disappear. An empty remainder
// or an unparseable one (e.g. "1.2.3") is missing.
func Normalize(raw string) domain.Number {
	trimmed := strings.TrimSpace(raw)
	if strings.EqualFold(trimmed, undisclosedToken) {
		return domain.Missing()
	}

	digits := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, trimmed)
	if digits == "" {
		return domain.Missing()
	}

	value, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return domain.Missing()
	}
	return domain.Known(value)
}

// NormalizeValue accepts already-typed input as well as text.
// Numbers are taken as they are, nil is missing, anything else goes through
// its textual representation.
func NormalizeValue(v any) domain.Number {
	switch value := v.(type) {
	case nil:
		return domain.Missing()
	case domain.Number:
		return value
	case *domain.Number:
		if value == nil {
			return domain.Missing()
		}
		return *value
	case float64:
		return domain.Known(value)
	case float32:
		return domain.Known(float64(value))
	case int:
		return domain.Known(float64(value))
	case int64:
		return domain.Known(float64(value))
	case int32:
		return domain.Known(float64(value))
	case uint64:
		return domain.Known(float64(value))
	case string:
		return Normalize(value)
	case fmt.Stringer:
		return Normalize(value.String())
	default:
		return Normalize(fmt.Sprint(value))
	}
}

// NormalizeColumn normalizes every cell of a text column
func NormalizeColumn(cells []string) []domain.Number {
	out := make([]domain.Number, len(cells))
	for i, cell := range cells {
		out[i] = Normalize(cell)
	}
	return out
}

// FormatColumn renders normalized amounts back to text, missing as ""
func FormatColumn(amounts []domain.Number) []string {
	out := make([]string, len(amounts))
	for i, a := range amounts {
		out[i] = a.String()
	}
	return out
}
