package shared

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidNumber is matched by every ParseError.
var ErrInvalidNumber = errors.New("invalid number")

// MaxNumberLength bounds numeric text after separators are stripped.
const MaxNumberLength = 32

// ParseError reports numeric text that could not be parsed.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse number %q: %v", e.Input, e.Err)
	}
	return fmt.Sprintf("parse number %q: %v", e.Input, ErrInvalidNumber)
}

func (e *ParseError) Unwrap() error {
	return ErrInvalidNumber
}

// ParseDecimal parses numeric text typed by a user. Surrounding whitespace and
// thousands separators are ignored, a dangling decimal point ("12.") is
// accepted while the user is still typing, and empty input parses as zero.
// Exponent notation and text longer than MaxNumberLength are rejected.
func ParseDecimal(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, nil
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.TrimPrefix(s, "+")
	s = strings.TrimSuffix(s, ".")
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	} else if strings.HasPrefix(s, "-.") {
		s = "-0" + s[1:]
	}
	if s == "" || s == "-" || len(s) > MaxNumberLength {
		return decimal.Zero, &ParseError{Input: raw}
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' && r != '-' {
			return decimal.Zero, &ParseError{Input: raw}
		}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &ParseError{Input: raw, Err: err}
	}
	return d, nil
}

// Coerce parses raw and returns zero for anything that does not parse.
func Coerce(raw string) decimal.Decimal {
	d, err := ParseDecimal(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// CoerceFloat is Coerce for callers working in float64.
func CoerceFloat(raw string) float64 {
	return Float(Coerce(raw))
}

// Number is a JSON value that may arrive either as a JSON number or as numeric
// text, as backends commonly serialise decimal columns as strings.
type Number struct {
	raw string
	set bool
}

// NewNumber wraps a float value.
func NewNumber(v float64) Number {
	return Number{raw: FormatPlain(v), set: true}
}

// NumberFromString wraps raw text without validating it.
func NumberFromString(raw string) Number {
	return Number{raw: raw, set: true}
}

// IsSet reports whether a value (other than null) was supplied.
func (n Number) IsSet() bool {
	return n.set
}

// Decimal parses the value strictly.
func (n Number) Decimal() (decimal.Decimal, error) {
	return ParseDecimal(n.raw)
}

// Float returns the coerced value; unparseable input yields zero.
func (n Number) Float() float64 {
	return CoerceFloat(n.raw)
}

// UnmarshalJSON accepts numbers, strings and null.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = Number{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Number{raw: s, set: true}
		return nil
	}
	*n = Number{raw: string(data), set: true}
	return nil
}

// MarshalJSON writes a JSON number when the value parses, otherwise the raw text.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.set {
		return []byte("null"), nil
	}
	if d, err := ParseDecimal(n.raw); err == nil {
		return []byte(d.String()), nil
	}
	return json.Marshal(n.raw)
}
