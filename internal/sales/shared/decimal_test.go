package shared

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecimal_AcceptsEditingInput(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"", "0"},
		{"   ", "0"},
		{"100", "100"},
		{" 1,234.50 ", "1234.5"},
		{"12.", "12"},
		{".5", "0.5"},
		{"-.25", "-0.25"},
		{"+7", "7"},
		{"1,000,000,000,000", "1000000000000"},
	}
	for _, tc := range cases {
		d, err := ParseDecimal(tc.in)
		require.NoError(t, err, "ParseDecimal(%q)", tc.in)
		assert.Equal(t, tc.expected, d.String(), "ParseDecimal(%q)", tc.in)
	}
}

func TestParseDecimal_RejectsGarbage(t *testing.T) {
	for _, in := range []string{"abc", "12abc", "1-2", "-", ".", "NaN", "Inf", "฿100", "1e3", "2E-2"} {
		_, err := ParseDecimal(in)
		require.Error(t, err, "ParseDecimal(%q)", in)
		assert.True(t, errors.Is(err, ErrInvalidNumber), "expected ErrInvalidNumber for %q", in)

		var perr *ParseError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, in, perr.Input)
	}
}

func TestParseDecimal_RejectsHugeMagnitudes(t *testing.T) {
	long := "1" + strings.Repeat("0", MaxNumberLength)
	for _, in := range []string{"1e20000000", "1e-20000000", "-1E400", long} {
		start := time.Now()
		_, err := ParseDecimal(in)
		require.ErrorIs(t, err, ErrInvalidNumber, "ParseDecimal(%q)", in)
		assert.Equal(t, 0.0, CoerceFloat(in))
		assert.Less(t, time.Since(start), 100*time.Millisecond, "ParseDecimal(%q)", in)
	}

	var n Number
	require.NoError(t, json.Unmarshal([]byte(`1e20000000`), &n))
	_, err := n.Decimal()
	assert.ErrorIs(t, err, ErrInvalidNumber)
}

func TestCoerceFallsBackToZero(t *testing.T) {
	assert.Equal(t, 0.0, CoerceFloat("ten"))
	assert.Equal(t, 10.5, CoerceFloat("10.5"))
	assert.True(t, Coerce("oops").IsZero())
}

func TestNumberUnmarshalsNumbersAndStrings(t *testing.T) {
	var payload struct {
		A Number `json:"a"`
		B Number `json:"b"`
		C Number `json:"c"`
		D Number `json:"d"`
		E Number `json:"e"`
	}
	err := json.Unmarshal([]byte(`{"a": 12.5, "b": "1,000", "c": null, "d": "x1", "e": true}`), &payload)
	require.NoError(t, err)

	assert.Equal(t, 12.5, payload.A.Float())
	assert.Equal(t, 1000.0, payload.B.Float())
	assert.False(t, payload.C.IsSet())
	assert.Equal(t, 0.0, payload.C.Float())
	assert.Equal(t, 0.0, payload.D.Float())
	_, err = payload.D.Decimal()
	assert.ErrorIs(t, err, ErrInvalidNumber)
	assert.Equal(t, 0.0, payload.E.Float())
}

func TestNumberMarshalJSON(t *testing.T) {
	out, err := json.Marshal(map[string]Number{
		"ok":    NumberFromString("1,250.00"),
		"bad":   NumberFromString("n/a"),
		"empty": {},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok": 1250, "bad": "n/a", "empty": null}`, string(out))
}

func TestRoundingHelpers(t *testing.T) {
	assert.Equal(t, "1.01", Round2(decimal.RequireFromString("1.005")).String())
	assert.Equal(t, "-1.01", Round2(decimal.RequireFromString("-1.005")).String())
	assert.Equal(t, "100", ClampPercent(decimal.NewFromInt(150)).String())
	assert.Equal(t, "0", ClampPercent(decimal.NewFromInt(-5)).String())
	assert.Equal(t, "0", Clamp(decimal.NewFromInt(5), decimal.Zero, decimal.NewFromInt(-1)).String())
	assert.Equal(t, "126", PercentOf(decimal.NewFromInt(1800), decimal.NewFromInt(7)).String())
	assert.Equal(t, "33.33", RatioPercent(decimal.NewFromInt(1), decimal.NewFromInt(3)).String())
	assert.True(t, RatioPercent(decimal.NewFromInt(1), decimal.Zero).IsZero())
}

func TestNonNegative(t *testing.T) {
	assert.True(t, NonNegative(-3).IsZero())
	assert.Equal(t, "0.1", NonNegative(0.1).String())
	assert.Equal(t, "200", FormatPlain(200))
	assert.Equal(t, "12.5", FormatPlain(12.5))
}
