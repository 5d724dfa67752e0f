package shared

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecimal_Lenient(t *testing.T) {
	cases := map[string]string{
		"":        "0",
		"   ":     "0",
		"abc":     "0",
		"1,5":     "0",
		"NaN":     "0",
		"3":       "3",
		" 2.5 ":   "2.5",
		"1.005":   "1",
		"1.015":   "1.02",
		"-4.20":   "-4.2",
		"1e2":     "100",
		"0.12345": "0.12",
	}
	for raw, want := range cases {
		got := ParseDecimal(raw)
		assert.Truef(t, got.Equal(decimal.RequireFromString(want)), "ParseDecimal(%q) = %s, want %s", raw, got, want)
	}
}

func TestParseDecimal_OversizedInputIsMalformed(t *testing.T) {
	for _, raw := range []string{
		"1e10000000",
		"1e1000000",
		"1e-10000000",
		"5e13",
		"0.0000000000001",
		"1234567890123456789012345",
	} {
		assert.Truef(t, ParseDecimal(raw).IsZero(), "ParseDecimal(%q)", raw)
	}

	assert.Equal(t, "200000000000", ParseDecimal("2e11").String())
	assert.Equal(t, "123456789012.5", ParseDecimal("123456789012.5").String())
}

func TestMoney_Fits(t *testing.T) {
	assert.True(t, MustMoney("9999999999.99").Fits())
	assert.True(t, MustMoney("-9999999999.99").Fits())
	assert.False(t, MustMoney("10000000000").Fits())
	assert.False(t, ParseMoney("2e11").Fits())
}

func TestMultiply_IsExact(t *testing.T) {
	qty := decimal.RequireFromString("0.1")
	price := MustMoney("0.2")

	for i := 0; i < 10; i++ {
		got := Multiply(qty, price).Quantize()
		assert.Equal(t, "0.02", got.String())
		assert.True(t, got.Equals(MustMoney("0.02")))
	}
}

func TestSum(t *testing.T) {
	assert.True(t, Sum().IsZero())

	amounts := make([]Money, 10)
	for i := range amounts {
		amounts[i] = Multiply(decimal.RequireFromString("0.1"), MustMoney("0.2"))
	}
	assert.Equal(t, "0.20", Sum(amounts...).Quantize().String())
}

func TestQuantize_RoundsNotTruncates(t *testing.T) {
	assert.Equal(t, "2.68", MustMoney("2.675").Quantize().String())
	assert.Equal(t, "2.68", MustMoney("2.6751").Quantize().String())
	assert.Equal(t, "0.13", MustMoney("0.129").Quantize().String())
}

func TestMoney_SubMayGoNegative(t *testing.T) {
	got := MustMoney("10.00").Sub(MustMoney("12.50"))
	assert.True(t, got.IsNegative())
	assert.Equal(t, "-2.50", got.String())
}

func TestMoney_JSON(t *testing.T) {
	data, err := json.Marshal(MustMoney("7.5"))
	require.NoError(t, err)
	assert.JSONEq(t, `"7.50"`, string(data))

	var m Money
	require.NoError(t, json.Unmarshal([]byte(`"12.34"`), &m))
	assert.True(t, m.Equals(MustMoney("12.34")))

	require.NoError(t, json.Unmarshal([]byte(`3.1`), &m))
	assert.True(t, m.Equals(MustMoney("3.10")))
}
