package format

import (
	"testing"

	"factsheet/internal/sheet"

	"github.com/stretchr/testify/assert"
)

func TestStyleValue(t *testing.T) {
	gdp := Style{Prefix: "$", Unit: " Bn", Grouped: true}
	assert.Equal(t, "$4,187 Bn", gdp.Value(sheet.Num(4187.4)))
	assert.Equal(t, "$1,000,000 Bn", gdp.Value(sheet.Num(999999.6)))
	assert.Equal(t, NotAvailable, gdp.Value(sheet.Absent()))

	pct := Style{Unit: "%"}
	assert.Equal(t, "6.50%", pct.Value(sheet.Num(6.5)))
	assert.Equal(t, "0.00%", pct.Value(sheet.Num(0)))

	trade := Style{Unit: "B"}
	assert.Equal(t, "-283.00B", trade.Value(sheet.Num(-283)))

	perCapita := Style{Prefix: "$"}
	assert.Equal(t, "-$12.30", perCapita.Value(sheet.Num(-12.3)))
}

func TestStyleValueRoundsBeforeSign(t *testing.T) {
	pct := Style{Unit: "%"}
	assert.Equal(t, "0.00%", pct.Value(sheet.Num(-0.001)))
	assert.Equal(t, "-0.01%", pct.Value(sheet.Num(-0.006)))

	gdp := Style{Prefix: "$", Unit: " Bn", Grouped: true}
	assert.Equal(t, "$0 Bn", gdp.Value(sheet.Num(-0.4)))
	assert.Equal(t, "-$283 Bn", gdp.Value(sheet.Num(-283.2)))
}

func TestStyleEstimate(t *testing.T) {
	gdp := Style{Prefix: "$", Unit: " Bn", Grouped: true}
	assert.Equal(t, "$4,187 Bn 2025 Estimate", gdp.Estimate("2025", sheet.Num(4187), true))
	assert.Equal(t, DataNotAvailable, gdp.Estimate("", sheet.Absent(), false))
	assert.Equal(t, DataNotAvailable, gdp.Estimate("2025", sheet.Absent(), true))

	trade := Style{Unit: "B"}
	assert.Equal(t, "437.00B 2024-25 Estimate", trade.Estimate("2024-25", sheet.Num(437), true))
}

func TestFixedAndGrouped(t *testing.T) {
	assert.Equal(t, "3.30", Fixed(3.3, 2))
	assert.Equal(t, "1450", Fixed(1450, 0))
	assert.Equal(t, "12,346", Grouped(12345.6))
	assert.Equal(t, "0", Grouped(0.2))
}
