package marketdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSymbol(t *testing.T) {
	assert.Equal(t, "AAPL", NormalizeSymbol(" aapl "))
	assert.Equal(t, "BRK-B", NormalizeSymbol("brk-b"))
	assert.Equal(t, "", NormalizeSymbol("   "))
}

func TestValidateSymbol(t *testing.T) {
	assert.NoError(t, ValidateSymbol("AAPL"))
	assert.NoError(t, ValidateSymbol("brk-b"))
	assert.Error(t, ValidateSymbol(""))
	assert.Error(t, ValidateSymbol("    "))
	assert.Error(t, ValidateSymbol("ABCDEFGHIJK"))
}

func TestSeriesValidate(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	s := &Series{Symbol: "AAPL", Bars: genBars(5, start)}
	require.NoError(t, s.Validate())

	empty := &Series{Symbol: "AAPL"}
	assert.Error(t, empty.Validate())

	dup := &Series{Symbol: "AAPL", Bars: genBars(5, start)}
	dup.Bars[3].Date = dup.Bars[2].Date
	assert.Error(t, dup.Validate())

	backwards := &Series{Symbol: "AAPL", Bars: genBars(5, start)}
	backwards.Bars[4].Date = start.AddDate(0, 0, -1)
	assert.Error(t, backwards.Validate())
}

func TestSeriesSliceInclusive(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := &Series{Symbol: "AAPL", Bars: genBars(10, start)}

	got := s.Slice(start.AddDate(0, 0, 2), start.AddDate(0, 0, 5))
	require.Len(t, got, 4)
	assert.Equal(t, start.AddDate(0, 0, 2), got[0].Date)
	assert.Equal(t, start.AddDate(0, 0, 5), got[3].Date)

	assert.Empty(t, s.Slice(start.AddDate(0, 1, 0), start.AddDate(0, 2, 0)))
}

func TestSeriesClosesAndDates(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := &Series{Symbol: "AAPL", Bars: genBars(3, start)}

	assert.Equal(t, []float64{100, 101, 102}, s.Closes())
	assert.Equal(t, []time.Time{start, start.AddDate(0, 0, 1), start.AddDate(0, 0, 2)}, s.Dates())
}
