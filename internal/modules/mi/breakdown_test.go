package mi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/uktrade/export-wins-mi/internal/modules/wins"
)

func testWin(hvc string, exportValue, nonExportValue int64, confirmed bool) wins.Win {
	return wins.Win{
		ID:             "test-win",
		HVC:            hvc,
		ExportValue:    exportValue,
		NonExportValue: nonExportValue,
		Confirmed:      confirmed,
		Date:           time.Date(2017, 4, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestBreakdownWinsEmpty(t *testing.T) {
	b := BreakdownWins(nil, false)

	assert.Equal(t, Breakdown{}, b)
}

func TestBreakdownWinsSplitsByConfirmation(t *testing.T) {
	winList := []wins.Win{
		testWin("E006", 100000, 0, false),
		testWin("E006", 100000, 0, false),
		testWin("E006", 250000, 0, true),
	}

	b := BreakdownWins(winList, false)

	assert.Equal(t, int64(250000), b.Value.Confirmed)
	assert.Equal(t, int64(200000), b.Value.Unconfirmed)
	assert.Equal(t, int64(450000), b.Value.Total)
	assert.Equal(t, int64(1), b.Number.Confirmed)
	assert.Equal(t, int64(2), b.Number.Unconfirmed)
	assert.Equal(t, int64(3), b.Number.Total)
}

func TestBreakdownWinsNonExportValues(t *testing.T) {
	winList := []wins.Win{
		testWin("E006", 100000, 2300, false),
		testWin("E006", 100000, 2300, true),
	}

	b := BreakdownWins(winList, true)

	assert.Equal(t, int64(2300), b.Value.Confirmed)
	assert.Equal(t, int64(2300), b.Value.Unconfirmed)
	assert.Equal(t, int64(4600), b.Value.Total)
}

func TestBreakdownsEmpty(t *testing.T) {
	b := Breakdowns(nil, true)

	assert.Equal(t, Breakdown{}, b.Export.HVC)
	assert.Equal(t, Breakdown{}, *b.Export.NonHVC)
	assert.Equal(t, TotalsBreakdown{}, b.Export.Totals)
	assert.Equal(t, Breakdown{}, b.NonExport)
}

func TestBreakdownsUnconfirmedScenario(t *testing.T) {
	var winList []wins.Win
	for i := 0; i < 5; i++ {
		winList = append(winList, testWin("E006", 100000, 2300, false))
	}

	b := Breakdowns(winList, true)

	assert.Equal(t, int64(0), b.Export.HVC.Value.Confirmed)
	assert.Equal(t, int64(500000), b.Export.HVC.Value.Unconfirmed)
	assert.Equal(t, int64(500000), b.Export.HVC.Value.Total)
	assert.Equal(t, int64(5), b.Export.HVC.Number.Unconfirmed)

	assert.Equal(t, int64(11500), b.NonExport.Value.Unconfirmed)
	assert.Equal(t, int64(11500), b.NonExport.Value.Total)
	assert.Equal(t, int64(5), b.NonExport.Number.Unconfirmed)

	assert.Equal(t, int64(500000), b.Export.Totals.Value.GrandTotal)
	assert.Equal(t, int64(5), b.Export.Totals.Number.GrandTotal)
}

func TestBreakdownsPartitionsByHVCMembership(t *testing.T) {
	winList := []wins.Win{
		testWin("E006", 100000, 500, true),
		testWin("E083", 200000, 0, false),
		testWin("", 50000, 900, true),
		testWin("", 75000, 0, false),
	}

	b := Breakdowns(winList, true)

	assert.Equal(t, int64(100000), b.Export.HVC.Value.Confirmed)
	assert.Equal(t, int64(200000), b.Export.HVC.Value.Unconfirmed)
	assert.Equal(t, int64(50000), b.Export.NonHVC.Value.Confirmed)
	assert.Equal(t, int64(75000), b.Export.NonHVC.Value.Unconfirmed)

	// Grand totals are the element-wise sum of both categories
	assert.Equal(t, int64(150000), b.Export.Totals.Value.Confirmed)
	assert.Equal(t, int64(275000), b.Export.Totals.Value.Unconfirmed)
	assert.Equal(t, int64(425000), b.Export.Totals.Value.GrandTotal)
	assert.Equal(t, int64(4), b.Export.Totals.Number.GrandTotal)

	// Non-export covers campaign wins only
	assert.Equal(t, int64(500), b.NonExport.Value.Confirmed)
	assert.Equal(t, int64(0), b.NonExport.Value.Unconfirmed)
	assert.Equal(t, int64(2), b.NonExport.Number.Total)
}

func TestBreakdownsWithoutNonHVC(t *testing.T) {
	winList := []wins.Win{
		testWin("E006", 100000, 0, true),
		testWin("", 50000, 0, true),
	}

	b := Breakdowns(winList, false)

	assert.Nil(t, b.Export.NonHVC)
	assert.Equal(t, int64(100000), b.Export.Totals.Value.GrandTotal)
}
