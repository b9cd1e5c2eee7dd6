package mi

import (
	"github.com/uktrade/export-wins-mi/internal/modules/wins"
)

// BreakdownWins splits a set of wins into confirmed and unconfirmed value
// and number sums. When nonExport is set, the non-export value of each win
// is summed instead of the export value.
func BreakdownWins(winList []wins.Win, nonExport bool) Breakdown {
	var b Breakdown
	for _, win := range winList {
		value := win.ExportValue
		if nonExport {
			value = win.NonExportValue
		}

		if win.Confirmed {
			b.Value.Confirmed += value
			b.Number.Confirmed++
		} else {
			b.Value.Unconfirmed += value
			b.Number.Unconfirmed++
		}
	}
	b.Value.Total = b.Value.Confirmed + b.Value.Unconfirmed
	b.Number.Total = b.Number.Confirmed + b.Number.Unconfirmed
	return b
}

// Breakdowns partitions wins into HVC and non-HVC categories and computes
// the full export/non-export breakdown shape.
//
// The non-export breakdown covers HVC wins only, regardless of
// includeNonHVC. Non-export value is the value of a win that is not
// technically an export (e.g. lobbying a government to reduce corporate
// taxes benefits the UK but exports nothing); it is tracked against
// campaigns, not against non-HVC wins, which are ordinary export wins that
// fall outside every campaign.
func Breakdowns(winList []wins.Win, includeNonHVC bool) WinsBreakdown {
	var hvcWins []wins.Win
	for _, win := range winList {
		if win.IsHVC() {
			hvcWins = append(hvcWins, win)
		}
	}

	result := WinsBreakdown{
		Export: ExportBreakdown{
			HVC: BreakdownWins(hvcWins, false),
		},
		NonExport: BreakdownWins(hvcWins, true),
	}

	totals := TotalsBreakdown{
		Value: GrandSplit{
			Confirmed:   result.Export.HVC.Value.Confirmed,
			Unconfirmed: result.Export.HVC.Value.Unconfirmed,
		},
		Number: GrandSplit{
			Confirmed:   result.Export.HVC.Number.Confirmed,
			Unconfirmed: result.Export.HVC.Number.Unconfirmed,
		},
	}

	if includeNonHVC {
		var nonHVCWins []wins.Win
		for _, win := range winList {
			if !win.IsHVC() {
				nonHVCWins = append(nonHVCWins, win)
			}
		}
		nonHVC := BreakdownWins(nonHVCWins, false)
		result.Export.NonHVC = &nonHVC

		totals.Value.Confirmed += nonHVC.Value.Confirmed
		totals.Value.Unconfirmed += nonHVC.Value.Unconfirmed
		totals.Number.Confirmed += nonHVC.Number.Confirmed
		totals.Number.Unconfirmed += nonHVC.Number.Unconfirmed
	}

	totals.Value.GrandTotal = totals.Value.Confirmed + totals.Value.Unconfirmed
	totals.Number.GrandTotal = totals.Number.Confirmed + totals.Number.Unconfirmed
	result.Export.Totals = totals

	return result
}
