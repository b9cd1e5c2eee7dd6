package mi

import (
	"github.com/uktrade/export-wins-mi/internal/modules/wins"
)

// Accumulator maintains running totals across successive month slices so
// each month of a series shows year-to-date cumulative figures.
//
// One accumulator belongs to exactly one report build: construct it
// locally, feed it month slices in chronological order (including empty
// slices for months with no wins) and discard it. Sharing an accumulator
// across reports corrupts the running totals.
//
// Unlike the plain Breakdowns, the cumulative non-export figures fold in
// the non-export value of every win, HVC and non-HVC alike.
type Accumulator struct {
	hvcConfirmedNumber    int64
	hvcConfirmedValue     int64
	hvcUnconfirmedNumber  int64
	hvcUnconfirmedValue   int64
	nonHVCConfirmedNumber int64
	nonHVCConfirmedValue  int64
	nonHVCUnconfNumber    int64
	nonHVCUnconfValue     int64
	nonExpConfirmedNumber int64
	nonExpConfirmedValue  int64
	nonExpUnconfNumber    int64
	nonExpUnconfValue     int64
}

// NewAccumulator creates an accumulator with all counters at zero
func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// Add folds one month's wins into the running totals and returns the
// breakdown shape computed from the cumulative counters, so month N's
// totals include months 1..N.
func (a *Accumulator) Add(monthWins []wins.Win, includeNonHVC bool) WinsBreakdown {
	for _, win := range monthWins {
		if win.IsHVC() {
			if win.Confirmed {
				a.hvcConfirmedNumber++
				a.hvcConfirmedValue += win.ExportValue
			} else {
				a.hvcUnconfirmedNumber++
				a.hvcUnconfirmedValue += win.ExportValue
			}
		} else {
			if win.Confirmed {
				a.nonHVCConfirmedNumber++
				a.nonHVCConfirmedValue += win.ExportValue
			} else {
				a.nonHVCUnconfNumber++
				a.nonHVCUnconfValue += win.ExportValue
			}
		}

		if win.Confirmed {
			a.nonExpConfirmedNumber++
			a.nonExpConfirmedValue += win.NonExportValue
		} else {
			a.nonExpUnconfNumber++
			a.nonExpUnconfValue += win.NonExportValue
		}
	}

	totalHVCValue := a.hvcConfirmedValue + a.hvcUnconfirmedValue
	totalHVCNumber := a.hvcConfirmedNumber + a.hvcUnconfirmedNumber
	totalNonHVCValue := a.nonHVCConfirmedValue + a.nonHVCUnconfValue
	totalNonHVCNumber := a.nonHVCConfirmedNumber + a.nonHVCUnconfNumber

	result := WinsBreakdown{
		Export: ExportBreakdown{
			HVC: Breakdown{
				Value: Split{
					Confirmed:   a.hvcConfirmedValue,
					Unconfirmed: a.hvcUnconfirmedValue,
					Total:       totalHVCValue,
				},
				Number: Split{
					Confirmed:   a.hvcConfirmedNumber,
					Unconfirmed: a.hvcUnconfirmedNumber,
					Total:       totalHVCNumber,
				},
			},
		},
		NonExport: Breakdown{
			Value: Split{
				Confirmed:   a.nonExpConfirmedValue,
				Unconfirmed: a.nonExpUnconfValue,
				Total:       a.nonExpConfirmedValue + a.nonExpUnconfValue,
			},
			Number: Split{
				Confirmed:   a.nonExpConfirmedNumber,
				Unconfirmed: a.nonExpUnconfNumber,
				Total:       a.nonExpConfirmedNumber + a.nonExpUnconfNumber,
			},
		},
	}

	totals := TotalsBreakdown{
		Value: GrandSplit{
			Confirmed:   a.hvcConfirmedValue,
			Unconfirmed: a.hvcUnconfirmedValue,
			GrandTotal:  totalHVCValue,
		},
		Number: GrandSplit{
			Confirmed:   a.hvcConfirmedNumber,
			Unconfirmed: a.hvcUnconfirmedNumber,
			GrandTotal:  totalHVCNumber,
		},
	}

	if includeNonHVC {
		result.Export.NonHVC = &Breakdown{
			Value: Split{
				Confirmed:   a.nonHVCConfirmedValue,
				Unconfirmed: a.nonHVCUnconfValue,
				Total:       totalNonHVCValue,
			},
			Number: Split{
				Confirmed:   a.nonHVCConfirmedNumber,
				Unconfirmed: a.nonHVCUnconfNumber,
				Total:       totalNonHVCNumber,
			},
		}

		totals.Value.Confirmed += a.nonHVCConfirmedValue
		totals.Value.Unconfirmed += a.nonHVCUnconfValue
		totals.Value.GrandTotal += totalNonHVCValue
		totals.Number.Confirmed += a.nonHVCConfirmedNumber
		totals.Number.Unconfirmed += a.nonHVCUnconfNumber
		totals.Number.GrandTotal += totalNonHVCNumber
	}

	result.Export.Totals = totals
	return result
}
