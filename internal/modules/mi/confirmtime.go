package mi

import (
	"github.com/uktrade/export-wins-mi/internal/modules/wins"
	"github.com/uktrade/export-wins-mi/pkg/formulas"
)

// AverageConfirmTime computes the average whole days between a win's
// earliest customer notification and its confirmation, across all wins in
// the input. Notifications must arrive ordered by (win_id, created)
// ascending; reminders after the first notification of a win are ignored.
//
// Returns 0 for empty input: dashboards render "0 days", not an error.
// This deliberately differs from formulas.Average, which reports nil for
// an empty series.
func AverageConfirmTime(notifications []wins.ConfirmedNotification) float64 {
	var delays []float64
	seen := make(map[string]bool)

	for _, n := range notifications {
		if seen[n.WinID] {
			continue
		}
		seen[n.WinID] = true
		days := int(n.ConfirmedAt.Sub(n.NotifiedAt).Hours() / 24)
		delays = append(delays, float64(days))
	}

	return formulas.OrZero(formulas.Average(delays))
}
