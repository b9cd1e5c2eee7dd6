package mi

import (
	"fmt"
	"sort"

	"github.com/uktrade/export-wins-mi/internal/modules/hierarchy"
	"github.com/uktrade/export-wins-mi/internal/modules/wins"
	"github.com/uktrade/export-wins-mi/pkg/formulas"
)

// ProgressBreakdown builds a campaign's totals: its HVC breakdown plus
// progress toward target. Percentages are confirmed (or unconfirmed) value
// against the full-year target, 0 when the target is zero.
func ProgressBreakdown(campaignWins []wins.Win, target int64, daysIntoYear int) CampaignTotals {
	breakdown := BreakdownWins(campaignWins, false)

	confirmedPct := formulas.Percentage(float64(breakdown.Value.Confirmed), float64(target))
	unconfirmedPct := formulas.Percentage(float64(breakdown.Value.Unconfirmed), float64(target))

	return CampaignTotals{
		HVC:    breakdown,
		Target: target,
		Change: "up",
		Progress: Progress{
			ConfirmedPercent:   formulas.OrZero(confirmedPct),
			UnconfirmedPercent: formulas.OrZero(unconfirmedPct),
			Status:             StatusColour(target, breakdown.Value.Confirmed, daysIntoYear),
		},
	}
}

// RankCampaigns groups HVC wins by campaign, attaches progress against
// each campaign's target and sorts the result for presentation.
//
// Every target in scope gets an entry even when no win matched it, so
// brand-new campaigns appear with zeros. A win whose campaign code has no
// target is a referential-integrity breach and surfaces as an error.
//
// Sort order is descending by (confirmed_percent, unconfirmed_percent,
// target): higher confirmed progress first, ties broken by unconfirmed
// progress, then by larger target.
func RankCampaigns(hvcWins []wins.Win, targets []hierarchy.Target, daysIntoYear int) ([]CampaignEntry, error) {
	targetsByCampaign := make(map[string]hierarchy.Target, len(targets))
	for _, t := range targets {
		targetsByCampaign[t.CampaignID] = t
	}

	winsByCampaign := make(map[string][]wins.Win)
	for _, win := range hvcWins {
		if _, ok := targetsByCampaign[win.HVC]; !ok {
			return nil, fmt.Errorf("campaign %s not found", win.HVC)
		}
		winsByCampaign[win.HVC] = append(winsByCampaign[win.HVC], win)
	}

	entries := make([]CampaignEntry, 0, len(targets))
	for _, target := range targets {
		entries = append(entries, CampaignEntry{
			Campaign:   target.CampaignName(),
			CampaignID: target.CampaignID,
			Totals:     ProgressBreakdown(winsByCampaign[target.CampaignID], target.Target, daysIntoYear),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].Totals, entries[j].Totals
		if a.Progress.ConfirmedPercent != b.Progress.ConfirmedPercent {
			return a.Progress.ConfirmedPercent > b.Progress.ConfirmedPercent
		}
		if a.Progress.UnconfirmedPercent != b.Progress.UnconfirmedPercent {
			return a.Progress.UnconfirmedPercent > b.Progress.UnconfirmedPercent
		}
		return a.Target > b.Target
	})

	return entries, nil
}
