package mi

import (
	"sort"
	"time"

	"github.com/uktrade/export-wins-mi/internal/modules/hierarchy"
	"github.com/uktrade/export-wins-mi/internal/modules/wins"
	"github.com/uktrade/export-wins-mi/pkg/formulas"
)

// Report builders. Pure composition: callers fetch the scoped win, target
// and notification collections; builders never touch storage, never mutate
// their inputs, and take "now" as a parameter so financial-year math is
// deterministic under test.

// HVCsOverview summarises the targets in scope
func HVCsOverview(targets []hierarchy.Target) HVCOverview {
	overview := HVCOverview{Campaigns: make([]string, 0, len(targets))}
	for _, t := range targets {
		overview.Target += t.Target
		overview.Campaigns = append(overview.Campaigns, t.Name)
	}
	sort.Strings(overview.Campaigns)
	return overview
}

// BuildHeader assembles the name / avg-confirm-time / hvcs header shared
// by the detail, months and campaigns reports
func BuildHeader(name string, targets []hierarchy.Target, notifications []wins.ConfirmedNotification) ReportHeader {
	return ReportHeader{
		Name:             name,
		AvgTimeToConfirm: AverageConfirmTime(notifications),
		HVCs:             HVCsOverview(targets),
	}
}

// BuildDetail builds the scope detail report
func BuildDetail(name string, targets []hierarchy.Target, winList []wins.Win,
	notifications []wins.ConfirmedNotification, includeNonHVC bool) DetailReport {
	return DetailReport{
		ReportHeader: BuildHeader(name, targets, notifications),
		Wins:         Breakdowns(winList, includeNonHVC),
	}
}

// BuildMonths builds the cumulative month-by-month report
func BuildMonths(name string, targets []hierarchy.Target, winList []wins.Win,
	notifications []wins.ConfirmedNotification, now time.Time, includeNonHVC bool) MonthsReport {
	return MonthsReport{
		ReportHeader: BuildHeader(name, targets, notifications),
		Months:       MonthBreakdowns(winList, now, includeNonHVC),
	}
}

// BuildCampaigns builds the ranked campaigns report
func BuildCampaigns(name string, targets []hierarchy.Target, hvcWins []wins.Win,
	notifications []wins.ConfirmedNotification, now time.Time) (CampaignsReport, error) {
	campaigns, err := RankCampaigns(hvcWins, targets, DaysIntoYear(now))
	if err != nil {
		return CampaignsReport{}, err
	}
	return CampaignsReport{
		ReportHeader: BuildHeader(name, targets, notifications),
		Campaigns:    campaigns,
	}, nil
}

// BuildCountry builds the country detail report
func BuildCountry(name string, targets []hierarchy.Target, winList []wins.Win) CountryReport {
	return CountryReport{
		Name: name,
		HVCs: HVCsOverview(targets),
		Wins: Breakdowns(winList, true),
	}
}

// BuildNodeOverview builds the HVC side of an overview entry for any
// hierarchy node: current confirmed/unconfirmed value, total target,
// percentages against target and the performance colour counts.
func BuildNodeOverview(id int64, name string, hvcWins []wins.Win,
	targets []hierarchy.Target, daysIntoYear int) OverviewEntry {
	confirmed, unconfirmed := exportValueSums(hvcWins)

	var totalTarget int64
	for _, t := range targets {
		totalTarget += t.Target
	}

	return OverviewEntry{
		ID:   id,
		Name: name,
		Values: OverviewValues{
			HVC: HVCValues{
				Current: CurrentValues{Confirmed: confirmed, Unconfirmed: unconfirmed},
				Target:  totalTarget,
				TargetPercent: PercentPair{
					Confirmed:   formulas.OrZero(formulas.Percentage(float64(confirmed), float64(totalTarget))),
					Unconfirmed: formulas.OrZero(formulas.Percentage(float64(unconfirmed), float64(totalTarget))),
				},
			},
		},
		HVCPerformance: ColourCounts(hvcWins, targets, daysIntoYear),
	}
}

// AttachNonHVC adds the non-HVC side to an overview entry: the HVC vs
// non-HVC share of total confirmed and unconfirmed value, the non-HVC
// current values, and (for sector teams) the combined totals.
func AttachNonHVC(entry *OverviewEntry, hvcWins, nonHVCWins []wins.Win, withTotals bool) {
	hvcConfirmed, hvcUnconfirmed := exportValueSums(hvcWins)
	nonHVCConfirmed, nonHVCUnconfirmed := exportValueSums(nonHVCWins)

	totalConfirmed := hvcConfirmed + nonHVCConfirmed
	totalUnconfirmed := hvcUnconfirmed + nonHVCUnconfirmed

	var hvcPct, nonHVCPct PercentPair
	if totalConfirmed != 0 {
		hvcPct.Confirmed = formulas.OrZero(formulas.Percentage(float64(hvcConfirmed), float64(totalConfirmed)))
		nonHVCPct.Confirmed = formulas.OrZero(formulas.Percentage(float64(nonHVCConfirmed), float64(totalConfirmed)))
	}
	if totalUnconfirmed != 0 {
		hvcPct.Unconfirmed = formulas.OrZero(formulas.Percentage(float64(hvcUnconfirmed), float64(totalUnconfirmed)))
		nonHVCPct.Unconfirmed = formulas.OrZero(formulas.Percentage(float64(nonHVCUnconfirmed), float64(totalUnconfirmed)))
	}

	entry.Values.HVC.TotalWinPercent = &hvcPct
	entry.Values.NonHVC = &NonHVCValues{
		TotalWinPercent: nonHVCPct,
		Current:         CurrentValues{Confirmed: nonHVCConfirmed, Unconfirmed: nonHVCUnconfirmed},
	}
	if withTotals {
		entry.Values.Totals = &CurrentValues{
			Confirmed:   totalConfirmed,
			Unconfirmed: totalUnconfirmed,
		}
	}
}

func exportValueSums(winList []wins.Win) (confirmed, unconfirmed int64) {
	for _, win := range winList {
		if win.Confirmed {
			confirmed += win.ExportValue
		} else {
			unconfirmed += win.ExportValue
		}
	}
	return confirmed, unconfirmed
}
