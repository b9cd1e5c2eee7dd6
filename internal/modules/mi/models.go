package mi

// Report shapes. Field names are part of the dashboard contract; the
// frontend keys off them verbatim.

// Split is a confirmed/unconfirmed/total triple. Monetary sums are whole
// currency units, never floats.
type Split struct {
	Confirmed   int64 `json:"confirmed"`
	Unconfirmed int64 `json:"unconfirmed"`
	Total       int64 `json:"total"`
}

// GrandSplit is the totals variant of Split
type GrandSplit struct {
	Confirmed   int64 `json:"confirmed"`
	Unconfirmed int64 `json:"unconfirmed"`
	GrandTotal  int64 `json:"grand_total"`
}

// Breakdown splits one category of wins by value and number
type Breakdown struct {
	Value  Split `json:"value"`
	Number Split `json:"number"`
}

// TotalsBreakdown is the element-wise sum of the HVC and non-HVC breakdowns
type TotalsBreakdown struct {
	Value  GrandSplit `json:"value"`
	Number GrandSplit `json:"number"`
}

// ExportBreakdown covers export value split by HVC membership. NonHVC is
// omitted for scopes that only ever hold campaign wins (HVC groups).
type ExportBreakdown struct {
	HVC    Breakdown       `json:"hvc"`
	NonHVC *Breakdown      `json:"non_hvc,omitempty"`
	Totals TotalsBreakdown `json:"totals"`
}

// WinsBreakdown is the full breakdown shape used in detail and months
// reports
type WinsBreakdown struct {
	Export    ExportBreakdown `json:"export"`
	NonExport Breakdown       `json:"non_export"`
}

// HVCOverview summarises the targets in scope: total value and the sorted
// campaign names
type HVCOverview struct {
	Target    int64    `json:"target"`
	Campaigns []string `json:"campaigns"`
}

// ReportHeader is common to the scope detail, months and campaigns reports
type ReportHeader struct {
	Name             string      `json:"name"`
	AvgTimeToConfirm float64     `json:"avg_time_to_confirm"`
	HVCs             HVCOverview `json:"hvcs"`
}

// DetailReport is the scope detail view: header plus win breakdown
type DetailReport struct {
	ReportHeader
	Wins WinsBreakdown `json:"wins"`
}

// MonthEntry is one month of the cumulative series
type MonthEntry struct {
	Date   string        `json:"date"`
	Totals WinsBreakdown `json:"totals"`
}

// MonthsReport is the month-by-month cumulative view
type MonthsReport struct {
	ReportHeader
	Months []MonthEntry `json:"months"`
}

// Progress is a campaign's progress toward its target
type Progress struct {
	ConfirmedPercent   float64 `json:"confirmed_percent"`
	UnconfirmedPercent float64 `json:"unconfirmed_percent"`
	Status             Status  `json:"status"`
}

// CampaignTotals is the per-campaign breakdown with target progress
type CampaignTotals struct {
	HVC      Breakdown `json:"hvc"`
	Target   int64     `json:"target"`
	Change   string    `json:"change"`
	Progress Progress  `json:"progress"`
}

// CampaignEntry is one ranked campaign
type CampaignEntry struct {
	Campaign   string         `json:"campaign"`
	CampaignID string         `json:"campaign_id"`
	Totals     CampaignTotals `json:"totals"`
}

// CampaignsReport is the ranked campaign view
type CampaignsReport struct {
	ReportHeader
	Campaigns []CampaignEntry `json:"campaigns"`
}

// CountryReport is the country detail view. It carries no
// avg_time_to_confirm; confirmation time is only tracked per team, group
// and region.
type CountryReport struct {
	Name string        `json:"name"`
	HVCs HVCOverview   `json:"hvcs"`
	Wins WinsBreakdown `json:"wins"`
}

// CurrentValues is the confirmed/unconfirmed export value pair
type CurrentValues struct {
	Confirmed   int64 `json:"confirmed"`
	Unconfirmed int64 `json:"unconfirmed"`
}

// PercentPair is a confirmed/unconfirmed percentage pair
type PercentPair struct {
	Confirmed   float64 `json:"confirmed"`
	Unconfirmed float64 `json:"unconfirmed"`
}

// HVCValues is the HVC side of an overview entry
type HVCValues struct {
	Current         CurrentValues `json:"current"`
	Target          int64         `json:"target"`
	TargetPercent   PercentPair   `json:"target_percent"`
	TotalWinPercent *PercentPair  `json:"total_win_percent,omitempty"`
}

// NonHVCValues is the non-HVC side of an overview entry
type NonHVCValues struct {
	TotalWinPercent PercentPair   `json:"total_win_percent"`
	Current         CurrentValues `json:"current"`
}

// OverviewValues groups the value figures of an overview entry
type OverviewValues struct {
	HVC    HVCValues      `json:"hvc"`
	NonHVC *NonHVCValues  `json:"non_hvc,omitempty"`
	Totals *CurrentValues `json:"totals,omitempty"`
}

// OverviewEntry is one node of an overview report. Markets is only set for
// overseas regions (country count); HVCGroups only for sector teams.
type OverviewEntry struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Markets        int             `json:"markets,omitempty"`
	Values         OverviewValues  `json:"values"`
	HVCPerformance StatusCounts    `json:"hvc_performance"`
	HVCGroups      []OverviewEntry `json:"hvc_groups,omitempty"`
}
