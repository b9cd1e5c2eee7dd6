package mi

import (
	"time"

	"github.com/uktrade/export-wins-mi/internal/modules/hierarchy"
	"github.com/uktrade/export-wins-mi/internal/modules/wins"
	"github.com/uktrade/export-wins-mi/pkg/finyear"
)

// Status is an HVC performance tier
type Status string

const (
	StatusZero  Status = "zero"
	StatusRed   Status = "red"
	StatusAmber Status = "amber"
	StatusGreen Status = "green"
)

// Run-rate thresholds: above greenThreshold is green, below redThreshold
// is red, the boundaries themselves are amber.
const (
	greenThreshold = 45
	redThreshold   = 25
	yearDays       = 365
)

// DaysIntoYear returns how many days of the financial year containing now
// have elapsed, capped at 365 and clamped to at least 1 so the prorated
// target never divides by zero on 1 April. For a past financial year use
// the full 365.
func DaysIntoYear(now time.Time) int {
	days := int(now.Sub(finyear.Start(now)).Hours() / 24)
	if days > yearDays {
		return yearDays
	}
	if days < 1 {
		return 1
	}
	return days
}

// StatusColour classifies a campaign's performance. The run-rate is the
// current confirmed value as a percentage of the target prorated to
// daysIntoYear.
func StatusColour(target, currentValue int64, daysIntoYear int) Status {
	if target == 0 {
		return StatusZero
	}

	proratedTarget := float64(target) / yearDays * float64(daysIntoYear)
	runRate := float64(currentValue) * 100 / proratedTarget

	switch {
	case runRate > greenThreshold:
		return StatusGreen
	case runRate < redThreshold:
		return StatusRed
	default:
		return StatusAmber
	}
}

// StatusCounts tallies campaigns per status tier
type StatusCounts struct {
	Red   int `json:"red"`
	Amber int `json:"amber"`
	Green int `json:"green"`
	Zero  int `json:"zero"`
}

// ColourCounts classifies every target against its confirmed HVC win value
func ColourCounts(hvcWins []wins.Win, targets []hierarchy.Target, daysIntoYear int) StatusCounts {
	var counts StatusCounts
	for _, target := range targets {
		var currentValue int64
		for _, win := range hvcWins {
			if win.HVC == target.CampaignID && win.Confirmed {
				currentValue += win.ExportValue
			}
		}

		switch StatusColour(target.Target, currentValue, daysIntoYear) {
		case StatusRed:
			counts.Red++
		case StatusAmber:
			counts.Amber++
		case StatusGreen:
			counts.Green++
		case StatusZero:
			counts.Zero++
		}
	}
	return counts
}
