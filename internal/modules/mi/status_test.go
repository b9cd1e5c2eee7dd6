package mi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/uktrade/export-wins-mi/internal/modules/hierarchy"
	"github.com/uktrade/export-wins-mi/internal/modules/wins"
)

func TestDaysIntoYear(t *testing.T) {
	// 1 April clamps to 1 so prorating never divides by zero
	assert.Equal(t, 1, DaysIntoYear(time.Date(2017, 4, 1, 9, 0, 0, 0, time.UTC)))
	assert.Equal(t, 30, DaysIntoYear(time.Date(2017, 5, 1, 0, 0, 0, 0, time.UTC)))
	// 31 March caps at a full year
	assert.Equal(t, 364, DaysIntoYear(time.Date(2018, 3, 31, 0, 0, 0, 0, time.UTC)))
}

func TestStatusColourZeroTarget(t *testing.T) {
	assert.Equal(t, StatusZero, StatusColour(0, 5000000, 100))
}

func TestStatusColourFullYear(t *testing.T) {
	// At day 365 the prorated target is the full target, so the run-rate
	// is plain percent-of-target
	assert.Equal(t, StatusGreen, StatusColour(10000000, 10000000, 365))
	assert.Equal(t, StatusGreen, StatusColour(10000000, 4600000, 365))
	assert.Equal(t, StatusAmber, StatusColour(10000000, 4500000, 365))
	assert.Equal(t, StatusAmber, StatusColour(10000000, 2500000, 365))
	assert.Equal(t, StatusRed, StatusColour(10000000, 2400000, 365))
	assert.Equal(t, StatusRed, StatusColour(10000000, 0, 365))
}

func TestStatusColourProrates(t *testing.T) {
	// Half way through the year only half the target counts: 2.5M against
	// a prorated 5M is a 50% run-rate
	halfYear := 182
	assert.Equal(t, StatusGreen, StatusColour(10000000, 2500000, halfYear))
	assert.Equal(t, StatusRed, StatusColour(10000000, 1000000, halfYear))
}

func TestColourCounts(t *testing.T) {
	targets := []hierarchy.Target{
		{CampaignID: "E006", Target: 10000000},
		{CampaignID: "E083", Target: 10000000},
		{CampaignID: "E100", Target: 0},
		{CampaignID: "E200", Target: 10000000},
	}
	hvcWins := []wins.Win{
		testWin("E006", 10000000, 0, true),
		testWin("E083", 3000000, 0, true),
		// Unconfirmed value never counts toward the run-rate
		testWin("E200", 10000000, 0, false),
	}

	counts := ColourCounts(hvcWins, targets, 365)

	assert.Equal(t, StatusCounts{Red: 1, Amber: 1, Green: 1, Zero: 1}, counts)
}
