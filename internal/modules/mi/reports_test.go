package mi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uktrade/export-wins-mi/internal/modules/hierarchy"
	"github.com/uktrade/export-wins-mi/internal/modules/wins"
)

func datedWin(hvc string, exportValue int64, confirmed bool, date time.Time) wins.Win {
	win := testWin(hvc, exportValue, 0, confirmed)
	win.Date = date
	return win
}

func TestMonthBreakdownsZeroFills(t *testing.T) {
	now := time.Date(2017, 8, 10, 0, 0, 0, 0, time.UTC)

	months := MonthBreakdowns(nil, now, true)

	require.Len(t, months, 5)
	assert.Equal(t, "2017-04", months[0].Date)
	assert.Equal(t, "2017-08", months[4].Date)
	for _, m := range months {
		assert.Equal(t, int64(0), m.Totals.Export.Totals.Value.GrandTotal)
	}
}

func TestMonthBreakdownsCumulative(t *testing.T) {
	now := time.Date(2017, 6, 15, 0, 0, 0, 0, time.UTC)
	winList := []wins.Win{
		datedWin("E006", 100000, true, time.Date(2017, 4, 5, 0, 0, 0, 0, time.UTC)),
		datedWin("E006", 50000, true, time.Date(2017, 6, 1, 0, 0, 0, 0, time.UTC)),
	}

	months := MonthBreakdowns(winList, now, true)

	require.Len(t, months, 3)
	assert.Equal(t, int64(100000), months[0].Totals.Export.HVC.Value.Confirmed)
	// May has no wins but carries April forward
	assert.Equal(t, int64(100000), months[1].Totals.Export.HVC.Value.Confirmed)
	assert.Equal(t, int64(150000), months[2].Totals.Export.HVC.Value.Confirmed)
}

func TestHVCsOverview(t *testing.T) {
	targets := []hierarchy.Target{
		{CampaignID: "E083", Name: "HVC: E083", Target: 5000000},
		{CampaignID: "E006", Name: "HVC: E006", Target: 10000000},
	}

	overview := HVCsOverview(targets)

	assert.Equal(t, int64(15000000), overview.Target)
	assert.Equal(t, []string{"HVC: E006", "HVC: E083"}, overview.Campaigns)
}

func TestBuildDetail(t *testing.T) {
	targets := []hierarchy.Target{
		{CampaignID: "E006", Name: "HVC: E006", Target: 10000000},
	}
	winList := []wins.Win{
		testWin("E006", 100000, 0, true),
		testWin("", 50000, 0, false),
	}
	notifications := []wins.ConfirmedNotification{notification("win-1", 0, 3)}

	report := BuildDetail("Financial & Professional Services", targets, winList, notifications, true)

	assert.Equal(t, "Financial & Professional Services", report.Name)
	assert.Equal(t, 3.0, report.AvgTimeToConfirm)
	assert.Equal(t, int64(10000000), report.HVCs.Target)
	assert.Equal(t, int64(100000), report.Wins.Export.HVC.Value.Confirmed)
	assert.Equal(t, int64(50000), report.Wins.Export.NonHVC.Value.Unconfirmed)
}

func TestBuildCampaignsPropagatesUnknownCampaign(t *testing.T) {
	targets := []hierarchy.Target{
		{CampaignID: "E006", Name: "HVC: E006", Target: 10000000},
	}
	hvcWins := []wins.Win{testWin("E999", 100000, 0, true)}
	now := time.Date(2017, 8, 10, 0, 0, 0, 0, time.UTC)

	_, err := BuildCampaigns("Agritech", targets, hvcWins, nil, now)

	assert.Error(t, err)
}

func TestBuildNodeOverview(t *testing.T) {
	targets := []hierarchy.Target{
		{CampaignID: "E006", Name: "HVC: E006", Target: 10000000},
	}
	hvcWins := []wins.Win{
		testWin("E006", 5000000, 0, true),
		testWin("E006", 2000000, 0, false),
	}

	entry := BuildNodeOverview(3, "Agritech", hvcWins, targets, 365)

	assert.Equal(t, int64(3), entry.ID)
	assert.Equal(t, int64(5000000), entry.Values.HVC.Current.Confirmed)
	assert.Equal(t, int64(2000000), entry.Values.HVC.Current.Unconfirmed)
	assert.Equal(t, int64(10000000), entry.Values.HVC.Target)
	assert.Equal(t, 50.0, entry.Values.HVC.TargetPercent.Confirmed)
	assert.Equal(t, 20.0, entry.Values.HVC.TargetPercent.Unconfirmed)
	assert.Equal(t, 1, entry.HVCPerformance.Green)
	assert.Nil(t, entry.Values.NonHVC)
	assert.Nil(t, entry.Values.Totals)
}

func TestAttachNonHVC(t *testing.T) {
	hvcWins := []wins.Win{testWin("E006", 3000000, 0, true)}
	nonHVCWins := []wins.Win{
		testWin("", 1000000, 0, true),
		testWin("", 500000, 0, false),
	}

	entry := BuildNodeOverview(1, "Agritech", hvcWins, nil, 100)
	AttachNonHVC(&entry, hvcWins, nonHVCWins, true)

	require.NotNil(t, entry.Values.HVC.TotalWinPercent)
	assert.Equal(t, 75.0, entry.Values.HVC.TotalWinPercent.Confirmed)
	require.NotNil(t, entry.Values.NonHVC)
	assert.Equal(t, 25.0, entry.Values.NonHVC.TotalWinPercent.Confirmed)
	assert.Equal(t, 100.0, entry.Values.NonHVC.TotalWinPercent.Unconfirmed)
	assert.Equal(t, int64(1000000), entry.Values.NonHVC.Current.Confirmed)
	require.NotNil(t, entry.Values.Totals)
	assert.Equal(t, int64(4000000), entry.Values.Totals.Confirmed)
	assert.Equal(t, int64(500000), entry.Values.Totals.Unconfirmed)
}

func TestAttachNonHVCZeroTotals(t *testing.T) {
	entry := BuildNodeOverview(1, "Agritech", nil, nil, 100)
	AttachNonHVC(&entry, nil, nil, false)

	// No wins at all: every share is zero rather than a division error
	assert.Equal(t, PercentPair{}, *entry.Values.HVC.TotalWinPercent)
	assert.Equal(t, PercentPair{}, entry.Values.NonHVC.TotalWinPercent)
	assert.Nil(t, entry.Values.Totals)
}
