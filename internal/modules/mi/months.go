package mi

import (
	"sort"
	"time"

	"github.com/uktrade/export-wins-mi/internal/modules/wins"
	"github.com/uktrade/export-wins-mi/pkg/finyear"
)

// monthBucket is one calendar month's slice of wins, keyed "YYYY-MM"
type monthBucket struct {
	date string
	wins []wins.Win
}

// groupWinsByMonth buckets wins by calendar month and zero-fills every
// month of the financial year from its start up to now, so the series has
// no gaps even when nothing was won.
func groupWinsByMonth(winList []wins.Win, now time.Time) []monthBucket {
	byMonth := make(map[string][]wins.Win)
	for _, win := range winList {
		key := finyear.YearMonth{Year: win.Date.Year(), Month: win.Date.Month()}.String()
		byMonth[key] = append(byMonth[key], win)
	}

	for _, ym := range finyear.MonthSequence(finyear.Start(now), now) {
		key := ym.String()
		if _, ok := byMonth[key]; !ok {
			byMonth[key] = nil
		}
	}

	buckets := make([]monthBucket, 0, len(byMonth))
	for date, monthWins := range byMonth {
		buckets = append(buckets, monthBucket{date: date, wins: monthWins})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].date < buckets[j].date
	})
	return buckets
}

// MonthBreakdowns builds the cumulative month series: each entry's totals
// cover every month up to and including it. A fresh accumulator is
// constructed per call; it never outlives the series.
func MonthBreakdowns(winList []wins.Win, now time.Time, includeNonHVC bool) []MonthEntry {
	acc := NewAccumulator()

	var entries []MonthEntry
	for _, bucket := range groupWinsByMonth(winList, now) {
		entries = append(entries, MonthEntry{
			Date:   bucket.date,
			Totals: acc.Add(bucket.wins, includeNonHVC),
		})
	}
	return entries
}
