package wins

import "time"

// Notification types. Customers may receive several reminders per win;
// only the earliest counts toward confirmation-time measurement.
const (
	NotificationTypeOfficer  = "o"
	NotificationTypeCustomer = "c"
)

// Win is a single export deal record as the aggregation engine sees it.
// HVC is the campaign code; the ingestion layer collapses NULL and empty
// string to "", so "" is the only representation of "non-HVC".
type Win struct {
	ID             string    `json:"id"`
	HVC            string    `json:"hvc"`
	Sector         int64     `json:"sector"`
	Country        string    `json:"country"`
	Date           time.Time `json:"date"`
	ExportValue    int64     `json:"export_value"`
	NonExportValue int64     `json:"non_export_value"`
	Confirmed      bool      `json:"confirmed"`
	Complete       bool      `json:"complete"`
	Created        time.Time `json:"created"`
}

// IsHVC reports whether the win belongs to a high-value campaign
func (w Win) IsHVC() bool {
	return w.HVC != ""
}

// Notification is a timestamped record of an outbound communication about
// a win
type Notification struct {
	ID      int64     `json:"id"`
	WinID   string    `json:"win_id"`
	Type    string    `json:"type"`
	Created time.Time `json:"created"`
}

// ConfirmedNotification pairs a customer notification with the confirmation
// instant of its win. Rows are ordered by (win_id, created) so the first row
// per win is the earliest notification.
type ConfirmedNotification struct {
	WinID       string
	NotifiedAt  time.Time
	ConfirmedAt time.Time
}

// NotificationFilter selects confirmed customer notifications by scope.
// Empty fields mean "no restriction".
type NotificationFilter struct {
	Campaigns []string
	Sectors   []int64
	Countries []string
}

// NonHVCAggregate is one country/sector bucket of non-HVC win value
type NonHVCAggregate struct {
	Country    string
	Sector     int64
	TotalValue int64
	TotalWins  int64
}
