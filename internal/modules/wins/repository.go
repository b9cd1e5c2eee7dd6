package wins

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	dateFormat = "2006-01-02"
)

// Repository handles win, notification and customer-response storage.
// Soft-deleted wins (is_active = 0) are excluded from every read.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new wins repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "wins").Logger(),
	}
}

// Create stores a new win. An ID is generated when none is supplied.
// NULL and empty HVC codes are both stored as '' so the aggregation
// engine only ever sees one "non-HVC" representation.
func (r *Repository) Create(win *Win) error {
	if win.ID == "" {
		win.ID = uuid.NewString()
	}
	if win.Created.IsZero() {
		win.Created = time.Now().UTC()
	}

	_, err := r.db.Exec(`
		INSERT INTO wins (id, hvc, sector, country, date, export_value, non_export_value, is_active, complete, created)
		VALUES (?, ?, ?, ?, ?, ?, ?, 1, ?, ?)
	`,
		win.ID,
		win.HVC,
		win.Sector,
		win.Country,
		win.Date.Format(dateFormat),
		win.ExportValue,
		win.NonExportValue,
		boolToInt(win.Complete),
		win.Created.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert win: %w", err)
	}

	r.log.Debug().Str("win_id", win.ID).Str("hvc", win.HVC).Msg("Win created")
	return nil
}

// AddNotification records an outbound communication about a win
func (r *Repository) AddNotification(winID, notificationType string, created time.Time) error {
	_, err := r.db.Exec(`
		INSERT INTO notifications (win_id, type, created)
		VALUES (?, ?, ?)
	`, winID, notificationType, created.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

// RecordCustomerResponse stores the customer's response for a win.
// agree is tri-state: nil means the customer responded without answering
// the agreement question.
func (r *Repository) RecordCustomerResponse(winID string, agree *bool, created time.Time) error {
	var agreeVal interface{}
	if agree != nil {
		agreeVal = boolToInt(*agree)
	}

	_, err := r.db.Exec(`
		INSERT INTO customer_responses (win_id, agree_with_win, created)
		VALUES (?, ?, ?)
		ON CONFLICT(win_id) DO UPDATE SET agree_with_win = excluded.agree_with_win, created = excluded.created
	`, winID, agreeVal, created.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to record customer response: %w", err)
	}
	return nil
}

// SoftDelete marks a win inactive so it disappears from all aggregation
func (r *Repository) SoftDelete(winID string) error {
	res, err := r.db.Exec(`UPDATE wins SET is_active = 0 WHERE id = ?`, winID)
	if err != nil {
		return fmt.Errorf("failed to soft-delete win: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("win %s not found", winID)
	}
	return nil
}

// winSelect joins the customer response so the confirmed flag comes back
// in one scan: confirmed iff a response exists and agree_with_win is 1.
const winSelect = `
	SELECT w.id, COALESCE(w.hvc, ''), w.sector, w.country, w.date,
	       w.export_value, w.non_export_value,
	       COALESCE(r.agree_with_win, 0), w.complete, w.created
	FROM wins w
	LEFT JOIN customer_responses r ON r.win_id = w.id
	WHERE w.is_active = 1 AND w.date BETWEEN ? AND ?`

// InFinancialYear returns every active win dated within [start, end]
func (r *Repository) InFinancialYear(start, end time.Time) ([]Win, error) {
	return r.queryWins(winSelect, start.Format(dateFormat), end.Format(dateFormat))
}

// ByCampaigns returns active wins in the date range whose campaign code is
// in the given set. An empty set matches nothing.
func (r *Repository) ByCampaigns(start, end time.Time, campaigns []string) ([]Win, error) {
	if len(campaigns) == 0 {
		return nil, nil
	}
	query := winSelect + ` AND w.hvc IN (` + placeholders(len(campaigns)) + `)`
	args := []interface{}{start.Format(dateFormat), end.Format(dateFormat)}
	for _, c := range campaigns {
		args = append(args, c)
	}
	return r.queryWins(query, args...)
}

// NonHVCBySectors returns active non-HVC wins in the date range belonging
// to one of the given CDMS sectors
func (r *Repository) NonHVCBySectors(start, end time.Time, sectorIDs []int64) ([]Win, error) {
	if len(sectorIDs) == 0 {
		return nil, nil
	}
	query := winSelect + ` AND COALESCE(w.hvc, '') = '' AND w.sector IN (` + placeholders(len(sectorIDs)) + `)`
	args := []interface{}{start.Format(dateFormat), end.Format(dateFormat)}
	for _, id := range sectorIDs {
		args = append(args, id)
	}
	return r.queryWins(query, args...)
}

// NonHVCByCountries returns active non-HVC wins in the date range for the
// given country codes
func (r *Repository) NonHVCByCountries(start, end time.Time, countries []string) ([]Win, error) {
	if len(countries) == 0 {
		return nil, nil
	}
	query := winSelect + ` AND COALESCE(w.hvc, '') = '' AND w.country IN (` + placeholders(len(countries)) + `)`
	args := []interface{}{start.Format(dateFormat), end.Format(dateFormat)}
	for _, c := range countries {
		args = append(args, c)
	}
	return r.queryWins(query, args...)
}

// ByCountries returns every active win in the date range for the given
// country codes, HVC and non-HVC alike
func (r *Repository) ByCountries(start, end time.Time, countries []string) ([]Win, error) {
	if len(countries) == 0 {
		return nil, nil
	}
	query := winSelect + ` AND w.country IN (` + placeholders(len(countries)) + `)`
	args := []interface{}{start.Format(dateFormat), end.Format(dateFormat)}
	for _, c := range countries {
		args = append(args, c)
	}
	return r.queryWins(query, args...)
}

func (r *Repository) queryWins(query string, args ...interface{}) ([]Win, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query wins: %w", err)
	}
	defer rows.Close()

	var result []Win
	for rows.Next() {
		var w Win
		var dateStr, createdStr string
		var agree, complete int
		if err := rows.Scan(&w.ID, &w.HVC, &w.Sector, &w.Country, &dateStr,
			&w.ExportValue, &w.NonExportValue, &agree, &complete, &createdStr); err != nil {
			return nil, fmt.Errorf("failed to scan win: %w", err)
		}
		w.Confirmed = agree == 1
		w.Complete = complete == 1
		if w.Date, err = time.Parse(dateFormat, dateStr); err != nil {
			return nil, fmt.Errorf("invalid win date %q: %w", dateStr, err)
		}
		if w.Created, err = time.Parse(time.RFC3339, createdStr); err != nil {
			return nil, fmt.Errorf("invalid win created %q: %w", createdStr, err)
		}
		result = append(result, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wins: %w", err)
	}
	return result, nil
}

// ConfirmedCustomerNotifications returns customer notifications for wins
// that have a customer response, ordered by (win_id, created) ascending so
// the first row per win is the earliest notification.
func (r *Repository) ConfirmedCustomerNotifications(filter NotificationFilter) ([]ConfirmedNotification, error) {
	query := `
		SELECT n.win_id, n.created, r.created
		FROM notifications n
		JOIN wins w ON w.id = n.win_id
		JOIN customer_responses r ON r.win_id = n.win_id
		WHERE n.type = ? AND w.is_active = 1`
	args := []interface{}{NotificationTypeCustomer}

	if len(filter.Campaigns) > 0 {
		query += ` AND w.hvc IN (` + placeholders(len(filter.Campaigns)) + `)`
		for _, c := range filter.Campaigns {
			args = append(args, c)
		}
	}
	if len(filter.Sectors) > 0 {
		query += ` AND w.sector IN (` + placeholders(len(filter.Sectors)) + `)`
		for _, id := range filter.Sectors {
			args = append(args, id)
		}
	}
	if len(filter.Countries) > 0 {
		query += ` AND w.country IN (` + placeholders(len(filter.Countries)) + `)`
		for _, c := range filter.Countries {
			args = append(args, c)
		}
	}

	query += ` ORDER BY n.win_id, n.created`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var result []ConfirmedNotification
	for rows.Next() {
		var n ConfirmedNotification
		var notifiedStr, confirmedStr string
		if err := rows.Scan(&n.WinID, &notifiedStr, &confirmedStr); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		if n.NotifiedAt, err = time.Parse(time.RFC3339, notifiedStr); err != nil {
			return nil, fmt.Errorf("invalid notification created %q: %w", notifiedStr, err)
		}
		if n.ConfirmedAt, err = time.Parse(time.RFC3339, confirmedStr); err != nil {
			return nil, fmt.Errorf("invalid response created %q: %w", confirmedStr, err)
		}
		result = append(result, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}
	return result, nil
}

// UnconfirmedComplete returns active wins that were sent to the customer
// but have no response yet. Used by the reminder job.
func (r *Repository) UnconfirmedComplete() ([]Win, error) {
	query := `
		SELECT w.id, COALESCE(w.hvc, ''), w.sector, w.country, w.date,
		       w.export_value, w.non_export_value,
		       0, w.complete, w.created
		FROM wins w
		LEFT JOIN customer_responses r ON r.win_id = w.id
		WHERE w.is_active = 1 AND w.complete = 1 AND r.win_id IS NULL`
	return r.queryWins(query)
}

// TopNonHVC aggregates non-HVC wins by (country, sector), largest total
// value first. Sectors and countries narrow the scope; pass at most one.
func (r *Repository) TopNonHVC(start, end time.Time, sectorIDs []int64, countries []string, limit int) ([]NonHVCAggregate, error) {
	query := `
		SELECT w.country, w.sector, SUM(w.export_value), COUNT(*)
		FROM wins w
		WHERE w.is_active = 1 AND COALESCE(w.hvc, '') = '' AND w.date BETWEEN ? AND ?`
	args := []interface{}{start.Format(dateFormat), end.Format(dateFormat)}

	if len(sectorIDs) > 0 {
		query += ` AND w.sector IN (` + placeholders(len(sectorIDs)) + `)`
		for _, id := range sectorIDs {
			args = append(args, id)
		}
	}
	if len(countries) > 0 {
		query += ` AND w.country IN (` + placeholders(len(countries)) + `)`
		for _, c := range countries {
			args = append(args, c)
		}
	}

	query += ` GROUP BY w.country, w.sector ORDER BY SUM(w.export_value) DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query non-HVC aggregates: %w", err)
	}
	defer rows.Close()

	var result []NonHVCAggregate
	for rows.Next() {
		var agg NonHVCAggregate
		if err := rows.Scan(&agg.Country, &agg.Sector, &agg.TotalValue, &agg.TotalWins); err != nil {
			return nil, fmt.Errorf("failed to scan non-HVC aggregate: %w", err)
		}
		result = append(result, agg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating non-HVC aggregates: %w", err)
	}
	return result, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
