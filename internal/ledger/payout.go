package ledger

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/familyflow/internal/model"
)

// PayoutStore records closed-month allowance summaries.
type PayoutStore struct {
	db *sql.DB
}

func NewPayoutStore(db *sql.DB) *PayoutStore {
	return &PayoutStore{db: db}
}

func scanPayout(scanner interface{ Scan(...any) error }) (*model.Payout, error) {
	var p model.Payout
	err := scanner.Scan(
		&p.ID, &p.Month, &p.Year, &p.ChildID,
		&p.BaseAllowance, &p.BonusTotal, &p.Total,
		&p.ClosedBy, &p.ClosedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

const payoutCols = `id, month, year, child_id, base_allowance, bonus_total, total, closed_by, closed_at`

// Record stores one payout per summary row. Closing the same month again
// replaces the earlier figures.
func (s *PayoutStore) Record(month, year int, closedBy string, closedAt time.Time, rows []model.MonthlySummary) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, r := range rows {
		_, err := tx.Exec(
			`INSERT INTO payouts (month, year, child_id, base_allowance, bonus_total, total, closed_by, closed_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT (year, month, child_id) DO UPDATE SET
			   base_allowance = excluded.base_allowance,
			   bonus_total = excluded.bonus_total,
			   total = excluded.total,
			   closed_by = excluded.closed_by,
			   closed_at = excluded.closed_at`,
			month, year, r.ChildID, r.BaseAllowance, r.BonusTotal, r.Total, closedBy, closedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("insert payout for child %s: %w", r.ChildID, err)
		}
	}
	return tx.Commit()
}

// ListByMonth returns the payouts of one closed month ordered by child.
func (s *PayoutStore) ListByMonth(month, year int) ([]model.Payout, error) {
	rows, err := s.db.Query(
		`SELECT `+payoutCols+` FROM payouts WHERE month = ? AND year = ? ORDER BY child_id ASC`,
		month, year,
	)
	if err != nil {
		return nil, fmt.Errorf("list payouts by month: %w", err)
	}
	defer rows.Close()

	var payouts []model.Payout
	for rows.Next() {
		p, err := scanPayout(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payout: %w", err)
		}
		payouts = append(payouts, *p)
	}
	return payouts, rows.Err()
}

// ListByChild returns a child's payout history, newest month first.
func (s *PayoutStore) ListByChild(childID string) ([]model.Payout, error) {
	rows, err := s.db.Query(
		`SELECT `+payoutCols+` FROM payouts WHERE child_id = ? ORDER BY year DESC, month DESC`,
		childID,
	)
	if err != nil {
		return nil, fmt.Errorf("list payouts by child: %w", err)
	}
	defer rows.Close()

	var payouts []model.Payout
	for rows.Next() {
		p, err := scanPayout(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payout: %w", err)
		}
		payouts = append(payouts, *p)
	}
	return payouts, rows.Err()
}

// TotalPaid sums every recorded payout for a child.
func (s *PayoutStore) TotalPaid(childID string) (float64, error) {
	var total float64
	err := s.db.QueryRow(
		`SELECT COALESCE(SUM(total), 0) FROM payouts WHERE child_id = ?`,
		childID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum payouts: %w", err)
	}
	return total, nil
}
