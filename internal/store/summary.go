package store

import (
	"github.com/dukerupert/familyflow/internal/allowance"
	"github.com/dukerupert/familyflow/internal/model"
)

// CalculateAllowance derives the child's summary for the period. It returns
// nil when childID is not a child.
func (s *Store) CalculateAllowance(childID string, month, year int) *model.AllowanceSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calculateLocked(childID, month, year)
}

// ListMonthlySummaries returns one row per child. A child whose summary cannot
// be computed gets a zero row instead of being left out.
func (s *Store) ListMonthlySummaries(month, year int) []model.MonthlySummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := []model.MonthlySummary{}
	for _, u := range s.users {
		if !u.IsChild() {
			continue
		}
		row := model.MonthlySummary{ChildID: u.ID}
		if sum := s.calculateLocked(u.ID, month, year); sum != nil {
			row.BaseAllowance = sum.BaseAllowance
			row.BonusTotal = sum.BonusTotal
			row.Total = sum.Total
		}
		rows = append(rows, row)
	}
	return rows
}

func (s *Store) calculateLocked(childID string, month, year int) *model.AllowanceSummary {
	child := s.findChild(childID)
	if child == nil {
		return nil
	}

	var chores []model.Chore
	for _, c := range s.chores {
		if c.ChildID == childID && c.InPeriod(month, year) {
			chores = append(chores, c)
		}
	}
	var reservations []model.TaskReservation
	for _, r := range s.reservations {
		if r.ChildID == childID {
			reservations = append(reservations, r)
		}
	}

	sum := allowance.Calculate(allowance.Input{
		Child:        *child,
		Chores:       chores,
		Reservations: reservations,
		Reward:       s.rewardLocked,
		Month:        month,
		Year:         year,
	})
	return &sum
}
