package allowance

import "github.com/dukerupert/familyflow/internal/model"

// RewardLookup resolves the reward of a bonus task. ok is false when the task
// no longer exists.
type RewardLookup func(taskID string) (reward float64, ok bool)

// Input is everything needed to derive one child's monthly summary.
type Input struct {
	Child        model.User
	Chores       []model.Chore
	Reservations []model.TaskReservation
	Reward       RewardLookup
	Month        int
	Year         int
}

// Calculate derives the allowance summary for in.Child.
//
// The base allowance is all-or-nothing: it is paid only when the child has at
// least one chore for the period and every one of them is completed. The bonus
// total sums the rewards of reservations completed within the period, whatever
// month they were reserved in.
func Calculate(in Input) model.AllowanceSummary {
	base := 0.0
	if AllChoresDone(in.Child.ID, in.Chores, in.Month, in.Year) {
		base = in.Child.MonthlyAllowance
	}
	bonus := BonusTotal(in.Child.ID, in.Reservations, in.Reward, in.Month, in.Year)

	return model.AllowanceSummary{
		ChildID:       in.Child.ID,
		Month:         in.Month,
		Year:          in.Year,
		BaseAllowance: base,
		BonusTotal:    bonus,
		Total:         base + bonus,
	}
}

// AllChoresDone reports whether childID has at least one chore in the period
// and all of them are completed.
func AllChoresDone(childID string, chores []model.Chore, month, year int) bool {
	assigned := 0
	for _, c := range chores {
		if c.ChildID != childID || !c.InPeriod(month, year) {
			continue
		}
		assigned++
		if !c.IsCompleted {
			return false
		}
	}
	return assigned > 0
}

// BonusTotal sums rewards of the child's reservations completed in the period.
// Reservations whose task cannot be resolved contribute nothing.
func BonusTotal(childID string, reservations []model.TaskReservation, reward RewardLookup, month, year int) float64 {
	if reward == nil {
		return 0
	}
	total := 0.0
	for _, r := range reservations {
		if r.ChildID != childID || !r.CompletedIn(month, year) {
			continue
		}
		amount, ok := reward(r.TaskID)
		if !ok {
			continue
		}
		total += amount
	}
	return total
}
