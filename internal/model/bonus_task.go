package model

import "time"

type BonusTask struct {
	ID           string  `json:"id"`
	CreatedBy    string  `json:"created_by"`
	Title        string  `json:"title"`
	Description  string  `json:"description,omitempty"`
	RewardAmount float64 `json:"reward_amount"`
	IsAvailable  bool    `json:"is_available"`
}

func (t BonusTask) Clone() BonusTask {
	return t
}

// BonusTaskUpdate is a partial update; nil fields are left unchanged.
type BonusTaskUpdate struct {
	Title        *string  `json:"title,omitempty"`
	Description  *string  `json:"description,omitempty"`
	RewardAmount *float64 `json:"reward_amount,omitempty"`
	IsAvailable  *bool    `json:"is_available,omitempty"`
}

// TaskReservation binds a bonus task to the child who claimed it.
type TaskReservation struct {
	ID          string     `json:"id"`
	TaskID      string     `json:"task_id"`
	ChildID     string     `json:"child_id"`
	IsCompleted bool       `json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	ReservedAt  time.Time  `json:"reserved_at"`
}

// ReservationID returns the deterministic reservation id for a task and child.
func ReservationID(taskID, childID string) string {
	return taskID + ":" + childID
}

func (r TaskReservation) Clone() TaskReservation {
	r.CompletedAt = cloneTime(r.CompletedAt)
	return r
}

// CompletedIn reports whether the reservation was completed during the given
// calendar month, using the location recorded on the completion timestamp.
func (r TaskReservation) CompletedIn(month, year int) bool {
	if !r.IsCompleted || r.CompletedAt == nil {
		return false
	}
	return int(r.CompletedAt.Month()) == month && r.CompletedAt.Year() == year
}
