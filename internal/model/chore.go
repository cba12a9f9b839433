package model

import "time"

type Chore struct {
	ID          string     `json:"id"`
	ChildID     string     `json:"child_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	IsCompleted bool       `json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Month       int        `json:"month"`
	Year        int        `json:"year"`
}

// Clone returns a copy of c that shares no memory with it.
func (c Chore) Clone() Chore {
	c.CompletedAt = cloneTime(c.CompletedAt)
	return c
}

// InPeriod reports whether the chore is assigned to the given month and year.
func (c Chore) InPeriod(month, year int) bool {
	return c.Month == month && c.Year == year
}

// ChoreUpdate is a partial update; nil fields are left unchanged.
type ChoreUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	IsCompleted *bool   `json:"is_completed,omitempty"`
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
