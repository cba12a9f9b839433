package store

import (
	"slices"

	"github.com/dukerupert/familyflow/internal/model"
)

// ListChoresForChild returns the child's chores for exactly month and year.
func (s *Store) ListChoresForChild(childID string, month, year int) []model.Chore {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterClone(s.chores, func(c model.Chore) bool {
		return c.ChildID == childID && c.InPeriod(month, year)
	}, model.Chore.Clone)
}

// GetChore returns nil when the chore does not exist.
func (s *Store) GetChore(id string) *model.Chore {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := s.findChore(id)
	if c == nil {
		return nil
	}
	out := c.Clone()
	return &out
}

// CompleteChore marks the chore done and stamps the completion time. Completing
// an already completed chore stamps it again.
func (s *Store) CompleteChore(id string) (*model.Chore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.findChore(id)
	if c == nil {
		return nil, ErrChoreNotFound
	}
	c.IsCompleted = true
	c.CompletedAt = s.timestamp()

	out := c.Clone()
	return &out, nil
}

// CreateChore assigns a new chore to a child. It fails with ErrChildNotFound
// unless childID resolves to a user with the child role.
func (s *Store) CreateChore(childID, title, description string, month, year int) (*model.Chore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findChild(childID) == nil {
		return nil, ErrChildNotFound
	}
	c := s.appendChore(childID, title, description, month, year)
	return &c, nil
}

// AddChoresForAllChildren creates one chore per child. With no children it
// returns an empty slice.
func (s *Store) AddChoresForAllChildren(title, description string, month, year int) []model.Chore {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := []model.Chore{}
	for _, u := range s.users {
		if !u.IsChild() {
			continue
		}
		created = append(created, s.appendChore(u.ID, title, description, month, year))
	}
	return created
}

// UpdateChore applies the non-nil fields of upd. Setting IsCompleted to true
// stamps CompletedAt; setting it to false clears it.
func (s *Store) UpdateChore(id string, upd model.ChoreUpdate) (*model.Chore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.findChore(id)
	if c == nil {
		return nil, ErrChoreNotFound
	}
	if upd.Title != nil {
		c.Title = *upd.Title
	}
	if upd.Description != nil {
		c.Description = *upd.Description
	}
	if upd.IsCompleted != nil {
		c.IsCompleted = *upd.IsCompleted
		if c.IsCompleted {
			c.CompletedAt = s.timestamp()
		} else {
			c.CompletedAt = nil
		}
	}

	out := c.Clone()
	return &out, nil
}

// DeleteChore reports whether a chore was removed.
func (s *Store) DeleteChore(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.chores)
	s.chores = slices.DeleteFunc(s.chores, func(c model.Chore) bool { return c.ID == id })
	return len(s.chores) < before
}

// appendChore requires the write lock.
func (s *Store) appendChore(childID, title, description string, month, year int) model.Chore {
	c := model.Chore{
		ID:          s.newID(),
		ChildID:     childID,
		Title:       title,
		Description: description,
		Month:       month,
		Year:        year,
	}
	s.chores = append(s.chores, c)
	return c.Clone()
}

func (s *Store) findChore(id string) *model.Chore {
	for i := range s.chores {
		if s.chores[i].ID == id {
			return &s.chores[i]
		}
	}
	return nil
}
