package store

import (
	"slices"

	"github.com/dukerupert/familyflow/internal/model"
)

// ListAvailableBonusTasks returns tasks nobody has reserved yet.
func (s *Store) ListAvailableBonusTasks() []model.BonusTask {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterClone(s.tasks, func(t model.BonusTask) bool { return t.IsAvailable }, model.BonusTask.Clone)
}

// GetBonusTask returns nil when the task does not exist.
func (s *Store) GetBonusTask(id string) *model.BonusTask {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t := s.findTask(id)
	if t == nil {
		return nil
	}
	out := t.Clone()
	return &out
}

// CreateBonusTask adds an available task. createdBy must resolve to a parent.
func (s *Store) CreateBonusTask(createdBy, title, description string, reward float64) (*model.BonusTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findUser(createdBy)
	if u == nil || !u.IsParent() {
		return nil, ErrParentNotFound
	}
	t := model.BonusTask{
		ID:           s.newID(),
		CreatedBy:    createdBy,
		Title:        title,
		Description:  description,
		RewardAmount: reward,
		IsAvailable:  true,
	}
	s.tasks = append(s.tasks, t)

	out := t.Clone()
	return &out, nil
}

// UpdateBonusTask applies the non-nil fields of upd. A reserved task cannot be
// made available again; that fails with ErrTaskReserved and changes nothing.
func (s *Store) UpdateBonusTask(id string, upd model.BonusTaskUpdate) (*model.BonusTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findTask(id)
	if t == nil {
		return nil, ErrTaskNotFound
	}
	if upd.IsAvailable != nil && *upd.IsAvailable && s.reservedLocked(id) {
		return nil, ErrTaskReserved
	}

	if upd.Title != nil {
		t.Title = *upd.Title
	}
	if upd.Description != nil {
		t.Description = *upd.Description
	}
	if upd.RewardAmount != nil {
		t.RewardAmount = *upd.RewardAmount
	}
	if upd.IsAvailable != nil {
		t.IsAvailable = *upd.IsAvailable
	}

	out := t.Clone()
	return &out, nil
}

// DeleteBonusTask removes the task and every reservation referencing it.
func (s *Store) DeleteBonusTask(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.tasks)
	s.tasks = slices.DeleteFunc(s.tasks, func(t model.BonusTask) bool { return t.ID == id })
	if len(s.tasks) == before {
		return false
	}
	s.reservations = slices.DeleteFunc(s.reservations, func(r model.TaskReservation) bool {
		return r.TaskID == id
	})
	return true
}

func (s *Store) findTask(id string) *model.BonusTask {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return &s.tasks[i]
		}
	}
	return nil
}

// rewardLocked resolves a task's reward; callers hold at least the read lock.
func (s *Store) rewardLocked(taskID string) (float64, bool) {
	t := s.findTask(taskID)
	if t == nil {
		return 0, false
	}
	return t.RewardAmount, true
}
