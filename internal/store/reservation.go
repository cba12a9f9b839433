package store

import "github.com/dukerupert/familyflow/internal/model"

// ListReservationsForChild returns every reservation the child holds.
func (s *Store) ListReservationsForChild(childID string) []model.TaskReservation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterClone(s.reservations, func(r model.TaskReservation) bool {
		return r.ChildID == childID
	}, model.TaskReservation.Clone)
}

// GetReservation returns nil when the reservation does not exist.
func (s *Store) GetReservation(id string) *model.TaskReservation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r := s.findReservation(id)
	if r == nil {
		return nil
	}
	out := r.Clone()
	return &out
}

// ReserveTask claims an available task for a child. The availability check,
// the flip to unavailable and the new reservation happen under one lock, so at
// most one reservation can exist per task.
func (s *Store) ReserveTask(taskID, childID string) (*model.TaskReservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findTask(taskID)
	if t == nil {
		return nil, ErrTaskNotFound
	}
	if !t.IsAvailable {
		return nil, ErrTaskUnavailable
	}
	if s.reservedLocked(taskID) {
		return nil, ErrAlreadyReserved
	}

	t.IsAvailable = false
	r := model.TaskReservation{
		ID:         model.ReservationID(taskID, childID),
		TaskID:     taskID,
		ChildID:    childID,
		ReservedAt: s.now(),
	}
	s.reservations = append(s.reservations, r)

	out := r.Clone()
	return &out, nil
}

// CompleteReservation marks the reservation done and stamps the completion time.
func (s *Store) CompleteReservation(id string) (*model.TaskReservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.findReservation(id)
	if r == nil {
		return nil, ErrReservationNotFound
	}
	r.IsCompleted = true
	r.CompletedAt = s.timestamp()

	out := r.Clone()
	return &out, nil
}

func (s *Store) findReservation(id string) *model.TaskReservation {
	for i := range s.reservations {
		if s.reservations[i].ID == id {
			return &s.reservations[i]
		}
	}
	return nil
}

func (s *Store) reservedLocked(taskID string) bool {
	for _, r := range s.reservations {
		if r.TaskID == taskID {
			return true
		}
	}
	return false
}
