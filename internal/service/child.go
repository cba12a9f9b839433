package service

import (
	"context"
	"errors"

	"github.com/dukerupert/familyflow/internal/model"
	"github.com/dukerupert/familyflow/internal/store"
)

// ListChores returns the caller's own chores for the period.
func (s *Service) ListChores(ctx context.Context, childID string, month, year int) Result[[]model.Chore] {
	s.sim.roundTrip()
	const denied = "Only the child can view their chores"
	u, err := s.authorize(ctx, "list_chores", model.RoleChild, denied)
	if err != nil {
		return Fail[[]model.Chore](err)
	}
	if u.ID != childID {
		return Fail[[]model.Chore](s.forbidden("list_chores", u, denied))
	}
	return OK(s.store.ListChoresForChild(childID, month, year))
}

// ListAvailableBonusTasks may fail with a transient INTERNAL error even when
// the store would have answered; callers are expected to retry.
func (s *Service) ListAvailableBonusTasks(ctx context.Context) Result[[]model.BonusTask] {
	s.sim.roundTrip()
	u, err := s.authorize(ctx, "list_available_bonus_tasks", model.RoleChild, "Only children can view bonus tasks")
	if err != nil {
		return Fail[[]model.BonusTask](err)
	}
	if s.sim.fault() {
		s.logger.Warn("simulated transport failure", "op", "list_available_bonus_tasks", "user_id", u.ID)
		return Fail[[]model.BonusTask](newError(CodeInternal, "Temporary server issue, try again"))
	}
	return OK(s.store.ListAvailableBonusTasks())
}

// GetBonusTask is open to any signed-in family member.
func (s *Service) GetBonusTask(ctx context.Context, taskID string) Result[model.BonusTask] {
	s.sim.roundTrip()
	if _, err := s.authenticate(ctx, "get_bonus_task"); err != nil {
		return Fail[model.BonusTask](err)
	}
	task := s.store.GetBonusTask(taskID)
	if task == nil {
		return Fail[model.BonusTask](newError(CodeNotFound, "Bonus task not found"))
	}
	return OK(*task)
}

func (s *Service) ListReservations(ctx context.Context, childID string) Result[[]model.TaskReservation] {
	s.sim.roundTrip()
	const denied = "Only the child can view their reservations"
	u, err := s.authorize(ctx, "list_reservations", model.RoleChild, denied)
	if err != nil {
		return Fail[[]model.TaskReservation](err)
	}
	if u.ID != childID {
		return Fail[[]model.TaskReservation](s.forbidden("list_reservations", u, denied))
	}
	return OK(s.store.ListReservationsForChild(childID))
}

// ReserveBonusTask claims a task for the calling child.
func (s *Service) ReserveBonusTask(ctx context.Context, taskID string) Result[model.TaskReservation] {
	s.sim.roundTrip()
	u, err := s.authorize(ctx, "reserve_bonus_task", model.RoleChild, "Only children can reserve tasks")
	if err != nil {
		return Fail[model.TaskReservation](err)
	}

	res, serr := s.store.ReserveTask(taskID, u.ID)
	switch {
	case errors.Is(serr, store.ErrTaskNotFound):
		return Fail[model.TaskReservation](newError(CodeNotFound, "Bonus task not found"))
	case serr != nil:
		return Fail[model.TaskReservation](newError(CodeConflict, "Task is no longer available or already reserved"))
	}

	s.logger.Info("bonus task reserved", "task_id", taskID, "child_id", u.ID)
	s.notify(u, "bonus_task", "reserved", taskID, map[string]any{"reservation_id": res.ID})
	return OK(*res)
}

// CompleteChore marks one of the caller's chores done.
func (s *Service) CompleteChore(ctx context.Context, choreID string) Result[model.Chore] {
	s.sim.roundTrip()
	u, err := s.authorize(ctx, "complete_chore", model.RoleChild, "Only children can complete chores")
	if err != nil {
		return Fail[model.Chore](err)
	}

	existing := s.store.GetChore(choreID)
	if existing == nil {
		return Fail[model.Chore](newError(CodeNotFound, "Chore not found"))
	}
	if existing.ChildID != u.ID {
		return Fail[model.Chore](s.forbidden("complete_chore", u, "Only the child can complete their chores"))
	}

	chore, serr := s.store.CompleteChore(choreID)
	if serr != nil {
		return Fail[model.Chore](newError(CodeNotFound, "Chore not found"))
	}

	s.logger.Info("chore completed", "chore_id", choreID, "child_id", u.ID)
	s.notify(u, "chore", "completed", choreID, nil)
	return OK(*chore)
}

// CompleteReservation marks one of the caller's reserved tasks done.
func (s *Service) CompleteReservation(ctx context.Context, reservationID string) Result[model.TaskReservation] {
	s.sim.roundTrip()
	u, err := s.authorize(ctx, "complete_reservation", model.RoleChild, "Only children can complete reserved tasks")
	if err != nil {
		return Fail[model.TaskReservation](err)
	}

	existing := s.store.GetReservation(reservationID)
	if existing == nil {
		return Fail[model.TaskReservation](newError(CodeNotFound, "Reservation not found"))
	}
	if existing.ChildID != u.ID {
		return Fail[model.TaskReservation](s.forbidden("complete_reservation", u, "Only the child can complete their reserved tasks"))
	}

	res, serr := s.store.CompleteReservation(reservationID)
	if serr != nil {
		return Fail[model.TaskReservation](newError(CodeNotFound, "Reservation not found"))
	}

	s.logger.Info("reservation completed", "reservation_id", reservationID, "child_id", u.ID)
	s.notify(u, "reservation", "completed", reservationID, map[string]any{"task_id": res.TaskID})
	return OK(*res)
}

// GetAllowanceSummary returns the caller's own earnings for the period.
func (s *Service) GetAllowanceSummary(ctx context.Context, childID string, month, year int) Result[model.AllowanceSummary] {
	s.sim.roundTrip()
	const denied = "Only the child can view their allowance"
	u, err := s.authorize(ctx, "get_allowance_summary", model.RoleChild, denied)
	if err != nil {
		return Fail[model.AllowanceSummary](err)
	}
	if u.ID != childID {
		return Fail[model.AllowanceSummary](s.forbidden("get_allowance_summary", u, denied))
	}

	sum := s.store.CalculateAllowance(childID, month, year)
	if sum == nil {
		return Fail[model.AllowanceSummary](newError(CodeNotFound, "Child not found"))
	}
	return OK(*sum)
}
