package service

import (
	"context"
	"errors"
	"strings"

	"github.com/dukerupert/familyflow/internal/model"
	"github.com/dukerupert/familyflow/internal/store"
)

type CreateChoreInput struct {
	ChildID     string `json:"child_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Month       int    `json:"month"`
	Year        int    `json:"year"`
}

type CreateBonusTaskInput struct {
	Title        string  `json:"title"`
	Description  string  `json:"description,omitempty"`
	RewardAmount float64 `json:"reward_amount"`
}

const msgRewardPositive = "Reward amount must be positive"

func (s *Service) ListFamily(ctx context.Context) Result[[]model.User] {
	s.sim.roundTrip()
	if _, err := s.authorize(ctx, "list_family", model.RoleParent, "Only parents can view family"); err != nil {
		return Fail[[]model.User](err)
	}
	return OK(s.store.ListUsers())
}

func (s *Service) ListMonthlySummaries(ctx context.Context, month, year int) Result[[]model.MonthlySummary] {
	s.sim.roundTrip()
	if _, err := s.authorize(ctx, "list_monthly_summaries", model.RoleParent, "Only parents can view summaries"); err != nil {
		return Fail[[]model.MonthlySummary](err)
	}
	return OK(s.store.ListMonthlySummaries(month, year))
}

func (s *Service) CreateChore(ctx context.Context, in CreateChoreInput) Result[model.Chore] {
	s.sim.roundTrip()
	u, err := s.authorize(ctx, "create_chore", model.RoleParent, "Only parents can create chores")
	if err != nil {
		return Fail[model.Chore](err)
	}
	title, err := requireTitle(in.Title)
	if err != nil {
		return Fail[model.Chore](err)
	}
	if err := validatePeriod(in.Month, in.Year); err != nil {
		return Fail[model.Chore](err)
	}

	chore, serr := s.store.CreateChore(in.ChildID, title, strings.TrimSpace(in.Description), in.Month, in.Year)
	if serr != nil {
		return Fail[model.Chore](newError(CodeBadRequest, "Invalid child for chore",
			ErrorDetail{Field: "child_id", Message: serr.Error()}))
	}

	s.logger.Info("chore created", "chore_id", chore.ID, "child_id", chore.ChildID, "parent_id", u.ID)
	s.notify(u, "chore", "created", chore.ID, map[string]any{"child_id": chore.ChildID})
	return OK(*chore)
}

func (s *Service) UpdateChore(ctx context.Context, choreID string, upd model.ChoreUpdate) Result[model.Chore] {
	s.sim.roundTrip()
	u, err := s.authorize(ctx, "update_chore", model.RoleParent, "Only parents can update chores")
	if err != nil {
		return Fail[model.Chore](err)
	}
	if upd.Title != nil {
		title, err := requireTitle(*upd.Title)
		if err != nil {
			return Fail[model.Chore](err)
		}
		upd.Title = &title
	}

	chore, serr := s.store.UpdateChore(choreID, upd)
	if serr != nil {
		return Fail[model.Chore](newError(CodeNotFound, "Chore not found"))
	}

	s.logger.Info("chore updated", "chore_id", choreID, "parent_id", u.ID)
	s.notify(u, "chore", "updated", choreID, map[string]any{"child_id": chore.ChildID})
	return OK(*chore)
}

func (s *Service) DeleteChore(ctx context.Context, choreID string) Result[Deleted] {
	s.sim.roundTrip()
	u, err := s.authorize(ctx, "delete_chore", model.RoleParent, "Only parents can delete chores")
	if err != nil {
		return Fail[Deleted](err)
	}
	if !s.store.DeleteChore(choreID) {
		return Fail[Deleted](newError(CodeNotFound, "Chore not found"))
	}

	s.logger.Info("chore deleted", "chore_id", choreID, "parent_id", u.ID)
	s.notify(u, "chore", "deleted", choreID, nil)
	return OK(Deleted{ID: choreID})
}

func (s *Service) CreateBonusTask(ctx context.Context, in CreateBonusTaskInput) Result[model.BonusTask] {
	s.sim.roundTrip()
	u, err := s.authorize(ctx, "create_bonus_task", model.RoleParent, "Only parents can create bonus tasks")
	if err != nil {
		return Fail[model.BonusTask](err)
	}
	if in.RewardAmount <= 0 {
		return Fail[model.BonusTask](newError(CodeBadRequest, msgRewardPositive,
			ErrorDetail{Field: "reward_amount", Message: "must be greater than 0"}))
	}
	title, err := requireTitle(in.Title)
	if err != nil {
		return Fail[model.BonusTask](err)
	}

	task, serr := s.store.CreateBonusTask(u.ID, title, strings.TrimSpace(in.Description), in.RewardAmount)
	if serr != nil {
		return Fail[model.BonusTask](newError(CodeBadRequest, "Invalid parent for bonus task"))
	}

	s.logger.Info("bonus task created", "task_id", task.ID, "reward", task.RewardAmount, "parent_id", u.ID)
	s.notify(u, "bonus_task", "created", task.ID, nil)
	return OK(*task)
}

func (s *Service) UpdateBonusTask(ctx context.Context, taskID string, upd model.BonusTaskUpdate) Result[model.BonusTask] {
	s.sim.roundTrip()
	u, err := s.authorize(ctx, "update_bonus_task", model.RoleParent, "Only parents can update bonus tasks")
	if err != nil {
		return Fail[model.BonusTask](err)
	}
	if upd.RewardAmount != nil && *upd.RewardAmount <= 0 {
		return Fail[model.BonusTask](newError(CodeBadRequest, msgRewardPositive,
			ErrorDetail{Field: "reward_amount", Message: "must be greater than 0"}))
	}
	if upd.Title != nil {
		title, err := requireTitle(*upd.Title)
		if err != nil {
			return Fail[model.BonusTask](err)
		}
		upd.Title = &title
	}

	task, serr := s.store.UpdateBonusTask(taskID, upd)
	switch {
	case errors.Is(serr, store.ErrTaskReserved):
		return Fail[model.BonusTask](newError(CodeConflict, "Task is reserved and cannot be made available"))
	case serr != nil:
		return Fail[model.BonusTask](newError(CodeNotFound, "Bonus task not found"))
	}

	s.logger.Info("bonus task updated", "task_id", taskID, "parent_id", u.ID)
	s.notify(u, "bonus_task", "updated", taskID, nil)
	return OK(*task)
}

// DeleteBonusTask also removes any reservation of the task.
func (s *Service) DeleteBonusTask(ctx context.Context, taskID string) Result[Deleted] {
	s.sim.roundTrip()
	u, err := s.authorize(ctx, "delete_bonus_task", model.RoleParent, "Only parents can delete bonus tasks")
	if err != nil {
		return Fail[Deleted](err)
	}
	if !s.store.DeleteBonusTask(taskID) {
		return Fail[Deleted](newError(CodeNotFound, "Bonus task not found"))
	}

	s.logger.Info("bonus task deleted", "task_id", taskID, "parent_id", u.ID)
	s.notify(u, "bonus_task", "deleted", taskID, nil)
	return OK(Deleted{ID: taskID})
}

// CreateChoresForAllChildren assigns the same chore to every child.
func (s *Service) CreateChoresForAllChildren(ctx context.Context, title, description string, month, year int) Result[[]model.Chore] {
	s.sim.roundTrip()
	u, err := s.authorize(ctx, "create_chores_for_all_children", model.RoleParent, "Only parents can create chores")
	if err != nil {
		return Fail[[]model.Chore](err)
	}
	title, err = requireTitle(title)
	if err != nil {
		return Fail[[]model.Chore](err)
	}
	if err := validatePeriod(month, year); err != nil {
		return Fail[[]model.Chore](err)
	}

	chores := s.store.AddChoresForAllChildren(title, strings.TrimSpace(description), month, year)

	s.logger.Info("chores created for all children", "title", title, "count", len(chores), "parent_id", u.ID)
	for _, c := range chores {
		s.notify(u, "chore", "created", c.ID, map[string]any{"child_id": c.ChildID})
	}
	return OK(chores)
}
