package main

import (
	"fmt"
	"sync"

	"github.com/dukerupert/familyflow/internal/auth"
	"github.com/dukerupert/familyflow/internal/events"
	"github.com/dukerupert/familyflow/internal/model"
	"github.com/dukerupert/familyflow/internal/service"
)

// demo plays through a child's month: pick up a bonus task, finish it and
// every open chore, then show the resulting allowance. Change events are
// logged as they arrive.
func (a *app) demo(username string, retries int) error {
	ctx, err := a.signIn(username)
	if err != nil {
		return err
	}
	child, _ := auth.FromContext(ctx)
	if !child.IsChild() {
		return fmt.Errorf("%q is not a child", username)
	}

	sub := a.hub.Subscribe(events.DefaultBufferSize)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for msg := range sub.C() {
			a.logger.Info("event", "type", msg.Type, "id", msg.ID, "actor", msg.ActorID)
		}
	}()
	defer func() {
		a.hub.Unsubscribe(sub)
		wg.Wait()
	}()

	month, year := int(a.now.Month()), a.now.Year()

	tasks, err := withRetry(retries, a.logger.Warn, func() service.Result[[]model.BonusTask] {
		return a.svc.ListAvailableBonusTasks(ctx)
	})
	if err != nil {
		return fmt.Errorf("list bonus tasks: %w", err)
	}
	if len(tasks) > 0 {
		res, rerr := a.svc.ReserveBonusTask(ctx, tasks[0].ID).Unwrap()
		if rerr != nil {
			return fmt.Errorf("reserve %q: %w", tasks[0].Title, rerr)
		}
		if _, rerr := a.svc.CompleteReservation(ctx, res.ID).Unwrap(); rerr != nil {
			return fmt.Errorf("complete reservation: %w", rerr)
		}
	}

	chores, rerr := a.svc.ListChores(ctx, child.ID, month, year).Unwrap()
	if rerr != nil {
		return fmt.Errorf("list chores: %w", rerr)
	}
	for _, c := range chores {
		if c.IsCompleted {
			continue
		}
		if _, rerr := a.svc.CompleteChore(ctx, c.ID).Unwrap(); rerr != nil {
			return fmt.Errorf("complete chore %q: %w", c.Title, rerr)
		}
	}

	return printJSON(a.svc.GetAllowanceSummary(ctx, child.ID, month, year))
}

// withRetry repeats call while it fails with INTERNAL, up to attempts times.
func withRetry[T any](attempts int, warn func(string, ...any), call func() service.Result[T]) (T, error) {
	var zero T
	if attempts < 1 {
		attempts = 1
	}
	for i := 1; ; i++ {
		data, rerr := call().Unwrap()
		if rerr == nil {
			return data, nil
		}
		if rerr.Code != service.CodeInternal || i >= attempts {
			return zero, rerr
		}
		warn("transient failure, retrying", "attempt", i, "error", rerr.Message)
	}
}
