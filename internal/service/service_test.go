package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dukerupert/familyflow/internal/auth"
	"github.com/dukerupert/familyflow/internal/events"
	"github.com/dukerupert/familyflow/internal/model"
	"github.com/dukerupert/familyflow/internal/store"
)

var (
	parent = model.User{ID: "p1", Username: "parent.alex", DisplayName: "Alex", Role: model.RoleParent}
	sam    = model.User{ID: "c1", Username: "child.sam", DisplayName: "Sam", Role: model.RoleChild, MonthlyAllowance: 20}
	riley  = model.User{ID: "c2", Username: "child.riley", DisplayName: "Riley", Role: model.RoleChild, MonthlyAllowance: 25}
)

const (
	testMonth = 3
	testYear  = 2025
)

var testNow = time.Date(testYear, time.March, 10, 12, 0, 0, 0, time.UTC)

func asUser(u model.User) context.Context {
	return auth.WithUser(context.Background(), u)
}

func testSeed() store.Seed {
	return store.Seed{
		Users: []model.User{parent, sam, riley},
		Chores: []model.Chore{
			{ID: "bed", ChildID: "c1", Title: "Make bed", Month: testMonth, Year: testYear},
			{ID: "table", ChildID: "c1", Title: "Set the table", Month: testMonth, Year: testYear},
			{ID: "dog", ChildID: "c2", Title: "Walk the dog", Month: testMonth, Year: testYear},
		},
		BonusTasks: []model.BonusTask{
			{ID: "wash", CreatedBy: "p1", Title: "Wash the car", RewardAmount: 5, IsAvailable: true},
			{ID: "weed", CreatedBy: "p1", Title: "Garden weeding", RewardAmount: 4, IsAvailable: true},
		},
	}
}

type testEnv struct {
	svc   *Service
	store *store.Store
	hub   *events.Hub
	sub   *events.Subscriber
}

func setupService(t *testing.T) *testEnv {
	t.Helper()
	n := 0
	st := store.New(testSeed(),
		store.WithClock(func() time.Time { return testNow }),
		store.WithIDFunc(func() string {
			n++
			return fmt.Sprintf("new-%d", n)
		}),
	)
	hub := events.NewHub(slog.Default())
	sub := hub.Subscribe(64)
	t.Cleanup(sub.Close)

	svc := New(st, Config{}, slog.Default(), WithNotifier(hub))
	return &testEnv{svc: svc, store: st, hub: hub, sub: sub}
}

func (e *testEnv) drain() []events.Message {
	var msgs []events.Message
	for {
		select {
		case m := <-e.sub.C():
			msgs = append(msgs, m)
		default:
			return msgs
		}
	}
}

func requireOK[T any](t *testing.T, r Result[T]) T {
	t.Helper()
	data, err := r.Unwrap()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return data
}

func requireCode[T any](t *testing.T, r Result[T], want Code) *Error {
	t.Helper()
	if r.IsOK() {
		t.Fatalf("expected %s, got success %+v", want, r.Data())
	}
	if r.Err().Code != want {
		t.Fatalf("code = %s, want %s (%s)", r.Err().Code, want, r.Err().Message)
	}
	return r.Err()
}

// countingStore records every call made to the wrapped store.
type countingStore struct {
	Store
	calls atomic.Int64
}

func (c *countingStore) hit() { c.calls.Add(1) }

func (c *countingStore) ListUsers() []model.User { c.hit(); return c.Store.ListUsers() }
func (c *countingStore) ListChoresForChild(id string, m, y int) []model.Chore {
	c.hit()
	return c.Store.ListChoresForChild(id, m, y)
}
func (c *countingStore) GetChore(id string) *model.Chore { c.hit(); return c.Store.GetChore(id) }
func (c *countingStore) CompleteChore(id string) (*model.Chore, error) {
	c.hit()
	return c.Store.CompleteChore(id)
}
func (c *countingStore) CreateChore(child, title, desc string, m, y int) (*model.Chore, error) {
	c.hit()
	return c.Store.CreateChore(child, title, desc, m, y)
}
func (c *countingStore) UpdateChore(id string, u model.ChoreUpdate) (*model.Chore, error) {
	c.hit()
	return c.Store.UpdateChore(id, u)
}
func (c *countingStore) DeleteChore(id string) bool { c.hit(); return c.Store.DeleteChore(id) }
func (c *countingStore) AddChoresForAllChildren(title, desc string, m, y int) []model.Chore {
	c.hit()
	return c.Store.AddChoresForAllChildren(title, desc, m, y)
}
func (c *countingStore) ListAvailableBonusTasks() []model.BonusTask {
	c.hit()
	return c.Store.ListAvailableBonusTasks()
}
func (c *countingStore) GetBonusTask(id string) *model.BonusTask { c.hit(); return c.Store.GetBonusTask(id) }
func (c *countingStore) CreateBonusTask(by, title, desc string, r float64) (*model.BonusTask, error) {
	c.hit()
	return c.Store.CreateBonusTask(by, title, desc, r)
}
func (c *countingStore) UpdateBonusTask(id string, u model.BonusTaskUpdate) (*model.BonusTask, error) {
	c.hit()
	return c.Store.UpdateBonusTask(id, u)
}
func (c *countingStore) DeleteBonusTask(id string) bool { c.hit(); return c.Store.DeleteBonusTask(id) }
func (c *countingStore) ListReservationsForChild(id string) []model.TaskReservation {
	c.hit()
	return c.Store.ListReservationsForChild(id)
}
func (c *countingStore) GetReservation(id string) *model.TaskReservation {
	c.hit()
	return c.Store.GetReservation(id)
}
func (c *countingStore) ReserveTask(task, child string) (*model.TaskReservation, error) {
	c.hit()
	return c.Store.ReserveTask(task, child)
}
func (c *countingStore) CompleteReservation(id string) (*model.TaskReservation, error) {
	c.hit()
	return c.Store.CompleteReservation(id)
}
func (c *countingStore) CalculateAllowance(id string, m, y int) *model.AllowanceSummary {
	c.hit()
	return c.Store.CalculateAllowance(id, m, y)
}
func (c *countingStore) ListMonthlySummaries(m, y int) []model.MonthlySummary {
	c.hit()
	return c.Store.ListMonthlySummaries(m, y)
}

// operations lists every facade call with arguments that would succeed for
// the right caller.
func operations(svc *Service) map[string]func(context.Context) *Error {
	title := "x"
	return map[string]func(context.Context) *Error{
		"Me":                      func(ctx context.Context) *Error { return svc.Me(ctx).Err() },
		"ListChores":              func(ctx context.Context) *Error { return svc.ListChores(ctx, "c1", testMonth, testYear).Err() },
		"ListAvailableBonusTasks": func(ctx context.Context) *Error { return svc.ListAvailableBonusTasks(ctx).Err() },
		"GetBonusTask":            func(ctx context.Context) *Error { return svc.GetBonusTask(ctx, "wash").Err() },
		"ListReservations":        func(ctx context.Context) *Error { return svc.ListReservations(ctx, "c1").Err() },
		"ReserveBonusTask":        func(ctx context.Context) *Error { return svc.ReserveBonusTask(ctx, "wash").Err() },
		"CompleteChore":           func(ctx context.Context) *Error { return svc.CompleteChore(ctx, "bed").Err() },
		"CompleteReservation":     func(ctx context.Context) *Error { return svc.CompleteReservation(ctx, "wash:c1").Err() },
		"GetAllowanceSummary": func(ctx context.Context) *Error {
			return svc.GetAllowanceSummary(ctx, "c1", testMonth, testYear).Err()
		},
		"ListFamily": func(ctx context.Context) *Error { return svc.ListFamily(ctx).Err() },
		"ListMonthlySummaries": func(ctx context.Context) *Error {
			return svc.ListMonthlySummaries(ctx, testMonth, testYear).Err()
		},
		"CreateChore": func(ctx context.Context) *Error {
			return svc.CreateChore(ctx, CreateChoreInput{ChildID: "c1", Title: "x", Month: testMonth, Year: testYear}).Err()
		},
		"UpdateChore": func(ctx context.Context) *Error {
			return svc.UpdateChore(ctx, "bed", model.ChoreUpdate{Title: &title}).Err()
		},
		"DeleteChore": func(ctx context.Context) *Error { return svc.DeleteChore(ctx, "table").Err() },
		"CreateBonusTask": func(ctx context.Context) *Error {
			return svc.CreateBonusTask(ctx, CreateBonusTaskInput{Title: "x", RewardAmount: 1}).Err()
		},
		"UpdateBonusTask": func(ctx context.Context) *Error {
			return svc.UpdateBonusTask(ctx, "weed", model.BonusTaskUpdate{Title: &title}).Err()
		},
		"DeleteBonusTask": func(ctx context.Context) *Error { return svc.DeleteBonusTask(ctx, "weed").Err() },
		"CreateChoresForAllChildren": func(ctx context.Context) *Error {
			return svc.CreateChoresForAllChildren(ctx, "x", "", testMonth, testYear).Err()
		},
	}
}

var childOnly = []string{
	"ListChores", "ListAvailableBonusTasks", "ListReservations", "ReserveBonusTask",
	"CompleteChore", "CompleteReservation", "GetAllowanceSummary",
}

var parentOnly = []string{
	"ListFamily", "ListMonthlySummaries", "CreateChore", "UpdateChore", "DeleteChore",
	"CreateBonusTask", "UpdateBonusTask", "DeleteBonusTask", "CreateChoresForAllChildren",
}

func TestUnauthenticatedNeverTouchesStore(t *testing.T) {
	cs := &countingStore{Store: store.New(testSeed())}
	svc := New(cs, Config{}, slog.Default())

	for name, op := range operations(svc) {
		t.Run(name, func(t *testing.T) {
			err := op(context.Background())
			if err == nil || err.Code != CodeUnauthenticated {
				t.Fatalf("err = %v, want UNAUTHENTICATED", err)
			}
			if err.Message != msgUnauthenticated {
				t.Errorf("message = %q", err.Message)
			}
		})
	}
	if got := cs.calls.Load(); got != 0 {
		t.Errorf("store calls = %d, want 0", got)
	}
}

func TestParentForbiddenFromChildOperations(t *testing.T) {
	env := setupService(t)
	ops := operations(env.svc)

	for _, name := range childOnly {
		t.Run(name, func(t *testing.T) {
			err := ops[name](asUser(parent))
			if err == nil || err.Code != CodeForbidden {
				t.Fatalf("err = %v, want FORBIDDEN", err)
			}
		})
	}
}

func TestChildForbiddenFromParentOperations(t *testing.T) {
	env := setupService(t)
	ops := operations(env.svc)

	for _, name := range parentOnly {
		t.Run(name, func(t *testing.T) {
			err := ops[name](asUser(sam))
			if err == nil || err.Code != CodeForbidden {
				t.Fatalf("err = %v, want FORBIDDEN", err)
			}
		})
	}
	if got := len(env.drain()); got != 0 {
		t.Errorf("denied calls must not notify, got %d messages", got)
	}
}

func TestFailedCallsLeaveStateUnchanged(t *testing.T) {
	env := setupService(t)
	ops := operations(env.svc)

	for _, name := range parentOnly {
		ops[name](asUser(sam))
	}
	for _, name := range childOnly {
		ops[name](asUser(parent))
	}

	if got := len(env.store.ListChoresForChild("c1", testMonth, testYear)); got != 2 {
		t.Errorf("Sam's chores = %d, want 2", got)
	}
	if got := len(env.store.ListAvailableBonusTasks()); got != 2 {
		t.Errorf("available tasks = %d, want 2", got)
	}
	if got := len(env.store.ListReservationsForChild("c1")); got != 0 {
		t.Errorf("reservations = %d, want 0", got)
	}
}

func TestMe(t *testing.T) {
	env := setupService(t)

	got := requireOK(t, env.svc.Me(asUser(riley)))
	if got != riley {
		t.Errorf("me = %+v, want %+v", got, riley)
	}
}

func TestSimulatedDelayAppliesToEveryCall(t *testing.T) {
	var slept []time.Duration
	svc := New(store.New(testSeed()), Config{MinDelay: 200 * time.Millisecond, MaxDelay: 200 * time.Millisecond}, slog.Default(),
		WithSleep(func(d time.Duration) { slept = append(slept, d) }))

	svc.Me(context.Background())
	svc.ListFamily(asUser(parent))
	svc.ListChores(asUser(sam), "c1", testMonth, testYear)

	if len(slept) != 3 {
		t.Fatalf("sleeps = %d, want 3", len(slept))
	}
	for _, d := range slept {
		if d != 200*time.Millisecond {
			t.Errorf("slept %s, want 200ms", d)
		}
	}
}
