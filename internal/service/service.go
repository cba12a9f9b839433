package service

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/dukerupert/familyflow/internal/auth"
	"github.com/dukerupert/familyflow/internal/events"
	"github.com/dukerupert/familyflow/internal/model"
)

// Store is the domain store the service fronts. *store.Store implements it.
type Store interface {
	ListUsers() []model.User

	ListChoresForChild(childID string, month, year int) []model.Chore
	GetChore(id string) *model.Chore
	CompleteChore(id string) (*model.Chore, error)
	CreateChore(childID, title, description string, month, year int) (*model.Chore, error)
	UpdateChore(id string, upd model.ChoreUpdate) (*model.Chore, error)
	DeleteChore(id string) bool
	AddChoresForAllChildren(title, description string, month, year int) []model.Chore

	ListAvailableBonusTasks() []model.BonusTask
	GetBonusTask(id string) *model.BonusTask
	CreateBonusTask(createdBy, title, description string, reward float64) (*model.BonusTask, error)
	UpdateBonusTask(id string, upd model.BonusTaskUpdate) (*model.BonusTask, error)
	DeleteBonusTask(id string) bool

	ListReservationsForChild(childID string) []model.TaskReservation
	GetReservation(id string) *model.TaskReservation
	ReserveTask(taskID, childID string) (*model.TaskReservation, error)
	CompleteReservation(id string) (*model.TaskReservation, error)

	CalculateAllowance(childID string, month, year int) *model.AllowanceSummary
	ListMonthlySummaries(month, year int) []model.MonthlySummary
}

// Notifier receives change notifications after successful mutations.
type Notifier interface {
	Broadcast(msg events.Message)
}

// Service is the only entry point callers use to reach the store. Every call
// pays a simulated round trip, then checks identity and role before touching
// the store, and reports the outcome as a Result.
type Service struct {
	store    Store
	sim      *simulator
	notifier Notifier
	logger   *slog.Logger
}

type options struct {
	rnd      *rand.Rand
	sleep    func(time.Duration)
	notifier Notifier
}

type Option func(*options)

// WithRand sets the random source for latency and fault injection.
func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rnd = r }
}

// WithSleep replaces time.Sleep for the simulated round trip.
func WithSleep(sleep func(time.Duration)) Option {
	return func(o *options) { o.sleep = sleep }
}

// WithNotifier sets the receiver of change notifications.
func WithNotifier(n Notifier) Option {
	return func(o *options) { o.notifier = n }
}

func New(st Store, cfg Config, logger *slog.Logger, opts ...Option) *Service {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:    st,
		sim:      newSimulator(cfg, o.rnd, o.sleep),
		notifier: o.notifier,
		logger:   logger,
	}
}

const msgUnauthenticated = "You must be logged in"

// authenticate returns the caller or an UNAUTHENTICATED error.
func (s *Service) authenticate(ctx context.Context, op string) (model.User, *Error) {
	u, ok := auth.FromContext(ctx)
	if !ok {
		s.logger.Debug("denied", "op", op, "code", CodeUnauthenticated)
		return model.User{}, newError(CodeUnauthenticated, msgUnauthenticated)
	}
	return u, nil
}

// authorize authenticates the caller and requires role. denied is the
// FORBIDDEN message.
func (s *Service) authorize(ctx context.Context, op string, role model.Role, denied string) (model.User, *Error) {
	u, err := s.authenticate(ctx, op)
	if err != nil {
		return u, err
	}
	if u.Role != role {
		return u, s.forbidden(op, u, denied)
	}
	return u, nil
}

func (s *Service) forbidden(op string, u model.User, msg string) *Error {
	s.logger.Debug("denied", "op", op, "code", CodeForbidden, "user_id", u.ID, "role", u.Role)
	return newError(CodeForbidden, msg)
}

func (s *Service) notify(actor model.User, entity, action, id string, extra map[string]any) {
	if s.notifier == nil {
		return
	}
	msg := events.NewMessage(entity, action, id, extra)
	msg.ActorID = actor.ID
	s.notifier.Broadcast(msg)
}

// requireTitle trims title and reports an INVALID_ARGUMENT error when empty.
func requireTitle(title string) (string, *Error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", newError(CodeInvalidArgument, "Title is required",
			ErrorDetail{Field: "title", Message: "must not be empty"})
	}
	return title, nil
}

func validatePeriod(month, year int) *Error {
	var details []ErrorDetail
	if month < 1 || month > 12 {
		details = append(details, ErrorDetail{Field: "month", Message: "must be between 1 and 12"})
	}
	if year <= 0 {
		details = append(details, ErrorDetail{Field: "year", Message: "must be positive"})
	}
	if len(details) > 0 {
		return newError(CodeInvalidArgument, "Invalid period", details...)
	}
	return nil
}

// Me returns the caller's own profile.
func (s *Service) Me(ctx context.Context) Result[model.User] {
	s.sim.roundTrip()
	u, err := s.authenticate(ctx, "me")
	if err != nil {
		return Fail[model.User](err)
	}
	return OK(u)
}
