package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/familyflow/internal/model"
)

var (
	ErrChildNotFound       = errors.New("child not found")
	ErrParentNotFound      = errors.New("parent not found")
	ErrChoreNotFound       = errors.New("chore not found")
	ErrTaskNotFound        = errors.New("bonus task not found")
	ErrTaskUnavailable     = errors.New("bonus task not available")
	ErrAlreadyReserved     = errors.New("bonus task already reserved")
	ErrTaskReserved        = errors.New("bonus task is reserved")
	ErrReservationNotFound = errors.New("reservation not found")
)

// Store is the in-memory family repository. All mutations take the write lock
// for their whole read-check-write, so invariants hold under concurrent use.
// Every value handed out is a clone.
type Store struct {
	mu           sync.RWMutex
	users        []model.User
	chores       []model.Chore
	tasks        []model.BonusTask
	reservations []model.TaskReservation

	now   func() time.Time
	newID func() string
}

type Option func(*Store)

// WithClock overrides the time source used for completion and reservation stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDFunc overrides the id generator for created chores and bonus tasks.
func WithIDFunc(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// New creates a store holding a copy of seed.
func New(seed Seed, opts ...Option) *Store {
	s := &Store{
		users:        cloneAll(seed.Users, model.User.Clone),
		chores:       cloneAll(seed.Chores, model.Chore.Clone),
		tasks:        cloneAll(seed.BonusTasks, model.BonusTask.Clone),
		reservations: cloneAll(seed.Reservations, model.TaskReservation.Clone),
		now:          time.Now,
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func cloneAll[T any](in []T, clone func(T) T) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		out = append(out, clone(v))
	}
	return out
}

func filterClone[T any](in []T, keep func(T) bool, clone func(T) T) []T {
	out := []T{}
	for _, v := range in {
		if keep(v) {
			out = append(out, clone(v))
		}
	}
	return out
}

// timestamp returns the current time as a fresh pointer.
func (s *Store) timestamp() *time.Time {
	t := s.now()
	return &t
}
