package main

import (
	"errors"
	"testing"

	"github.com/dukerupert/familyflow/internal/service"
)

func noWarn(string, ...any) {}

func TestWithRetryRecoversFromInternal(t *testing.T) {
	calls := 0
	got, err := withRetry(3, noWarn, func() service.Result[int] {
		calls++
		if calls < 3 {
			return service.Fail[int](nil)
		}
		return service.OK(42)
	})
	if err != nil {
		t.Fatalf("withRetry: %v", err)
	}
	if got != 42 {
		t.Errorf("got %d, want 42", got)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestWithRetryGivesUp(t *testing.T) {
	calls := 0
	_, err := withRetry(2, noWarn, func() service.Result[int] {
		calls++
		return service.Fail[int](nil)
	})
	var serr *service.Error
	if !errors.As(err, &serr) || serr.Code != service.CodeInternal {
		t.Fatalf("err = %v, want INTERNAL", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestWithRetryStopsOnOtherCodes(t *testing.T) {
	calls := 0
	_, err := withRetry(5, noWarn, func() service.Result[int] {
		calls++
		return service.Fail[int](&service.Error{Code: service.CodeForbidden, Message: "no"})
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
