package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dukerupert/familyflow/internal/auth"
	"github.com/dukerupert/familyflow/internal/config"
	"github.com/dukerupert/familyflow/internal/events"
	"github.com/dukerupert/familyflow/internal/ledger"
	"github.com/dukerupert/familyflow/internal/logging"
	"github.com/dukerupert/familyflow/internal/service"
	"github.com/dukerupert/familyflow/internal/store"
)

const (
	parentUsername = "parent.alex"
	childUsername  = "child.sam"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	now := time.Now()
	st := store.New(store.DemoSeed(now))
	hub := events.NewHub(logger)
	svc := service.New(st, cfg.Service, logger, service.WithNotifier(hub))
	a := &app{cfg: cfg, logger: logger, store: st, hub: hub, svc: svc, now: now}

	switch os.Args[1] {
	case "summary":
		fs := flag.NewFlagSet("summary", flag.ExitOnError)
		month, year := periodFlags(fs, now)
		fs.Parse(os.Args[2:])
		err = a.summary(*month, *year)

	case "close":
		fs := flag.NewFlagSet("close", flag.ExitOnError)
		month, year := periodFlags(fs, now)
		fs.Parse(os.Args[2:])
		err = a.closeMonth(*month, *year)

	case "history":
		fs := flag.NewFlagSet("history", flag.ExitOnError)
		child := fs.String("child", childUsername, "Username of the child")
		fs.Parse(os.Args[2:])
		err = a.history(*child)

	case "demo":
		fs := flag.NewFlagSet("demo", flag.ExitOnError)
		child := fs.String("child", childUsername, "Username of the child to play")
		retries := fs.Int("retries", 3, "Attempts for calls that fail transiently")
		fs.Parse(os.Args[2:])
		err = a.demo(*child, *retries)

	default:
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		slog.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Family Flow")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  familyflow summary [-month M] [-year Y]   Show every child's allowance for a month")
	fmt.Println("  familyflow close   [-month M] [-year Y]   Record the month's allowance in the payout ledger")
	fmt.Println("  familyflow history [-child USERNAME]      Show a child's recorded payouts")
	fmt.Println("  familyflow demo    [-child USERNAME]      Play through a child's month and watch change events")
}

func periodFlags(fs *flag.FlagSet, now time.Time) (*int, *int) {
	month := fs.Int("month", int(now.Month()), "Month (1-12)")
	year := fs.Int("year", now.Year(), "Year")
	return month, year
}

type app struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *store.Store
	hub    *events.Hub
	svc    *service.Service
	now    time.Time
}

// signIn stands in for a login: it puts the seeded user on the context.
func (a *app) signIn(username string) (context.Context, error) {
	for _, u := range a.store.ListUsers() {
		if u.Username == username {
			return auth.WithUser(context.Background(), u), nil
		}
	}
	return nil, fmt.Errorf("no user named %q", username)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) summary(month, year int) error {
	ctx, err := a.signIn(parentUsername)
	if err != nil {
		return err
	}
	return printJSON(a.svc.ListMonthlySummaries(ctx, month, year))
}

func (a *app) closeMonth(month, year int) error {
	ctx, err := a.signIn(parentUsername)
	if err != nil {
		return err
	}
	parent, _ := auth.FromContext(ctx)

	rows, rerr := a.svc.ListMonthlySummaries(ctx, month, year).Unwrap()
	if rerr != nil {
		return fmt.Errorf("list monthly summaries: %w", rerr)
	}

	db, err := ledger.Open(a.cfg.LedgerPath)
	if err != nil {
		return err
	}
	defer db.Close()

	payouts := ledger.NewPayoutStore(db)
	if err := payouts.Record(month, year, parent.ID, time.Now(), rows); err != nil {
		return fmt.Errorf("record payouts: %w", err)
	}
	a.logger.Info("month closed", "month", month, "year", year, "children", len(rows), "ledger", a.cfg.LedgerPath)

	recorded, err := payouts.ListByMonth(month, year)
	if err != nil {
		return fmt.Errorf("list payouts: %w", err)
	}
	return printJSON(recorded)
}

func (a *app) history(username string) error {
	ctx, err := a.signIn(username)
	if err != nil {
		return err
	}
	child, _ := auth.FromContext(ctx)
	if !child.IsChild() {
		return fmt.Errorf("%q is not a child", username)
	}

	db, err := ledger.Open(a.cfg.LedgerPath)
	if err != nil {
		return err
	}
	defer db.Close()

	payouts := ledger.NewPayoutStore(db)
	list, err := payouts.ListByChild(child.ID)
	if err != nil {
		return fmt.Errorf("list payouts: %w", err)
	}
	total, err := payouts.TotalPaid(child.ID)
	if err != nil {
		return fmt.Errorf("total paid: %w", err)
	}
	return printJSON(map[string]any{
		"child":      child.DisplayName,
		"payouts":    list,
		"total_paid": total,
	})
}
