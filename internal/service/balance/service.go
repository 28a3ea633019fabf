// Package balance loads the ledger from a source and produces trial-balance reports.
package balance

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/tinoosan/trialbalance/internal/directory"
	"github.com/tinoosan/trialbalance/internal/ledger"
	"github.com/tinoosan/trialbalance/internal/report"
)

// Source defines the read operations the service needs from a ledger store.
// ListEntries must return entries in posting order.
type Source interface {
	ListAccounts(ctx context.Context) ([]ledger.Account, error)
	ListEntries(ctx context.Context) ([]ledger.JournalEntry, error)
}

// Service exposes report generation over a ledger source.
type Service interface {
	Report(ctx context.Context, f report.Filter) (report.Report, error)
	Accounts(ctx context.Context) ([]ledger.Account, error)
}

type service struct {
	src Source
	log *slog.Logger
}

func New(src Source, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{src: src, log: logger}
}

// Report reads the chart and the journal concurrently, then aggregates.
// Only source failures are returned; aggregation itself cannot fail.
func (s *service) Report(ctx context.Context, f report.Filter) (report.Report, error) {
	var (
		accounts []ledger.Account
		entries  []ledger.JournalEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if accounts, err = s.src.ListAccounts(gctx); err != nil {
			return fmt.Errorf("list accounts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if entries, err = s.src.ListEntries(gctx); err != nil {
			return fmt.Errorf("list entries: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return report.Report{}, err
	}

	dir := directory.Build(accounts)
	rep := report.Aggregate(dir, entries, f)
	s.log.Debug("report built",
		"accounts", dir.Len(),
		"entries", len(entries),
		"rows", len(rep.Rows),
		"start_account", f.StartAccount,
		"end_account", f.EndAccount,
		"start_period", report.FormatPeriod(f.StartPeriod),
		"end_period", report.FormatPeriod(f.EndPeriod),
	)
	return rep, nil
}

func (s *service) Accounts(ctx context.Context) ([]ledger.Account, error) {
	return s.src.ListAccounts(ctx)
}
