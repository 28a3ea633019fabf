// Package postgres provides a pgx-backed ledger source for trial-balance reports.
//
// It only reads. The schema lives under db/migrations. Amounts are stored as
// minor units with their currency and converted back through govalues/money.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/govalues/money"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tinoosan/trialbalance/internal/ledger"
)

// Store holds a pgx connection pool. All methods are safe for concurrent use.
type Store struct {
	pool *pgxpool.Pool
}

// Open establishes a pgx pool using the provided connection string.
func Open(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ready pings the pool to verify connectivity.
func (s *Store) Ready(ctx context.Context) error { return s.pool.Ping(ctx) }

// ListAccounts returns the chart of accounts.
func (s *Store) ListAccounts(ctx context.Context) ([]ledger.Account, error) {
	rows, err := s.pool.Query(ctx, `select code, label from accounts order by code`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (ledger.Account, error) {
		var a ledger.Account
		err := row.Scan(&a.Code, &a.Label)
		return a, err
	})
}

// ListEntries returns the journal in posting (id) order.
func (s *Store) ListEntries(ctx context.Context) ([]ledger.JournalEntry, error) {
	rows, err := s.pool.Query(ctx, `
        select account, period, currency, debit_minor, credit_minor
        from journal_entries
        order by id asc
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ledger.JournalEntry, 0)
	for rows.Next() {
		var (
			e             ledger.JournalEntry
			period        time.Time
			curr          string
			debit, credit int64
		)
		if err := rows.Scan(&e.Account, &period, &curr, &debit, &credit); err != nil {
			return nil, err
		}
		e.Period = period.UTC()
		d, err := money.NewAmountFromMinorUnits(curr, debit)
		if err != nil {
			return nil, fmt.Errorf("entry %s debit: %w", e.Account, err)
		}
		c, err := money.NewAmountFromMinorUnits(curr, credit)
		if err != nil {
			return nil, fmt.Errorf("entry %s credit: %w", e.Account, err)
		}
		e.Debit, e.Credit = d.Decimal(), c.Decimal()
		out = append(out, e)
	}
	return out, rows.Err()
}

// SeedDev inserts a small chart and journal for quick local testing.
// Accounts are upserted; journal rows are appended on every call.
func (s *Store) SeedDev(ctx context.Context, accounts []ledger.Account, entries []ledger.JournalEntry, currency string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()
	for _, a := range accounts {
		if _, err := tx.Exec(ctx, `
            insert into accounts (code, label) values ($1, $2)
            on conflict (code) do update set label = excluded.label
        `, a.Code, a.Label); err != nil {
			return err
		}
	}
	curr, err := money.ParseCurr(currency)
	if err != nil {
		return err
	}
	for _, e := range entries {
		dm, err := minorUnits(curr, e.Debit.String())
		if err != nil {
			return fmt.Errorf("seed debit: %w", err)
		}
		cm, err := minorUnits(curr, e.Credit.String())
		if err != nil {
			return fmt.Errorf("seed credit: %w", err)
		}
		if _, err := tx.Exec(ctx, `
            insert into journal_entries (account, period, currency, debit_minor, credit_minor)
            values ($1, $2, $3, $4, $5)
        `, e.Account, e.Period, curr.Code(), dm, cm); err != nil {
			return fmt.Errorf("insert entry: %w", err)
		}
	}
	return tx.Commit(ctx)
}

func minorUnits(curr money.Currency, amount string) (int64, error) {
	a, err := money.ParseAmount(curr.Code(), amount)
	if err != nil {
		return 0, err
	}
	m, ok := a.MinorUnits()
	if !ok {
		return 0, fmt.Errorf("amount %s out of range", amount)
	}
	return m, nil
}
