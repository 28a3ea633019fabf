// Package csvfile reads a chart of accounts and a journal from CSV files.
//
// The chart needs ACCOUNT and LABEL columns; the journal needs ACCOUNT,
// PERIOD, DEBIT and CREDIT. Columns are located by header name (case
// insensitive) so extra columns are ignored.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/govalues/decimal"

	"github.com/tinoosan/trialbalance/internal/errs"
	"github.com/tinoosan/trialbalance/internal/ledger"
	"github.com/tinoosan/trialbalance/internal/report"
)

// Source reads both files on every call so edits are picked up without a restart.
type Source struct {
	chartPath   string
	journalPath string
}

// Open checks that both files exist and returns a Source over them.
func Open(chartPath, journalPath string) (*Source, error) {
	for _, p := range []string{chartPath, journalPath} {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("csv source %s: %w", p, err)
		}
	}
	return &Source{chartPath: chartPath, journalPath: journalPath}, nil
}

// Ready verifies both files are still readable.
func (s *Source) Ready(_ context.Context) error {
	for _, p := range []string{s.chartPath, s.journalPath} {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("%w: %v", errs.ErrUnavailable, err)
		}
	}
	return nil
}

func (s *Source) ListAccounts(ctx context.Context) ([]ledger.Account, error) {
	f, err := os.Open(s.chartPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadAccounts(ctx, f)
}

func (s *Source) ListEntries(ctx context.Context) ([]ledger.JournalEntry, error) {
	f, err := os.Open(s.journalPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadEntries(ctx, f)
}

// ReadAccounts parses a chart CSV.
func ReadAccounts(ctx context.Context, r io.Reader) ([]ledger.Account, error) {
	out := make([]ledger.Account, 0)
	err := scan(ctx, r, []string{"ACCOUNT", "LABEL"}, func(line int, col func(string) string) error {
		code := col("ACCOUNT")
		if code == "" {
			return lineErr(line, "ACCOUNT is required")
		}
		out = append(out, ledger.Account{Code: code, Label: col("LABEL")})
		return nil
	})
	return out, err
}

// ReadEntries parses a journal CSV, keeping file order. Empty amounts read as zero.
func ReadEntries(ctx context.Context, r io.Reader) ([]ledger.JournalEntry, error) {
	out := make([]ledger.JournalEntry, 0)
	err := scan(ctx, r, []string{"ACCOUNT", "PERIOD", "DEBIT", "CREDIT"}, func(line int, col func(string) string) error {
		e := ledger.JournalEntry{Account: col("ACCOUNT")}
		if e.Account == "" {
			return lineErr(line, "ACCOUNT is required")
		}
		period, ok := report.ParsePeriod(col("PERIOD"))
		if !ok {
			return lineErr(line, "invalid PERIOD "+col("PERIOD"))
		}
		e.Period = period
		var err error
		if e.Debit, err = amount(col("DEBIT")); err != nil {
			return lineErr(line, "invalid DEBIT: "+err.Error())
		}
		if e.Credit, err = amount(col("CREDIT")); err != nil {
			return lineErr(line, "invalid CREDIT: "+err.Error())
		}
		out = append(out, e)
		return nil
	})
	return out, err
}

func amount(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.Parse(raw)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if d.IsNeg() {
		return decimal.Decimal{}, errors.New("must not be negative")
	}
	return d, nil
}

// scan reads the header, checks the required columns and calls fn for every
// data line with a column accessor. Line numbers are those of the file.
func scan(ctx context.Context, r io.Reader, required []string, fn func(line int, col func(string) string) error) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: read header: %v", errs.ErrInvalid, err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return fmt.Errorf("%w: missing column %s", errs.ErrInvalid, name)
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %v", errs.ErrInvalid, err)
		}
		line, _ := cr.FieldPos(0)
		col := func(name string) string {
			i := idx[name]
			if i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		if err := fn(line, col); err != nil {
			return err
		}
	}
}

func lineErr(line int, msg string) error {
	return fmt.Errorf("%w: line %d: %s", errs.ErrInvalid, line, msg)
}
