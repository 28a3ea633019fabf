package main

import (
	"log/slog"
	"time"

	"github.com/govalues/decimal"

	"github.com/tinoosan/trialbalance/internal/ledger"
)

// devLedger is a small chart and journal for local runs. Account 9999 has
// postings but no chart entry and never shows up in reports.
func devLedger() ([]ledger.Account, []ledger.JournalEntry) {
	accs := []ledger.Account{
		{Code: "1000", Label: "Cash"},
		{Code: "1200", Label: "Accounts receivable"},
		{Code: "4000", Label: "Sales"},
		{Code: "6000", Label: "Rent"},
		{Code: "7000", Label: "Salaries"},
		{Code: "8000", Label: "Utilities"},
	}
	month := func(y int, m time.Month) time.Time { return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC) }
	d := decimal.MustParse
	entries := []ledger.JournalEntry{
		{Account: "1200", Period: month(2016, time.August), Debit: d("1500.00"), Credit: decimal.Zero},
		{Account: "4000", Period: month(2016, time.August), Debit: decimal.Zero, Credit: d("1500.00")},
		{Account: "1000", Period: month(2016, time.August), Debit: d("1500.00"), Credit: decimal.Zero},
		{Account: "1200", Period: month(2016, time.August), Debit: decimal.Zero, Credit: d("1500.00")},
		{Account: "7000", Period: month(2016, time.August), Debit: d("820.00"), Credit: decimal.Zero},
		{Account: "6000", Period: month(2016, time.September), Debit: d("400.00"), Credit: decimal.Zero},
		{Account: "8000", Period: month(2016, time.September), Debit: d("95.40"), Credit: decimal.Zero},
		{Account: "1000", Period: month(2016, time.September), Debit: decimal.Zero, Credit: d("1315.40")},
		{Account: "9999", Period: month(2016, time.September), Debit: d("12.00"), Credit: decimal.Zero},
	}
	return accs, entries
}

func logDevSeed(l *slog.Logger, backend string, accs []ledger.Account, entries []ledger.JournalEntry) {
	codes := make([]string, 0, len(accs))
	for _, a := range accs {
		codes = append(codes, a.Code)
	}
	l.Info("DEV seed ("+backend+")", "accounts", codes, "entries", len(entries))
}
