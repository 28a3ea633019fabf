// Package report turns journal entries into a trial-balance report.
package report

import (
	"errors"

	"github.com/govalues/decimal"

	"github.com/tinoosan/trialbalance/internal/directory"
	"github.com/tinoosan/trialbalance/internal/ledger"
)

// Row is the per-account line of a report. Balance is always Debit - Credit.
type Row struct {
	Account     string
	Description string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Balance     decimal.Decimal
}

// Report is the result of Aggregate. Rows are in order of first qualifying
// occurrence of each account; totals are summed over qualifying entries.
type Report struct {
	Rows        []Row
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// Aggregate filters entries and folds them into per-account rows in a single
// pass. Entries for accounts missing from dir are skipped, as is an entry whose
// amounts would overflow decimal precision. It never fails.
func Aggregate(dir directory.Directory, entries []ledger.JournalEntry, f Filter) Report {
	rep := Report{Rows: []Row{}, TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
	index := make(map[string]int)

	for _, e := range entries {
		label, ok := dir.Lookup(e.Account)
		if !ok || !f.admitsAccount(e.Account) || !f.admitsPeriod(e.Period) {
			continue
		}

		net, err := e.Net()
		if err != nil {
			continue
		}
		totalDebit, err1 := rep.TotalDebit.Add(e.Debit)
		totalCredit, err2 := rep.TotalCredit.Add(e.Credit)
		if errors.Join(err1, err2) != nil {
			continue
		}

		i, seen := index[e.Account]
		if !seen {
			rep.Rows = append(rep.Rows, Row{
				Account:     e.Account,
				Description: label,
				Debit:       e.Debit,
				Credit:      e.Credit,
				Balance:     net,
			})
			index[e.Account] = len(rep.Rows) - 1
		} else {
			row := rep.Rows[i]
			debit, err1 := row.Debit.Add(e.Debit)
			credit, err2 := row.Credit.Add(e.Credit)
			balance, err3 := row.Balance.Add(net)
			if errors.Join(err1, err2, err3) != nil {
				continue
			}
			row.Debit, row.Credit, row.Balance = debit, credit, balance
			rep.Rows[i] = row
		}

		rep.TotalDebit, rep.TotalCredit = totalDebit, totalCredit
	}
	return rep
}
