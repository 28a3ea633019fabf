package ledger

import (
	"time"

	"github.com/govalues/decimal"
)

// Account is a line of the chart of accounts. Code is its identity.
type Account struct {
	Code  string
	Label string
}

// JournalEntry is a single posted debit/credit line against one account.
type JournalEntry struct {
	Account string
	// Period is the posting date; only day-level precision is meaningful.
	Period time.Time
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// Net returns debit minus credit for the entry.
func (e JournalEntry) Net() (decimal.Decimal, error) {
	return e.Debit.Sub(e.Credit)
}
