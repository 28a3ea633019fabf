package report

import "time"

// Filter narrows the entries that contribute to a report. The zero Filter
// admits every entry whose account is in the directory.
//
// Account bounds compare raw codes lexicographically; an empty bound is open.
// Period bounds are inclusive; a nil or zero time is open, which is how a
// wildcard or unparseable period from the input layer arrives here.
type Filter struct {
	StartAccount string
	EndAccount   string
	StartPeriod  *time.Time
	EndPeriod    *time.Time
}

func (f Filter) admitsAccount(code string) bool {
	if f.StartAccount != "" && code < f.StartAccount {
		return false
	}
	if f.EndAccount != "" && code > f.EndAccount {
		return false
	}
	return true
}

func (f Filter) admitsPeriod(period time.Time) bool {
	if bounded(f.StartPeriod) && period.Before(*f.StartPeriod) {
		return false
	}
	if bounded(f.EndPeriod) && period.After(*f.EndPeriod) {
		return false
	}
	return true
}

func bounded(t *time.Time) bool { return t != nil && !t.IsZero() }
