package report

import (
	"strings"
	"time"
)

// Wildcard is the token users type for an open bound.
const Wildcard = "*"

// Format selects how a report is rendered.
type Format string

const (
	FormatNone Format = ""
	FormatCSV  Format = "CSV"
	FormatHTML Format = "HTML"
	FormatJSON Format = "JSON"
)

// ParseFormat is case-insensitive. Unknown values yield FormatNone, false.
func ParseFormat(s string) (Format, bool) {
	switch f := Format(strings.ToUpper(strings.TrimSpace(s))); f {
	case FormatCSV, FormatHTML, FormatJSON:
		return f, true
	default:
		return FormatNone, false
	}
}

// PeriodLayouts lists the accepted period spellings, tried in order.
// "Jan-06" matches the month-year codes used in journals (AUG-16).
var PeriodLayouts = []string{
	"Jan-06",
	"2006-01-02",
	"2006-01",
	time.RFC3339,
}

// ParsePeriod parses raw with PeriodLayouts. Empty input, the wildcard and
// anything unparseable return ok=false, meaning "no bound".
func ParsePeriod(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == Wildcard {
		return time.Time{}, false
	}
	for _, layout := range PeriodLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// FormatPeriod renders a period the way users type it (AUG-16).
// A nil or zero period renders as the wildcard.
func FormatPeriod(t *time.Time) string {
	if !bounded(t) {
		return Wildcard
	}
	return strings.ToUpper(t.Format("Jan-06"))
}

// UserInput is the raw filter a user supplies before any parsing.
type UserInput struct {
	StartAccount string
	EndAccount   string
	StartPeriod  string
	EndPeriod    string
	Format       Format
}

// ParseInputLine reads "START_ACCOUNT END_ACCOUNT START_PERIOD END_PERIOD FORMAT".
// Missing trailing fields stay empty; an unknown format is left as FormatNone.
func ParseInputLine(line string) UserInput {
	fields := strings.Fields(line)
	field := func(i int) string {
		if i < len(fields) {
			return fields[i]
		}
		return ""
	}
	in := UserInput{
		StartAccount: field(0),
		EndAccount:   field(1),
		StartPeriod:  field(2),
		EndPeriod:    field(3),
	}
	in.Format, _ = ParseFormat(field(4))
	return in
}

// Ready reports whether there is anything to show. A format and both period
// fields must be present; the wildcard counts as present.
func (in UserInput) Ready() bool {
	return in.Format != FormatNone &&
		strings.TrimSpace(in.StartPeriod) != "" &&
		strings.TrimSpace(in.EndPeriod) != ""
}

// Filter converts the raw input into a Filter.
func (in UserInput) Filter() Filter {
	f := Filter{
		StartAccount: accountBound(in.StartAccount),
		EndAccount:   accountBound(in.EndAccount),
	}
	if t, ok := ParsePeriod(in.StartPeriod); ok {
		f.StartPeriod = &t
	}
	if t, ok := ParsePeriod(in.EndPeriod); ok {
		f.EndPeriod = &t
	}
	return f
}

func accountBound(s string) string {
	s = strings.TrimSpace(s)
	if s == Wildcard {
		return ""
	}
	return s
}
