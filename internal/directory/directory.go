// Package directory maps account codes to their display labels.
package directory

import "github.com/tinoosan/trialbalance/internal/ledger"

// Directory is an immutable code -> label lookup built from a chart of accounts.
type Directory struct {
	labels map[string]string
}

// Build indexes the chart in a single pass. A code that appears more than once
// keeps the label of its last occurrence.
func Build(accounts []ledger.Account) Directory {
	labels := make(map[string]string, len(accounts))
	for _, a := range accounts {
		labels[a.Code] = a.Label
	}
	return Directory{labels: labels}
}

// Lookup returns the label for code and whether the code is known.
func (d Directory) Lookup(code string) (string, bool) {
	label, ok := d.labels[code]
	return label, ok
}

// Len is the number of distinct codes.
func (d Directory) Len() int { return len(d.labels) }
