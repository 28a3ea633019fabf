// Package export renders trial-balance reports as CSV or HTML.
package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/tinoosan/trialbalance/internal/report"
)

// Columns is the fixed column order of every tabular export.
var Columns = []string{"ACCOUNT", "DESCRIPTION", "DEBIT", "CREDIT", "BALANCE"}

// WriteCSV writes a header line followed by one line per row, in report order.
func WriteCSV(w io.Writer, rep report.Report) error {
	buf := bufio.NewWriter(w)
	cw := csv.NewWriter(buf)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rep.Rows {
		if err := cw.Write(Record(row)); err != nil {
			return fmt.Errorf("write csv row %s: %w", row.Account, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return buf.Flush()
}

// Record lays a row out in Columns order.
func Record(row report.Row) []string {
	return []string{
		row.Account,
		row.Description,
		row.Debit.String(),
		row.Credit.String(),
		row.Balance.String(),
	}
}
