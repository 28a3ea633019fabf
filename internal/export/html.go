package export

import (
	"html/template"
	"io"

	"github.com/tinoosan/trialbalance/internal/report"
)

var htmlTemplate = template.Must(template.New("balance").Parse(`<div class="output">
<p>
Total Debit: {{.TotalDebit}} Total Credit: {{.TotalCredit}}
<br />
Balance from account {{.StartAccount}} to {{.EndAccount}} from period {{.StartPeriod}} to {{.EndPeriod}}
</p>
<table class="table">
<thead>
<tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
</thead>
<tbody>
{{- range .Rows}}
<tr><th scope="row">{{index . 0}}</th><td>{{index . 1}}</td><td>{{index . 2}}</td><td>{{index . 3}}</td><td>{{index . 4}}</td></tr>
{{- end}}
</tbody>
</table>
</div>
`))

// Summary is the header shown above a rendered report.
type Summary struct {
	TotalDebit   string
	TotalCredit  string
	StartAccount string
	EndAccount   string
	StartPeriod  string
	EndPeriod    string
}

// Summarize describes rep and the filter that produced it. Open bounds are
// shown as the wildcard.
func Summarize(rep report.Report, f report.Filter) Summary {
	return Summary{
		TotalDebit:   rep.TotalDebit.String(),
		TotalCredit:  rep.TotalCredit.String(),
		StartAccount: orWildcard(f.StartAccount),
		EndAccount:   orWildcard(f.EndAccount),
		StartPeriod:  report.FormatPeriod(f.StartPeriod),
		EndPeriod:    report.FormatPeriod(f.EndPeriod),
	}
}

// WriteHTML renders the summary paragraph and the report table.
func WriteHTML(w io.Writer, rep report.Report, f report.Filter) error {
	rows := make([][]string, 0, len(rep.Rows))
	for _, row := range rep.Rows {
		rows = append(rows, Record(row))
	}
	return htmlTemplate.Execute(w, struct {
		Summary
		Columns []string
		Rows    [][]string
	}{Summary: Summarize(rep, f), Columns: Columns, Rows: rows})
}

func orWildcard(s string) string {
	if s == "" {
		return report.Wildcard
	}
	return s
}
