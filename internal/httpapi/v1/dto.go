package v1

import (
	"github.com/tinoosan/trialbalance/internal/ledger"
	"github.com/tinoosan/trialbalance/internal/report"
)

// balanceQuery holds raw query params for GET /v1/balance.
type balanceQuery struct {
	Line         string `validate:"omitempty,max=256"`
	StartAccount string `validate:"omitempty,max=64"`
	EndAccount   string `validate:"omitempty,max=64"`
	StartPeriod  string `validate:"omitempty,max=32"`
	EndPeriod    string `validate:"omitempty,max=32"`
	Format       string `validate:"omitempty,oneof=csv html json CSV HTML JSON"`
}

type balanceRow struct {
	Account     string `json:"account"`
	Description string `json:"description"`
	Debit       string `json:"debit"`
	Credit      string `json:"credit"`
	Balance     string `json:"balance"`
}

type balanceFilter struct {
	StartAccount string `json:"start_account"`
	EndAccount   string `json:"end_account"`
	StartPeriod  string `json:"start_period"`
	EndPeriod    string `json:"end_period"`
}

type balanceResponse struct {
	ReportID    string        `json:"report_id"`
	Filter      balanceFilter `json:"filter"`
	Rows        []balanceRow  `json:"rows"`
	TotalDebit  string        `json:"total_debit"`
	TotalCredit string        `json:"total_credit"`
}

type accountResponse struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

type listAccountsResponse struct {
	Items []accountResponse `json:"items"`
}

func toBalanceResponse(id string, rep report.Report, f report.Filter) balanceResponse {
	rows := make([]balanceRow, 0, len(rep.Rows))
	for _, r := range rep.Rows {
		rows = append(rows, balanceRow{
			Account:     r.Account,
			Description: r.Description,
			Debit:       r.Debit.String(),
			Credit:      r.Credit.String(),
			Balance:     r.Balance.String(),
		})
	}
	return balanceResponse{
		ReportID: id,
		Filter: balanceFilter{
			StartAccount: orWildcard(f.StartAccount),
			EndAccount:   orWildcard(f.EndAccount),
			StartPeriod:  report.FormatPeriod(f.StartPeriod),
			EndPeriod:    report.FormatPeriod(f.EndPeriod),
		},
		Rows:        rows,
		TotalDebit:  rep.TotalDebit.String(),
		TotalCredit: rep.TotalCredit.String(),
	}
}

func toAccountsResponse(accs []ledger.Account) listAccountsResponse {
	items := make([]accountResponse, 0, len(accs))
	for _, a := range accs {
		items = append(items, accountResponse{Code: a.Code, Label: a.Label})
	}
	return listAccountsResponse{Items: items}
}

func orWildcard(s string) string {
	if s == "" {
		return report.Wildcard
	}
	return s
}
