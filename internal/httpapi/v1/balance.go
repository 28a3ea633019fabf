package v1

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/tinoosan/trialbalance/internal/errs"
	"github.com/tinoosan/trialbalance/internal/export"
	"github.com/tinoosan/trialbalance/internal/report"
)

// GET /v1/balance?start_account=&end_account=&start_period=&end_period=&format=
// GET /v1/balance?q=START END PERIOD PERIOD FORMAT
func (s *Server) getBalance(w http.ResponseWriter, r *http.Request) {
	in := balanceInput(r.Context())
	if !in.Ready() {
		// nothing to show until a format and both periods are chosen
		w.WriteHeader(http.StatusNoContent)
		return
	}
	f := in.Filter()
	rep, err := s.svc.Report(r.Context(), f)
	if err != nil {
		s.log.Error("build report", "req_id", chimw.GetReqID(r.Context()), "err", err)
		sourceErr(w, err)
		return
	}

	id := uuid.NewString()
	w.Header().Set("X-Report-ID", id)
	reportsTotal.WithLabelValues(strings.ToLower(string(in.Format))).Inc()
	reportRows.Observe(float64(len(rep.Rows)))

	buf := &bytes.Buffer{}
	switch in.Format {
	case report.FormatCSV:
		if err := export.WriteCSV(buf, rep); err != nil {
			s.log.Error("render csv", "report_id", id, "err", err)
			writeErr(w, http.StatusInternalServerError, "render failed", "internal")
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename=trial_balance.csv")
	case report.FormatHTML:
		if err := export.WriteHTML(buf, rep, f); err != nil {
			s.log.Error("render html", "report_id", id, "err", err)
			writeErr(w, http.StatusInternalServerError, "render failed", "internal")
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	default:
		toJSON(w, http.StatusOK, toBalanceResponse(id, rep, f))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// GET /v1/accounts
func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	accs, err := s.svc.Accounts(r.Context())
	if err != nil {
		s.log.Error("list accounts", "req_id", chimw.GetReqID(r.Context()), "err", err)
		sourceErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, toAccountsResponse(accs))
}

// sourceErr maps ledger source failures onto HTTP statuses.
func sourceErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrUnavailable):
		writeErr(w, http.StatusServiceUnavailable, "ledger source unavailable", "unavailable")
	case errors.Is(err, errs.ErrInvalid):
		unprocessable(w, err.Error(), "invalid_ledger_data")
	case errors.Is(err, errs.ErrNotFound):
		notFound(w)
	default:
		writeErr(w, http.StatusInternalServerError, "internal error", "internal")
	}
}
