package v1

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"github.com/tinoosan/trialbalance/internal/errs"
	"github.com/tinoosan/trialbalance/internal/ledger"
	"github.com/tinoosan/trialbalance/internal/storage/memory"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func seededStore() *memory.Store {
	store := memory.New()
	store.SeedAccount(ledger.Account{Code: "100", Label: "Cash"})
	store.SeedAccount(ledger.Account{Code: "200", Label: "Revenue"})
	store.SeedEntry(ledger.JournalEntry{Account: "100", Period: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), Debit: decimal.MustParse("50"), Credit: decimal.Zero})
	store.SeedEntry(ledger.JournalEntry{Account: "200", Period: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), Debit: decimal.Zero, Credit: decimal.MustParse("50")})
	store.SeedEntry(ledger.JournalEntry{Account: "300", Period: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), Debit: decimal.MustParse("10"), Credit: decimal.Zero})
	return store
}

func setup(t *testing.T, opts Options) http.Handler {
	t.Helper()
	return New(seededStore(), testLogger(), opts).Handler()
}

func get(h http.Handler, target string, hdr ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type balanceResp struct {
	ReportID string `json:"report_id"`
	Filter   struct {
		StartAccount string `json:"start_account"`
		EndAccount   string `json:"end_account"`
		StartPeriod  string `json:"start_period"`
		EndPeriod    string `json:"end_period"`
	} `json:"filter"`
	Rows []struct {
		Account     string `json:"account"`
		Description string `json:"description"`
		Debit       string `json:"debit"`
		Credit      string `json:"credit"`
		Balance     string `json:"balance"`
	} `json:"rows"`
	TotalDebit  string `json:"total_debit"`
	TotalCredit string `json:"total_credit"`
}

type errResp struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func decodeBalance(t *testing.T, rec *httptest.ResponseRecorder) balanceResp {
	t.Helper()
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var br balanceResp
	if err := json.Unmarshal(rec.Body.Bytes(), &br); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return br
}

func TestBalance_JSONUnfiltered(t *testing.T) {
	h := setup(t, Options{})
	rec := get(h, "/v1/balance?start_period=*&end_period=*")
	br := decodeBalance(t, rec)

	if len(br.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %+v", br.Rows)
	}
	if br.Rows[0].Account != "100" || br.Rows[0].Description != "Cash" || br.Rows[0].Balance != "50" {
		t.Fatalf("unexpected first row: %+v", br.Rows[0])
	}
	if br.Rows[1].Account != "200" || br.Rows[1].Balance != "-50" {
		t.Fatalf("unexpected second row: %+v", br.Rows[1])
	}
	if br.TotalDebit != "50" || br.TotalCredit != "50" {
		t.Fatalf("unexpected totals: %s/%s", br.TotalDebit, br.TotalCredit)
	}
	if br.Filter.StartAccount != "*" || br.Filter.StartPeriod != "*" {
		t.Fatalf("unexpected filter echo: %+v", br.Filter)
	}
	if _, err := uuid.Parse(rec.Header().Get("X-Report-ID")); err != nil || rec.Header().Get("X-Report-ID") != br.ReportID {
		t.Fatalf("expected report id header to match body, got %q / %q", rec.Header().Get("X-Report-ID"), br.ReportID)
	}
}

func TestBalance_StartAccountFilter(t *testing.T) {
	h := setup(t, Options{})
	br := decodeBalance(t, get(h, "/v1/balance?start_account=150&start_period=2024-01-01&end_period=2024-01-31"))
	if len(br.Rows) != 1 || br.Rows[0].Account != "200" {
		t.Fatalf("expected only account 200, got %+v", br.Rows)
	}
	if br.TotalDebit != "0" || br.TotalCredit != "50" {
		t.Fatalf("unexpected totals: %s/%s", br.TotalDebit, br.TotalCredit)
	}
	if br.Filter.StartPeriod != "JAN-24" || br.Filter.EndPeriod != "JAN-24" {
		t.Fatalf("unexpected period echo: %+v", br.Filter)
	}
}

func TestBalance_PeriodBoundsInclusive(t *testing.T) {
	h := setup(t, Options{})
	br := decodeBalance(t, get(h, "/v1/balance?start_period=2024-01-05&end_period=2024-01-05"))
	if len(br.Rows) != 1 || br.Rows[0].Account != "100" {
		t.Fatalf("expected entry on the boundary day, got %+v", br.Rows)
	}
}

func TestBalance_NothingToShow(t *testing.T) {
	h := setup(t, Options{})
	for _, target := range []string{
		"/v1/balance",
		"/v1/balance?start_period=*",
		"/v1/balance?q=" + url.QueryEscape("100 200 JAN-24 FEB-24"),
	} {
		rec := get(h, target)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("%s: expected 204, got %d", target, rec.Code)
		}
	}
}

func TestBalance_InputLineCSV(t *testing.T) {
	h := setup(t, Options{})
	rec := get(h, "/v1/balance?q="+url.QueryEscape("* * * * CSV"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("unexpected content type %q", ct)
	}
	want := "ACCOUNT,DESCRIPTION,DEBIT,CREDIT,BALANCE\n100,Cash,50,0,50\n200,Revenue,0,50,-50\n"
	if rec.Body.String() != want {
		t.Fatalf("unexpected csv:\n%s", rec.Body.String())
	}
}

func TestBalance_HTML(t *testing.T) {
	h := setup(t, Options{})
	rec := get(h, "/v1/balance?start_account=100&end_account=100&start_period=*&end_period=*&format=html")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Total Debit: 50 Total Credit: 0") {
		t.Fatalf("missing totals in html: %s", body)
	}
	if !strings.Contains(body, "Balance from account 100 to 100 from period * to *") {
		t.Fatalf("missing summary in html: %s", body)
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("expected security headers to be set")
	}
}

func TestBalance_InvalidFormat(t *testing.T) {
	h := setup(t, Options{})
	rec := get(h, "/v1/balance?start_period=*&end_period=*&format=pdf")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var er errResp
	_ = json.Unmarshal(rec.Body.Bytes(), &er)
	if er.Error != "invalid format" {
		t.Fatalf("unexpected error: %+v", er)
	}
}

func TestAccounts_List(t *testing.T) {
	h := setup(t, Options{})
	rec := get(h, "/v1/accounts")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var out struct {
		Items []struct {
			Code  string `json:"code"`
			Label string `json:"label"`
		} `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Items) != 2 || out.Items[0].Code != "100" || out.Items[1].Label != "Revenue" {
		t.Fatalf("unexpected accounts: %+v", out.Items)
	}
}

type brokenSource struct{ *memory.Store }

func (brokenSource) ListEntries(context.Context) ([]ledger.JournalEntry, error) {
	return nil, fmt.Errorf("dial: %w", errs.ErrUnavailable)
}

func (brokenSource) Ready(context.Context) error { return errs.ErrUnavailable }

func TestSourceUnavailable(t *testing.T) {
	h := New(brokenSource{seededStore()}, testLogger(), Options{}).Handler()
	rec := get(h, "/v1/balance?start_period=*&end_period=*")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if rec := get(h, "/readyz"); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz: expected 503, got %d", rec.Code)
	}
	if rec := get(h, "/healthz"); rec.Code != http.StatusOK {
		t.Fatalf("healthz: expected 200, got %d", rec.Code)
	}
}

func TestReadyz(t *testing.T) {
	h := setup(t, Options{})
	if rec := get(h, "/readyz"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := setup(t, Options{})
	_ = get(h, "/v1/balance?start_period=*&end_period=*")
	rec := get(h, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "trialbalance_reports_total") {
		t.Fatalf("expected report counter in metrics output")
	}
}

func signHS256(t *testing.T, secret string, claims jwt.RegisteredClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

func TestAuth(t *testing.T) {
	const secret = "test-secret"
	h := setup(t, Options{JWTSecret: secret, JWTIssuer: "ledger"})
	target := "/v1/balance?start_period=*&end_period=*"

	if rec := get(h, target); rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: expected 401, got %d", rec.Code)
	}

	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))
	good := signHS256(t, secret, jwt.RegisteredClaims{Issuer: "ledger", ExpiresAt: exp})
	if rec := get(h, target, "Authorization", "Bearer "+good); rec.Code != http.StatusOK {
		t.Fatalf("valid token: expected 200, got %d", rec.Code)
	}

	wrongIss := signHS256(t, secret, jwt.RegisteredClaims{Issuer: "other", ExpiresAt: exp})
	if rec := get(h, target, "Authorization", "Bearer "+wrongIss); rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong issuer: expected 401, got %d", rec.Code)
	}

	expired := signHS256(t, secret, jwt.RegisteredClaims{Issuer: "ledger", ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))})
	if rec := get(h, target, "Authorization", "Bearer "+expired); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expired token: expected 401, got %d", rec.Code)
	}

	if rec := get(h, "/healthz"); rec.Code != http.StatusOK {
		t.Fatalf("healthz must stay public, got %d", rec.Code)
	}
}

func TestExportRateLimit(t *testing.T) {
	h := setup(t, Options{ExportRatePerMinute: 1})
	csv := "/v1/balance?start_period=*&end_period=*&format=csv"
	if rec := get(h, csv); rec.Code != http.StatusOK {
		t.Fatalf("first export: expected 200, got %d", rec.Code)
	}
	if rec := get(h, csv); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second export: expected 429, got %d", rec.Code)
	}
	// JSON is not an export and stays unlimited
	for i := 0; i < 3; i++ {
		if rec := get(h, "/v1/balance?start_period=*&end_period=*"); rec.Code != http.StatusOK {
			t.Fatalf("json request %d: expected 200, got %d", i, rec.Code)
		}
	}
}
