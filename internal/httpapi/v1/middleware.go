package v1

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tinoosan/trialbalance/internal/report"
)

type ctxKey string

const ctxKeyBalance ctxKey = "validatedBalance"

// validateBalance parses GET /v1/balance query params into a report.UserInput
// and stores it in the request context for the handler to use.
//
// Either q carries a whole input line ("7000 8000 AUG-16 SEP-16 CSV") or the
// individual params are used, in which case format defaults to JSON.
func (s *Server) validateBalance() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			query := balanceQuery{
				Line:         q.Get("q"),
				StartAccount: q.Get("start_account"),
				EndAccount:   q.Get("end_account"),
				StartPeriod:  q.Get("start_period"),
				EndPeriod:    q.Get("end_period"),
				Format:       q.Get("format"),
			}
			if err := s.validate.Struct(query); err != nil {
				badRequest(w, validationMessage(err))
				return
			}

			var in report.UserInput
			if strings.TrimSpace(query.Line) != "" {
				in = report.ParseInputLine(query.Line)
			} else {
				in = report.UserInput{
					StartAccount: query.StartAccount,
					EndAccount:   query.EndAccount,
					StartPeriod:  query.StartPeriod,
					EndPeriod:    query.EndPeriod,
					Format:       report.FormatJSON,
				}
				if query.Format != "" {
					in.Format, _ = report.ParseFormat(query.Format)
				}
			}
			ctx := context.WithValue(r.Context(), ctxKeyBalance, in)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// limitExports applies the export rate limit to CSV and HTML renders only.
func (s *Server) limitExports(next http.Handler) http.Handler {
	if s.exportLimit == nil {
		return next
	}
	limited := s.exportLimit(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch balanceInput(r.Context()).Format {
		case report.FormatCSV, report.FormatHTML:
			limited.ServeHTTP(w, r)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

func balanceInput(ctx context.Context) report.UserInput {
	in, _ := ctx.Value(ctxKeyBalance).(report.UserInput)
	return in
}

func validationMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, "invalid "+fieldParam(fe.Field()))
	}
	return strings.Join(msgs, "; ")
}

func fieldParam(field string) string {
	switch field {
	case "Line":
		return "q"
	case "StartAccount":
		return "start_account"
	case "EndAccount":
		return "end_account"
	case "StartPeriod":
		return "start_period"
	case "EndPeriod":
		return "end_period"
	case "Format":
		return "format"
	default:
		return strings.ToLower(field)
	}
}
