package v1

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

func parseBearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if len(h) < len("Bearer ") || !strings.EqualFold(h[:len("Bearer ")], "Bearer ") {
		return "", false
	}
	tok := strings.TrimSpace(h[len("Bearer "):])
	return tok, tok != ""
}

// authJWT returns a middleware that enforces Authorization: Bearer JWT (HS256)
// when a secret is configured, or nil when auth is disabled.
// Issuer and audience are checked only when set.
func authJWT(opts Options) func(http.Handler) http.Handler {
	secret := strings.TrimSpace(opts.JWTSecret)
	if secret == "" {
		return nil
	}
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if iss := strings.TrimSpace(opts.JWTIssuer); iss != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(iss))
	}
	if aud := strings.TrimSpace(opts.JWTAudience); aud != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(aud))
	}
	parser := jwt.NewParser(parserOpts...)
	keyFunc := func(*jwt.Token) (any, error) { return []byte(secret), nil }

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok, ok := parseBearerToken(r)
			if !ok {
				writeErr(w, http.StatusUnauthorized, "missing bearer token", "unauthorized")
				return
			}
			if _, err := parser.ParseWithClaims(tok, &jwt.RegisteredClaims{}, keyFunc); err != nil {
				writeErr(w, http.StatusUnauthorized, "invalid token", "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
