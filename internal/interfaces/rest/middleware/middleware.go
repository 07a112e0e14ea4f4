// Package middleware holds the HTTP middleware chain. Every middleware
// is a func(http.Handler) http.Handler so main can compose them in order.
package middleware

import (
	"fmt"
	"net/http"
)

// writeErrorEnvelope writes the API error envelope without depending on
// the handlers package.
func writeErrorEnvelope(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"success":false,"error":{"code":%q,"message":%q}}`, code, message)
}
