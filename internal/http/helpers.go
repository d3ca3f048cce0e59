package http

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"flowcash/internal/core"
)

// parseView extracts the display window from query parameters. An explicit
// date wins over a range tag; with neither, the view is today's. Dates are
// calendar days in the server's local zone, matching the filter anchors.
func parseView(r *http.Request) (core.View, error) {
	q := r.URL.Query()

	if v := strings.TrimSpace(q.Get("date")); v != "" {
		d, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			return core.View{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", v)
		}
		// When the chosen date is the current day the dashboard falls back
		// to the rolling today window.
		return core.View{Date: d, Range: core.RangeToday}, nil
	}

	// Unknown range tags pass through and show everything, matching the
	// filter's behavior.
	rng := core.TimeRange(strings.TrimSpace(q.Get("range")))
	if rng == "" {
		rng = core.RangeToday
	}
	return core.View{Range: rng}, nil
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON reads a bounded JSON body into dst.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}
