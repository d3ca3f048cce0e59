package http

import (
	"log/slog"
	"net/http"
	"time"

	applog "flowcash/internal/log"
)

type summaryPartialData struct {
	Summary      summaryJSON
	Transactions []transactionJSON
	RangeLabel   string
}

var rangeLabels = map[string]string{
	"today":  "Hoje",
	"7days":  "Últimos 7 dias",
	"30days": "Últimos 30 dias",
	"1year":  "Último ano",
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", applog.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	data := struct {
		Today string
	}{
		Today: s.formatter.Date(time.Now()),
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", applog.FieldError, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleSummaryPartial renders the dashboard fragment swapped in by HTMX.
func (s *Server) handleSummaryPartial(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	view, err := parseView(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Período inválido</div>`))
		return
	}

	visible, sum, err := s.transactions.View(r.Context(), requestUserID(r), view, time.Now())
	if err != nil {
		slog.ErrorContext(r.Context(), "Summary partial failed", applog.FieldError, err)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Não foi possível carregar o resumo</div>`))
		return
	}

	data := summaryPartialData{
		Summary:      s.summaryJSON(sum),
		Transactions: make([]transactionJSON, len(visible)),
		RangeLabel:   rangeLabels[string(view.Range)],
	}
	for i, tx := range visible {
		data.Transactions[i] = s.transactionJSON(tx)
	}
	// A picked calendar day labels the fragment with the date itself.
	if !view.Date.IsZero() {
		data.RangeLabel = s.formatter.Date(view.Date)
	}

	if err := s.templates.ExecuteTemplate(w, "summary.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Summary template execution failed", applog.FieldError, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
