package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"flowcash/internal/core"
	applog "flowcash/internal/log"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// renderSummaryChart renders the income/expense donut as PNG bytes.
// Income is green, expense red, matching the dashboard cards.
func (s *Server) renderSummaryChart(sum core.Summary) ([]byte, error) {
	if !sum.HasData {
		return nil, fmt.Errorf("no data in the selected window")
	}

	values := []chart.Value{}
	if sum.TotalIncome.Cents > 0 {
		values = append(values, chart.Value{
			Label: "Receitas " + s.formatter.Currency(sum.TotalIncome),
			Value: sum.TotalIncome.Reais(),
			Style: chart.Style{
				FillColor: drawing.ColorFromHex("16a34a"), // green-600
			},
		})
	}
	if sum.TotalExpense.Cents > 0 {
		values = append(values, chart.Value{
			Label: "Despesas " + s.formatter.Currency(sum.TotalExpense),
			Value: sum.TotalExpense.Reais(),
			Style: chart.Style{
				FillColor: drawing.ColorFromHex("dc2626"), // red-600
			},
		})
	}

	graph := chart.DonutChart{
		Title:  "Receitas x Despesas",
		Width:  512,
		Height: 512,
		Values: values,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	view, err := parseView(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	_, sum, err := s.transactions.View(r.Context(), requestUserID(r), view, time.Now())
	if err != nil {
		slog.ErrorContext(r.Context(), "Chart view failed", applog.FieldError, err)
		writeJSONError(w, http.StatusInternalServerError, "failed to load summary")
		return
	}

	png, err := s.renderSummaryChart(sum)
	if err != nil {
		writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(png)
}
