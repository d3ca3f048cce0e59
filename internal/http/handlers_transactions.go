package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"flowcash/internal/core"
	applog "flowcash/internal/log"
)

type transactionJSON struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	AmountCents int64  `json:"amount_cents"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Date        string `json:"date"`
	DisplayDate string `json:"display_date"`
}

type summaryJSON struct {
	TotalIncomeCents  int64  `json:"total_income_cents"`
	TotalIncome       string `json:"total_income"`
	TotalExpenseCents int64  `json:"total_expense_cents"`
	TotalExpense      string `json:"total_expense"`
	NetBalanceCents   int64  `json:"net_balance_cents"`
	NetBalance        string `json:"net_balance"`
	HasData           bool   `json:"has_data"`
}

type transactionListResponse struct {
	Transactions []transactionJSON `json:"transactions"`
	Summary      summaryJSON       `json:"summary"`
}

type createTransactionRequest struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Date        string `json:"date"`
}

func (s *Server) transactionJSON(tx core.Transaction) transactionJSON {
	return transactionJSON{
		ID:          tx.ID,
		Description: tx.Description,
		AmountCents: tx.Amount.Cents,
		Amount:      s.formatter.Currency(tx.Amount),
		Type:        string(tx.Type),
		Date:        tx.Date.Format(time.RFC3339),
		DisplayDate: s.formatter.Date(tx.Date),
	}
}

func (s *Server) summaryJSON(sum core.Summary) summaryJSON {
	return summaryJSON{
		TotalIncomeCents:  sum.TotalIncome.Cents,
		TotalIncome:       s.formatter.Currency(sum.TotalIncome),
		TotalExpenseCents: sum.TotalExpense.Cents,
		TotalExpense:      s.formatter.Currency(sum.TotalExpense),
		NetBalanceCents:   sum.NetBalance.Cents,
		NetBalance:        s.formatter.Currency(sum.NetBalance),
		HasData:           sum.HasData,
	}
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	view, err := parseView(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	visible, sum, err := s.transactions.View(r.Context(), requestUserID(r), view, time.Now())
	if err != nil {
		slog.ErrorContext(r.Context(), "Transaction view failed", applog.FieldError, err)
		writeJSONError(w, http.StatusInternalServerError, "failed to load transactions")
		return
	}

	resp := transactionListResponse{
		Transactions: make([]transactionJSON, len(visible)),
		Summary:      s.summaryJSON(sum),
	}
	for i, tx := range visible {
		resp.Transactions[i] = s.transactionJSON(tx)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid amount: "+err.Error())
		return
	}

	date := time.Now()
	if v := strings.TrimSpace(req.Date); v != "" {
		// Local zone, so the entry stays on the calendar day the user typed.
		date, err = time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
			return
		}
	}

	tx := core.Transaction{
		Description: sanitizeInput(req.Description),
		Amount:      core.Money{Cents: cents},
		Type:        core.TxType(req.Type),
		Date:        date,
	}

	saved, err := s.transactions.Create(r.Context(), requestUserID(r), tx)
	if err != nil {
		if isValidationError(err) {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Transaction create failed", applog.FieldError, err)
		writeJSONError(w, http.StatusInternalServerError, "failed to save transaction")
		return
	}

	writeJSON(w, http.StatusCreated, s.transactionJSON(saved))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	txID := r.PathValue("id")
	if txID == "" {
		writeJSONError(w, http.StatusBadRequest, "missing transaction id")
		return
	}

	if err := s.transactions.Delete(r.Context(), requestUserID(r), txID); err != nil {
		slog.ErrorContext(r.Context(), "Transaction delete failed",
			applog.FieldTxID, txID,
			applog.FieldError, err)
		writeJSONError(w, http.StatusInternalServerError, "failed to delete transaction")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func isValidationError(err error) bool {
	return errors.Is(err, core.ErrInvalidAmount) ||
		errors.Is(err, core.ErrInvalidType) ||
		errors.Is(err, core.ErrEmptyDescription) ||
		errors.Is(err, core.ErrZeroDate)
}
