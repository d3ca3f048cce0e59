package http

import (
	"errors"
	"log/slog"
	"net/http"

	"flowcash/internal/auth"
	"flowcash/internal/ledger"
	applog "flowcash/internal/log"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	cred, err := s.auth.Register(r.Context(), sanitizeInput(req.Name), sanitizeInput(req.Email), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidEmail), errors.Is(err, auth.ErrWeakPassword):
			writeJSONError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ledger.ErrEmailTaken):
			writeJSONError(w, http.StatusConflict, err.Error())
		default:
			slog.ErrorContext(r.Context(), "Registration failed", applog.FieldError, err)
			writeJSONError(w, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, cred)
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	cred, err := s.auth.SignIn(r.Context(), sanitizeInput(req.Email), req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeJSONError(w, http.StatusUnauthorized, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Sign-in failed", applog.FieldError, err)
		writeJSONError(w, http.StatusInternalServerError, "sign-in failed")
		return
	}

	writeJSON(w, http.StatusOK, cred)
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	s.auth.SignOut(r.Context(), requestUserID(r))
	writeJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

// handleSwitchAccount signs the caller out and the target account in, in one
// round trip. A bad password leaves the caller signed out, so the client
// must treat a 401 here as a full sign-out.
func (s *Server) handleSwitchAccount(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	cred, err := s.auth.SwitchAccount(r.Context(), requestUserID(r), sanitizeInput(req.Email), req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeJSONError(w, http.StatusUnauthorized, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Account switch failed", applog.FieldError, err)
		writeJSONError(w, http.StatusInternalServerError, "account switch failed")
		return
	}

	writeJSON(w, http.StatusOK, cred)
}
