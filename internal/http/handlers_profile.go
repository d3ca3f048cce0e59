package http

import (
	"log/slog"
	"net/http"

	"flowcash/internal/core"
	applog "flowcash/internal/log"
)

type profileJSON struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	AvatarURL       string `json:"avatar_url"`
	CompanyName     string `json:"company_name"`
	CompanyDocument string `json:"company_document"`
	Phone           string `json:"phone"`
}

func profileToJSON(p core.Profile) profileJSON {
	return profileJSON{
		Name:            p.Name,
		Email:           p.Email,
		AvatarURL:       p.AvatarURL,
		CompanyName:     p.CompanyName,
		CompanyDocument: p.CompanyDocument,
		Phone:           p.Phone,
	}
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)

	if p, ok := s.profileCache.Get(userID); ok {
		writeJSON(w, http.StatusOK, profileToJSON(p))
		return
	}

	p, err := s.backend.LoadProfile(r.Context(), userID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Profile load failed",
			applog.FieldUserID, userID,
			applog.FieldError, err)
		writeJSONError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	if p == nil {
		writeJSONError(w, http.StatusNotFound, "profile not set")
		return
	}

	s.profileCache.Set(userID, *p)
	writeJSON(w, http.StatusOK, profileToJSON(*p))
}

// handlePutProfile merges the submitted fields into the stored profile.
// Empty fields leave their stored values untouched.
func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	userID := requestUserID(r)

	var req profileJSON
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	p := core.Profile{
		Name:            sanitizeInput(req.Name),
		Email:           sanitizeInput(req.Email),
		AvatarURL:       sanitizeInput(req.AvatarURL),
		CompanyName:     sanitizeInput(req.CompanyName),
		CompanyDocument: sanitizeInput(req.CompanyDocument),
		Phone:           sanitizeInput(req.Phone),
	}

	if err := s.backend.SaveProfile(r.Context(), userID, p); err != nil {
		slog.ErrorContext(r.Context(), "Profile save failed",
			applog.FieldUserID, userID,
			applog.FieldError, err)
		writeJSONError(w, http.StatusInternalServerError, "failed to save profile")
		return
	}

	// Drop the stale cache entry; the next read refills from the store.
	s.profileCache.Invalidate(userID)

	merged, err := s.backend.LoadProfile(r.Context(), userID)
	if err != nil || merged == nil {
		writeJSON(w, http.StatusOK, profileToJSON(p))
		return
	}

	s.profileCache.Set(userID, *merged)
	writeJSON(w, http.StatusOK, profileToJSON(*merged))
}
