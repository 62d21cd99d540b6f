package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gopingpong-app/internal/league"
	"gopingpong-app/internal/model"
)

const viewerHeader = "X-User-ID"

// viewer resolves the request's viewer from the gateway-set header. An
// unknown or missing id means an anonymous audience viewer.
func (s *Server) viewer(r *http.Request) model.User {
	id := strings.TrimSpace(r.Header.Get(viewerHeader))
	if id == "" {
		return model.User{}
	}
	u, ok := s.store.GetUser(id)
	if !ok {
		return model.User{}
	}
	return u
}

func (s *Server) roleFor(division model.Division, fx model.Fixture, viewer model.User) league.Role {
	organizer := viewer.ID != "" &&
		(viewer.Role == model.RoleOrganizer || viewer.ID == division.OrganizerID)
	return league.RoleOf(fx, viewer.ID, organizer)
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// respondWorkflowError maps workflow refusals to 422 and everything else to
// a server error.
func respondWorkflowError(w http.ResponseWriter, err error) {
	var ve *league.ValidationError
	if errors.As(err, &ve) {
		respondError(w, http.StatusUnprocessableEntity, ve.Error())
		return
	}
	respondError(w, http.StatusInternalServerError, err.Error())
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
