package web

import (
	"encoding/json"
	"net/http"

	"gopingpong-app/internal/league"
	"gopingpong-app/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

func (s *Server) handleDivisionList(w http.ResponseWriter, r *http.Request) {
	divisions := s.store.ListDivisions()
	views := make([]DivisionView, 0, len(divisions))
	for _, d := range divisions {
		views = append(views, divisionView(d))
	}
	respondJSON(w, http.StatusOK, views)
}

func (s *Server) handleDivisionShow(w http.ResponseWriter, r *http.Request) {
	division, ok := s.store.GetDivision(chi.URLParam(r, "divisionID"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	respondJSON(w, http.StatusOK, divisionView(division))
}

func (s *Server) handleDivisionFixtures(w http.ResponseWriter, r *http.Request) {
	division, ok := s.store.GetDivision(chi.URLParam(r, "divisionID"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	viewer := s.viewer(r)
	records := league.Combine(s.store.ListFixtures(division.ID), s.store.ListResults(division.ID))
	league.SortByRound(records)

	views := make([]FixtureView, 0, len(records))
	for _, rec := range records {
		views = append(views, s.fixtureView(division, rec, viewer))
	}
	respondJSON(w, http.StatusOK, views)
}

func (s *Server) handleDivisionMatches(w http.ResponseWriter, r *http.Request) {
	division, ok := s.store.GetDivision(chi.URLParam(r, "divisionID"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	view := league.View(r.URL.Query().Get("view"))
	if view == "" {
		view = league.SubmitterView
	}
	if view != league.SubmitterView && view != league.ReviewerView {
		respondError(w, http.StatusBadRequest, "view must be submitter or reviewer")
		return
	}
	viewer := s.viewer(r)
	team, ok := s.store.TeamForUser(division.ID, viewer.ID)
	if !ok {
		respondError(w, http.StatusUnprocessableEntity, "viewer has no team in this division")
		return
	}

	records := league.Combine(s.store.ListFixtures(division.ID), s.store.ListResults(division.ID))
	league.SortByRound(records)
	buckets := league.Partition(records, team.ID, view)

	respondJSON(w, http.StatusOK, BucketsView{
		Draft:     s.fixtureViews(division, buckets.Draft, viewer),
		Pending:   s.fixtureViews(division, buckets.Pending, viewer),
		Published: s.fixtureViews(division, buckets.Published, viewer),
	})
}

func (s *Server) fixtureViews(division model.Division, records []league.CombinedRecord, viewer model.User) []FixtureView {
	views := make([]FixtureView, 0, len(records))
	for _, rec := range records {
		views = append(views, s.fixtureView(division, rec, viewer))
	}
	return views
}

func (s *Server) handleDivisionStandings(w http.ResponseWriter, r *http.Request) {
	division, ok := s.store.GetDivision(chi.URLParam(r, "divisionID"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	key := standingsCacheKey(division.ID)
	if s.kv != nil {
		if cached, err := s.kv.Get(key); err == nil && cached != "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(cached))
			return
		}
	}

	teams := s.store.ListTeams(division.ID)
	records := league.Combine(s.store.ListFixtures(division.ID), s.store.ListResults(division.ID))
	views := standingViews(league.BuildStandings(teams, records))

	if s.kv != nil {
		if payload, err := json.Marshal(views); err == nil {
			if err := s.kv.Set(key, string(payload)); err != nil {
				log.Warn().Err(err).Str("division", division.ID).Msg("standings cache write failed")
			}
		}
	}
	respondJSON(w, http.StatusOK, views)
}

func standingsCacheKey(divisionID string) string {
	return "standings_" + divisionID
}
