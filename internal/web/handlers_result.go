package web

import (
	"net/http"
	"strings"

	"gopingpong-app/internal/league"
	"gopingpong-app/internal/model"
	"gopingpong-app/internal/notify"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type resultPayload struct {
	HomeTotalPoints     int                `json:"home_total_points"`
	HomeAdditionalPoint int                `json:"home_additional_point"`
	HomePlayerPoint     int                `json:"home_player_point"`
	AwayTotalPoints     int                `json:"away_total_points"`
	AwayAdditionalPoint int                `json:"away_additional_point"`
	AwayPlayerPoint     int                `json:"away_player_point"`
	GameResults         []model.GameResult `json:"game_results"`
	Submit              bool               `json:"submit"`
}

type transitionPayload struct {
	Reason string `json:"reason"`
}

func (p resultPayload) validate() string {
	points := []int{
		p.HomeTotalPoints, p.HomeAdditionalPoint, p.HomePlayerPoint,
		p.AwayTotalPoints, p.AwayAdditionalPoint, p.AwayPlayerPoint,
	}
	for _, v := range points {
		if v < 0 {
			return "points must be non-negative"
		}
	}
	for _, g := range p.GameResults {
		if g.HomeSetResult < 0 || g.AwaySetResult < 0 {
			return "set results must be non-negative"
		}
	}
	return ""
}

func (p resultPayload) apply(res *model.MatchResult) {
	res.HomeTotalPoints = p.HomeTotalPoints
	res.HomeAdditionalPoint = p.HomeAdditionalPoint
	res.HomePlayerPoint = p.HomePlayerPoint
	res.AwayTotalPoints = p.AwayTotalPoints
	res.AwayAdditionalPoint = p.AwayAdditionalPoint
	res.AwayPlayerPoint = p.AwayPlayerPoint
	res.GameResults = p.GameResults
}

func (s *Server) handleResultShow(w http.ResponseWriter, r *http.Request) {
	res, fixture, division, ok := s.loadResult(w, r)
	if !ok {
		return
	}
	viewer := s.viewer(r)
	rec := league.CombinedRecord{Fixture: fixture, Result: &res}
	role := s.roleFor(division, fixture, viewer)
	if !league.CanView(rec, role) {
		// hide unapproved results from outsiders entirely
		http.NotFound(w, r)
		return
	}
	respondJSON(w, http.StatusOK, s.fixtureView(division, rec, viewer))
}

func (s *Server) handleResultCreate(w http.ResponseWriter, r *http.Request) {
	fixture, ok := s.store.GetFixture(chi.URLParam(r, "fixtureID"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	division, ok := s.store.GetDivision(fixture.DivisionID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	viewer := s.viewer(r)
	role := s.roleFor(division, fixture, viewer)
	if role != league.RoleHome && role != league.RoleOrganizer {
		respondError(w, http.StatusUnprocessableEntity, "only the home team may enter a result")
		return
	}
	var payload resultPayload
	if err := decodeBody(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := payload.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	res := model.MatchResult{
		FixtureID:   fixture.ID,
		SubmittedBy: viewer.ID,
		Status:      model.ResultPending,
	}
	payload.apply(&res)
	if payload.Submit {
		if err := league.Transition(&res, league.ActionSubmit, role, ""); err != nil {
			respondWorkflowError(w, err)
			return
		}
	}
	created, err := s.store.CreateResult(res)
	if err != nil {
		if strings.Contains(err.Error(), "already has a result") {
			respondError(w, http.StatusConflict, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if created.Submitted {
		s.announce(division, created, viewer)
	}
	log.Info().
		Str("fixture", fixture.ID).
		Str("result", created.ID).
		Bool("submitted", created.Submitted).
		Msg("result created")
	respondJSON(w, http.StatusCreated, resultView(created))
}

func (s *Server) handleResultUpdate(w http.ResponseWriter, r *http.Request) {
	res, fixture, division, ok := s.loadResult(w, r)
	if !ok {
		return
	}
	viewer := s.viewer(r)
	role := s.roleFor(division, fixture, viewer)

	var payload resultPayload
	if err := decodeBody(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := payload.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	if err := league.Transition(&res, league.ActionEdit, role, ""); err != nil {
		respondWorkflowError(w, err)
		return
	}
	payload.apply(&res)
	if payload.Submit {
		if err := league.Transition(&res, league.ActionSubmit, role, ""); err != nil {
			respondWorkflowError(w, err)
			return
		}
	}
	if err := s.store.UpdateResult(res); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	// editing an approved result changes standings input
	if league.ResultState(res) == league.StateApproved {
		s.invalidateStandings(division.ID)
	}
	if payload.Submit {
		s.announce(division, res, viewer)
	}
	respondJSON(w, http.StatusOK, resultView(res))
}

func (s *Server) handleTransition(action league.Action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, fixture, division, ok := s.loadResult(w, r)
		if !ok {
			return
		}
		viewer := s.viewer(r)
		role := s.roleFor(division, fixture, viewer)

		var payload transitionPayload
		if r.ContentLength > 0 {
			if err := decodeBody(r, &payload); err != nil {
				respondError(w, http.StatusBadRequest, err.Error())
				return
			}
		}
		if err := league.Transition(&res, action, role, payload.Reason); err != nil {
			respondWorkflowError(w, err)
			return
		}
		if err := s.store.UpdateResult(res); err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if action == league.ActionApprove {
			s.invalidateStandings(division.ID)
		}
		s.announce(division, res, viewer)
		log.Info().
			Str("result", res.ID).
			Str("action", string(action)).
			Str("status", string(res.Status)).
			Msg("result transition")
		respondJSON(w, http.StatusOK, resultView(res))
	}
}

func (s *Server) loadResult(w http.ResponseWriter, r *http.Request) (model.MatchResult, model.Fixture, model.Division, bool) {
	res, ok := s.store.GetResult(chi.URLParam(r, "resultID"))
	if !ok {
		http.NotFound(w, r)
		return model.MatchResult{}, model.Fixture{}, model.Division{}, false
	}
	fixture, ok := s.store.GetFixture(res.FixtureID)
	if !ok {
		http.NotFound(w, r)
		return model.MatchResult{}, model.Fixture{}, model.Division{}, false
	}
	division, ok := s.store.GetDivision(fixture.DivisionID)
	if !ok {
		http.NotFound(w, r)
		return model.MatchResult{}, model.Fixture{}, model.Division{}, false
	}
	return res, fixture, division, true
}

func (s *Server) invalidateStandings(divisionID string) {
	if s.kv == nil {
		return
	}
	if err := s.kv.Delete(standingsCacheKey(divisionID)); err != nil {
		log.Warn().Err(err).Str("division", divisionID).Msg("standings cache invalidation failed")
	}
}

func (s *Server) announce(division model.Division, res model.MatchResult, actor model.User) {
	if s.hub == nil {
		return
	}
	s.hub.Broadcast(notify.ResultEvent{
		DivisionID: division.ID,
		FixtureID:  res.FixtureID,
		ResultID:   res.ID,
		Status:     string(res.Status),
		Actor:      actor.ID,
	})
}
