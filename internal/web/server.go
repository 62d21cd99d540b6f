package web

import (
	"net/http"

	"gopingpong-app/internal/kvstore"
	"gopingpong-app/internal/league"
	"gopingpong-app/internal/notify"
	"gopingpong-app/internal/store"

	"github.com/go-chi/chi/v5"
)

type Server struct {
	store store.Store
	kv    kvstore.KVStore
	hub   *notify.Hub
}

func NewServer(store store.Store, kv kvstore.KVStore, hub *notify.Hub) *Server {
	return &Server{store: store, kv: kv, hub: hub}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Get("/divisions", s.handleDivisionList)
	r.Get("/divisions/{divisionID}", s.handleDivisionShow)
	r.Get("/divisions/{divisionID}/fixtures", s.handleDivisionFixtures)
	r.Get("/divisions/{divisionID}/matches", s.handleDivisionMatches)
	r.Get("/divisions/{divisionID}/standings", s.handleDivisionStandings)

	r.Post("/fixtures/{fixtureID}/result", s.handleResultCreate)
	r.Get("/results/{resultID}", s.handleResultShow)
	r.Put("/results/{resultID}", s.handleResultUpdate)
	r.Post("/results/{resultID}/submit", s.handleTransition(league.ActionSubmit))
	r.Post("/results/{resultID}/acknowledge", s.handleTransition(league.ActionAcknowledge))
	r.Post("/results/{resultID}/reject", s.handleTransition(league.ActionReject))
	r.Post("/results/{resultID}/approve", s.handleTransition(league.ActionApprove))

	if s.hub != nil {
		r.Get("/ws", s.hub.ServeHTTP)
	}

	return r
}
