package dashboard

import (
	"encoding/json"
	"net/http"

	"pulseboard/internal/helpers"
	"pulseboard/internal/models"
	"pulseboard/internal/refresh"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Service exposes the controller's snapshots over HTTP: the rendered
// dashboard page, a JSON state endpoint, and the two write paths that funnel
// into the controller (parameter change, forced refresh). It holds no state
// of its own.
type Service struct {
	Controller *refresh.Controller
	Validate   *validator.Validate
}

func (s Service) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", s.renderPage)
	r.Get("/api/state", s.getState)
	r.Put("/api/params", s.putParams)
	r.Post("/api/refresh", s.postRefresh)

	return r
}

func (s Service) renderPage(w http.ResponseWriter, _ *http.Request) {
	snapshot := s.Controller.Snapshot()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, newPageData(snapshot)); err != nil {
		zap.L().Error("Failed to render dashboard page", zap.Error(err))
	}
}

func (s Service) getState(w http.ResponseWriter, _ *http.Request) {
	helpers.RespondWithJSON(w, http.StatusOK, s.Controller.Snapshot())
}

func (s Service) putParams(w http.ResponseWriter, r *http.Request) {
	var params models.QueryParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		helpers.RespondWithError(w, http.StatusBadRequest, []string{"INVALID_BODY"})
		return
	}

	if err := s.Validate.Struct(params); err != nil {
		helpers.RespondWithError(w, http.StatusBadRequest, []string{"INVALID_PARAMS"})
		return
	}

	if err := s.Controller.SetParams(params); err != nil {
		helpers.RespondWithError(w, http.StatusBadRequest, []string{err.Error()})
		return
	}

	helpers.RespondWithJSON(w, http.StatusOK, s.Controller.Snapshot())
}

func (s Service) postRefresh(w http.ResponseWriter, _ *http.Request) {
	s.Controller.ForceRefresh()
	helpers.RespondWithJSON(w, http.StatusAccepted, s.Controller.Snapshot())
}
