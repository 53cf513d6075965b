package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"bowling-tracker/internal/config"
	"bowling-tracker/internal/constants"
	"bowling-tracker/internal/middleware"
	"bowling-tracker/internal/repository"
	"bowling-tracker/internal/scoring"
	"bowling-tracker/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type TrackerServer struct {
	gameSvc  *service.GameService
	gatherer prometheus.Gatherer
	limiter  *middleware.IPRateLimiter
	logger   zerolog.Logger
}

func NewTrackerServer(gameSvc *service.GameService, gatherer prometheus.Gatherer, cfg *config.Config, logger zerolog.Logger) *TrackerServer {
	return &TrackerServer{
		gameSvc:  gameSvc,
		gatherer: gatherer,
		limiter:  middleware.NewIPRateLimiter(float64(cfg.RateLimitRPS), cfg.RateLimitBurst),
		logger:   logger,
	}
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

type importResponse struct {
	Imported int `json:"imported"`
	Games    any `json:"games"`
}

type parseResponse struct {
	Value int `json:"value"`
}

type healthResponse struct {
	Status string `json:"status"`
	Games  int64  `json:"games"`
}

// Routes builds the full HTTP surface. CORS is applied by the caller.
func (s *TrackerServer) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID(s.logger))

	r.Get("/healthz", s.healthz)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RateLimit(s.limiter))

		r.Route("/games", func(r chi.Router) {
			r.Get("/", s.listGames)
			r.Post("/", s.saveGame)
			r.Post("/import", s.importGames)
			r.Get("/{gameID}", s.getGame)
			r.Delete("/{gameID}", s.deleteGame)
			r.Get("/{gameID}/scoreboard", s.scoreboard)
		})
		r.Get("/leagues", s.leagues)
		r.Post("/throws/parse", s.parseThrow)
	})

	return r
}

func (s *TrackerServer) healthz(w http.ResponseWriter, r *http.Request) {
	count, err := s.gameSvc.CountGames(r.Context())
	if err != nil {
		s.writeError(w, r, http.StatusServiceUnavailable, err)
		return
	}
	writeJSON(w, r, http.StatusOK, healthResponse{Status: "ok", Games: count})
}

func (s *TrackerServer) listGames(w http.ResponseWriter, r *http.Request) {
	opts := service.ListOptions{League: r.URL.Query().Get("league")}
	switch order := r.URL.Query().Get("order"); order {
	case "", "desc":
	case "asc":
		opts.Ascending = true
	default:
		s.writeError(w, r, http.StatusBadRequest, errors.New("order must be asc or desc"))
		return
	}

	games, err := s.gameSvc.ListGames(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, games)
}

func (s *TrackerServer) saveGame(w http.ResponseWriter, r *http.Request) {
	var in service.SaveGameInput
	if !s.decode(w, r, &in) {
		return
	}

	game, err := s.gameSvc.SaveGame(r.Context(), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	status := http.StatusOK
	if in.GameID == "" {
		status = http.StatusCreated
	}
	writeJSON(w, r, status, game)
}

func (s *TrackerServer) importGames(w http.ResponseWriter, r *http.Request) {
	var inputs []service.SaveGameInput
	if !s.decode(w, r, &inputs) {
		return
	}

	games, err := s.gameSvc.ImportGames(r.Context(), inputs)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, importResponse{Imported: len(games), Games: games})
}

func (s *TrackerServer) getGame(w http.ResponseWriter, r *http.Request) {
	game, err := s.gameSvc.GetGame(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, game)
}

func (s *TrackerServer) deleteGame(w http.ResponseWriter, r *http.Request) {
	if err := s.gameSvc.DeleteGame(r.Context(), chi.URLParam(r, "gameID")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *TrackerServer) scoreboard(w http.ResponseWriter, r *http.Request) {
	board, err := s.gameSvc.Scoreboard(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, board)
}

func (s *TrackerServer) leagues(w http.ResponseWriter, r *http.Request) {
	includePractice := false
	if v := r.URL.Query().Get("includePractice"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			s.writeError(w, r, http.StatusBadRequest, errors.New("includePractice must be a boolean"))
			return
		}
		includePractice = parsed
	}

	groups, err := s.gameSvc.GroupByLeague(r.Context(), includePractice)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, groups)
}

func (s *TrackerServer) parseThrow(w http.ResponseWriter, r *http.Request) {
	var in service.ParseThrowInput
	if !s.decode(w, r, &in) {
		return
	}

	value, err := s.gameSvc.ParseThrow(in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, parseResponse{Value: value})
}

func (s *TrackerServer) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxRequestBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, r, http.StatusRequestEntityTooLarge, err)
			return false
		}
		s.writeError(w, r, http.StatusBadRequest, err)
		return false
	}
	return true
}

func (s *TrackerServer) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.writeError(w, r, statusFor(err), err)
}

func (s *TrackerServer) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	log := zerolog.Ctx(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Str("path", r.URL.Path).Msg("request rejected")
	}

	msg := err.Error()
	if status >= http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	writeJSON(w, r, status, errorResponse{Error: msg, RequestID: middleware.GetRequestID(r.Context())})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, scoring.ErrNotANumber),
		errors.Is(err, scoring.ErrInvalidFrame),
		errors.Is(err, scoring.ErrGameTransformFailed),
		errors.Is(err, service.ErrInvalidThrow),
		errors.Is(err, service.ErrEmptyImport),
		errors.Is(err, service.ErrTooManyGames):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("failed to encode response")
	}
}
