package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"immotycoon/internal/game"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	log  *slog.Logger
	game *game.Service
	mux  *chi.Mux
}

func New(logger *slog.Logger, gameSvc *game.Service) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		log:  logger,
		game: gameSvc,
		mux:  chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Post("/game/new", s.handleNewGame)
		r.Post("/advance", s.handleAdvanceMonth)

		r.Post("/properties/{id}/buy", s.handleBuyProperty)
		r.Post("/properties/{id}/renovate", s.handleRenovateProperty)
		r.Get("/properties/{id}/tenants", s.handleTenantCandidates)
		r.Post("/properties/{id}/tenants", s.handleAssignTenant)
		r.Delete("/properties/{id}/tenants", s.handleCancelTenantSelection)
		r.Post("/properties/{id}/sell", s.handleSellProperty)

		r.Post("/upgrades/{id}/buy", s.handleBuyUpgrade)
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"state": s.game.State(r.Context())})
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	state := s.game.NewGame(r.Context())
	s.log.Info("new game started", "save_id", state.SaveID)
	writeJSON(w, http.StatusOK, map[string]any{"state": state})
}

func (s *Server) handleAdvanceMonth(w http.ResponseWriter, r *http.Request) {
	summary := s.game.AdvanceMonth(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"summary": summary,
		"state":   s.game.State(r.Context()),
	})
}

func (s *Server) handleBuyProperty(w http.ResponseWriter, r *http.Request) {
	id, err := propertyID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.game.BuyProperty(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"state": s.game.State(r.Context())})
}

func (s *Server) handleRenovateProperty(w http.ResponseWriter, r *http.Request) {
	id, err := propertyID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.game.RenovateProperty(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"state": s.game.State(r.Context())})
}

func (s *Server) handleTenantCandidates(w http.ResponseWriter, r *http.Request) {
	id, err := propertyID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	candidates, err := s.game.TenantCandidates(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"candidates": candidates})
}

func (s *Server) handleAssignTenant(w http.ResponseWriter, r *http.Request) {
	id, err := propertyID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var in struct {
		TenantID int `json:"tenant_id"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.game.AssignTenant(r.Context(), id, in.TenantID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"state": s.game.State(r.Context())})
}

func (s *Server) handleCancelTenantSelection(w http.ResponseWriter, r *http.Request) {
	id, err := propertyID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.game.CancelTenantSelection(r.Context(), id)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleSellProperty(w http.ResponseWriter, r *http.Request) {
	id, err := propertyID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	salePrice, err := s.game.SellProperty(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"sale_price": salePrice,
		"state":      s.game.State(r.Context()),
	})
}

func (s *Server) handleBuyUpgrade(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "upgrade id is required")
		return
	}
	if err := s.game.BuyUpgrade(r.Context(), game.UpgradeID(id)); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"state": s.game.State(r.Context())})
}

func propertyID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, errors.New("invalid property id")
	}
	return id, nil
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrPropertyNotFound), errors.Is(err, game.ErrUpgradeNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrInsufficientFunds), errors.Is(err, game.ErrInvalidState):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, game.ErrUpgradeOwned), errors.Is(err, game.ErrTenantRejected), errors.Is(err, game.ErrNoCandidates):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}
