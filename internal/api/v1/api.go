// Package v1 implements the native REST API.
package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gamevault/gamevault/internal/importer"
	"github.com/gamevault/gamevault/internal/library"
	"github.com/gamevault/gamevault/internal/reconcile"
	"github.com/gamevault/gamevault/pkg/igdb"
	"github.com/gamevault/gamevault/pkg/match"
)

// Config holds API server configuration.
type Config struct {
	Version string
}

// Server is the v1 API server.
type Server struct {
	deps ServerDeps
	cfg  Config
}

// New creates a new v1 API server.
func New(deps ServerDeps, cfg Config) (*Server, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingDependency, err)
	}
	return &Server{deps: deps, cfg: cfg}, nil
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Library
	mux.HandleFunc("GET /api/v1/games", s.listGames)
	mux.HandleFunc("GET /api/v1/games/{id}", s.getGame)
	mux.HandleFunc("POST /api/v1/games", s.addGame)
	mux.HandleFunc("PUT /api/v1/games/{id}", s.updateGame)
	mux.HandleFunc("DELETE /api/v1/games/{id}", s.deleteGame)

	// Catalog search
	mux.HandleFunc("POST /api/v1/search", s.requireSearcher(s.search))

	// Import
	mux.HandleFunc("POST /api/v1/import/steam", s.requireImporter(s.importSteam))
	mux.HandleFunc("GET /api/v1/import/history", s.listImportHistory)

	// System
	mux.HandleFunc("GET /api/v1/status", s.getStatus)
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// pathID extracts an integer ID from the URL path.
func pathID(r *http.Request, name string) (int64, error) {
	idStr := r.PathValue(name)
	if idStr == "" {
		return 0, fmt.Errorf("missing path parameter: %s", name)
	}
	return strconv.ParseInt(idStr, 10, 64)
}

// queryInt extracts an optional integer from query string.
func queryInt(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}

// queryString extracts an optional string from query string.
func queryString(r *http.Request, name string) *string {
	val := r.URL.Query().Get(name)
	if val == "" {
		return nil
	}
	return &val
}

func gameToResponse(g *library.Game) gameResponse {
	return gameResponse{
		ID:              g.ID,
		IGDBID:          g.IGDBID,
		SteamAppID:      g.SteamAppID,
		Title:           g.Title,
		Status:          string(g.Status),
		Rating:          g.Rating,
		Summary:         g.Summary,
		CoverURL:        g.CoverURL,
		ReleaseDate:     g.ReleaseDate,
		PlaytimeMinutes: g.PlaytimeMinutes,
		AddedAt:         g.AddedAt,
		UpdatedAt:       g.UpdatedAt,
	}
}

// Handlers

func (s *Server) listGames(w http.ResponseWriter, r *http.Request) {
	filter := library.GameFilter{
		Limit:  queryInt(r, "limit", 50),
		Offset: queryInt(r, "offset", 0),
	}

	if statusStr := queryString(r, "status"); statusStr != nil {
		st := library.GameStatus(*statusStr)
		if !st.Valid() {
			writeError(w, http.StatusBadRequest, "INVALID_STATUS",
				"status must be 'want-to-play', 'playing', or 'played'")
			return
		}
		filter.Status = &st
	}

	games, total, err := s.deps.Library.ListGames(filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	resp := listGamesResponse{
		Items:  make([]gameResponse, len(games)),
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}
	for i, g := range games {
		resp.Items[i] = gameToResponse(g)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getGame(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	g, err := s.deps.Library.GetGame(id)
	if err != nil {
		if errors.Is(err, library.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Game not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, gameToResponse(g))
}

func (s *Server) addGame(w http.ResponseWriter, r *http.Request) {
	var req addGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "INVALID_TITLE", "title is required")
		return
	}

	status := library.StatusWantToPlay
	if req.Status != "" {
		status = library.GameStatus(req.Status)
		if !status.Valid() {
			writeError(w, http.StatusBadRequest, "INVALID_STATUS",
				"status must be 'want-to-play', 'playing', or 'played'")
			return
		}
	}

	g := &library.Game{
		IGDBID:     req.IGDBID,
		SteamAppID: req.SteamAppID,
		Title:      req.Title,
		Status:     status,
		Rating:     req.Rating,
		Summary:    req.Summary,
		CoverURL:   req.CoverURL,
	}

	if err := s.deps.Library.AddGame(g); err != nil {
		if errors.Is(err, library.ErrDuplicate) {
			writeError(w, http.StatusConflict, "DUPLICATE", "Game already in library")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, gameToResponse(g))
}

func (s *Server) updateGame(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	var req updateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	g, err := s.deps.Library.GetGame(id)
	if err != nil {
		if errors.Is(err, library.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Game not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	if req.Status != nil {
		st := library.GameStatus(*req.Status)
		if !st.Valid() {
			writeError(w, http.StatusBadRequest, "INVALID_STATUS",
				"status must be 'want-to-play', 'playing', or 'played'")
			return
		}
		g.Status = st
	}
	if req.PlaytimeMinutes != nil {
		g.PlaytimeMinutes = *req.PlaytimeMinutes
	}

	if err := s.deps.Library.UpdateGame(g); err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, gameToResponse(g))
}

func (s *Server) deleteGame(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	if err := s.deps.Library.DeleteGame(id); err != nil {
		if errors.Is(err, library.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Game not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	query := match.QueryTitle(req.Query)
	if query == "" {
		writeError(w, http.StatusBadRequest, "INVALID_QUERY", "query is required")
		return
	}

	limit := req.Limit
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	games, err := s.deps.Searcher.Search(r.Context(), query, limit)
	if err != nil {
		switch {
		case errors.Is(err, igdb.ErrUnauthorized):
			writeError(w, http.StatusBadGateway, "CATALOG_UNAUTHORIZED", "Catalog credentials rejected")
		case errors.Is(err, igdb.ErrRateLimited):
			writeError(w, http.StatusBadGateway, "CATALOG_RATE_LIMITED", "Catalog rate limit hit")
		default:
			writeError(w, http.StatusBadGateway, "CATALOG_ERROR", err.Error())
		}
		return
	}

	resp := searchResponse{
		Query:   query,
		Results: make([]searchResultResponse, len(games)),
	}
	for i, g := range games {
		resp.Results[i] = catalogToResponse(g)
	}

	writeJSON(w, http.StatusOK, resp)
}

func catalogToResponse(g igdb.Game) searchResultResponse {
	r := searchResultResponse{
		IGDBID:   g.ID,
		Name:     g.Name,
		Year:     g.Year(),
		Summary:  g.Summary,
		CoverURL: g.CoverURL("t_cover_big"),
	}
	if g.Rating > 0 {
		rating := g.Rating
		r.Rating = &rating
	}
	return r
}

func (s *Server) importSteam(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.Importer.ImportSteam(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, importer.ErrSteamNotConfigured):
			writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Steam not configured")
		case errors.Is(err, reconcile.ErrConfiguration):
			writeError(w, http.StatusBadGateway, "CONFIGURATION_ERROR", err.Error())
		case errors.Is(err, importer.ErrFetchLibrary):
			writeError(w, http.StatusBadGateway, "STEAM_ERROR", err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "IMPORT_ERROR", err.Error())
		}
		return
	}

	resp := importResponse{
		RunID:             result.RunID,
		TotalProcessed:    result.TotalProcessed,
		TotalMatched:      result.TotalMatched,
		TotalSkippedOwned: result.TotalSkippedOwned,
		TotalNoMatch:      result.TotalNoMatch,
		TotalImported:     len(result.Imported),
		DurationMS:        result.Duration.Milliseconds(),
		Imported:          make([]gameResponse, len(result.Imported)),
	}
	for i, g := range result.Imported {
		resp.Imported[i] = gameToResponse(g)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) listImportHistory(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 20)

	runs, err := s.deps.History.List(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	resp := make([]importRunResponse, len(runs))
	for i, run := range runs {
		resp[i] = importRunResponse{
			RunID:             run.RunID,
			Source:            run.Source,
			StartedAt:         run.StartedAt,
			FinishedAt:        run.FinishedAt,
			TotalProcessed:    run.TotalProcessed,
			TotalMatched:      run.TotalMatched,
			TotalSkippedOwned: run.TotalSkippedOwned,
			TotalNoMatch:      run.TotalNoMatch,
			TotalImported:     run.TotalImported,
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	_, total, err := s.deps.Library.ListGames(library.GameFilter{Limit: 1})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		Status:     "ok",
		Version:    s.cfg.Version,
		TotalGames: total,
	})
}
