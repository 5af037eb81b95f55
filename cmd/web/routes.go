package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"

	"github.com/matchday/timekeeper/internal/access"
	"github.com/matchday/timekeeper/internal/httputil"
	"github.com/matchday/timekeeper/internal/match"
	"github.com/matchday/timekeeper/internal/middleware"
	"github.com/matchday/timekeeper/internal/qr"
	"github.com/matchday/timekeeper/internal/service"
	"github.com/matchday/timekeeper/internal/store"
	"github.com/matchday/timekeeper/internal/timer"
)

type createMatchRequest struct {
	Description string `json:"description"`
}

type followMatchRequest struct {
	MatchUUID  string `json:"match_uuid"`
	ScanResult string `json:"scan_result"`
}

type timerOperationRequest struct {
	Operation string `json:"operation"`
}

type matchResponse struct {
	match.Match
	DisplayTime string `json:"display_time"`
	IsAdmin     bool   `json:"is_admin"`
}

func toMatchResponse(m *match.Match, userID string) matchResponse {
	return matchResponse{
		Match:       *m,
		DisplayTime: timer.FormatTime(m.TimerState.SecondsRemaining),
		IsAdmin:     access.IsAdmin(userID, m),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// storeError maps the storage failure taxonomy onto HTTP responses.
func storeError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, store.ErrUnavailable):
		httputil.ServiceUnavailable(w, "Storage unavailable. Please contact support.", err)
	case errors.Is(err, store.ErrCorrupted):
		httputil.InternalServerError(w, "Storage data is corrupted. Please contact support.", err)
	default:
		httputil.InternalServerError(w, msg, err)
	}
}

func newRouter(dbConn *sqlx.DB, sessionManager *scs.SessionManager) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.WithSessionUser(sessionManager))

	clock := clockwork.NewRealClock()

	r.Post("/matches", func(w http.ResponseWriter, r *http.Request) {
		matchService := service.NewMatchService(store.NewMatchStore(dbConn), clock)

		var req createMatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.BadRequest(w, "Invalid request body", err)
			return
		}

		description, err := match.ValidateDescription(req.Description)
		if err != nil {
			httputil.BadRequest(w, err.Error(), nil)
			return
		}

		userID, _ := middleware.GetUserIDFromContext(r.Context())
		m, err := matchService.CreateMatch(r.Context(), description, userID)
		if err != nil {
			storeError(w, "Failed to create match", err)
			return
		}

		writeJSON(w, http.StatusCreated, toMatchResponse(m, userID))
	})

	r.Get("/matches/{id}", func(w http.ResponseWriter, r *http.Request) {
		matchService := service.NewMatchService(store.NewMatchStore(dbConn), clock)
		id := chi.URLParam(r, "id")

		m, err := matchService.GetMatch(r.Context(), id)
		if err != nil {
			storeError(w, "Failed to load match", err)
			return
		}
		if m == nil {
			httputil.NotFound(w, "Match not found", nil)
			return
		}

		// Catch the countdown up to the wall clock before anyone sees it.
		refreshed := matchService.Refresh(m)
		if refreshed.TimerState != m.TimerState {
			if err := matchService.UpdateMatch(r.Context(), refreshed); err != nil {
				storeError(w, "Failed to save match", err)
				return
			}
		}

		userID, _ := middleware.GetUserIDFromContext(r.Context())
		writeJSON(w, http.StatusOK, toMatchResponse(refreshed, userID))
	})

	r.Post("/matches/{id}/timer", func(w http.ResponseWriter, r *http.Request) {
		matchService := service.NewMatchService(store.NewMatchStore(dbConn), clock)
		id := chi.URLParam(r, "id")

		var req timerOperationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.BadRequest(w, "Invalid request body", err)
			return
		}

		userID, _ := middleware.GetUserIDFromContext(r.Context())
		m, err := matchService.ApplyTimerOperation(r.Context(), id, userID, req.Operation)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotAdmin):
				httputil.Forbidden(w, "Only the match admin can control the timer", err)
			case errors.Is(err, service.ErrInactiveMatch):
				httputil.Conflict(w, "Cannot modify inactive match", err)
			case errors.Is(err, service.ErrUnknownOperation):
				httputil.BadRequest(w, "Unknown timer operation", err)
			default:
				storeError(w, "Failed to apply timer operation", err)
			}
			return
		}
		if m == nil {
			httputil.NotFound(w, "Match not found", nil)
			return
		}

		writeJSON(w, http.StatusOK, toMatchResponse(m, userID))
	})

	r.Delete("/matches/{id}", func(w http.ResponseWriter, r *http.Request) {
		matchService := service.NewMatchService(store.NewMatchStore(dbConn), clock)
		id := chi.URLParam(r, "id")

		m, err := matchService.GetMatch(r.Context(), id)
		if err != nil {
			storeError(w, "Failed to load match", err)
			return
		}
		if m == nil {
			httputil.NotFound(w, "Match not found", nil)
			return
		}

		userID, _ := middleware.GetUserIDFromContext(r.Context())
		if !access.IsAdmin(userID, m) {
			httputil.Forbidden(w, "Only the match admin can delete the match", nil)
			return
		}

		if err := matchService.DeleteMatch(r.Context(), id); err != nil {
			storeError(w, "Failed to delete match", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})

	r.Get("/matches/{id}/qr", func(w http.ResponseWriter, r *http.Request) {
		matchService := service.NewMatchService(store.NewMatchStore(dbConn), clock)
		id := chi.URLParam(r, "id")

		if !qr.ValidateUUID(id) {
			httputil.BadRequest(w, "Invalid match UUID format", nil)
			return
		}

		m, err := matchService.GetMatch(r.Context(), id)
		if err != nil {
			storeError(w, "Failed to load match", err)
			return
		}
		if m == nil {
			httputil.NotFound(w, "Match not found", nil)
			return
		}

		png, err := qr.GenerateQRCode(m.MatchUUID)
		if err != nil {
			httputil.InternalServerError(w, "Failed to generate QR code", err)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Write(png)
	})

	r.Get("/me", func(w http.ResponseWriter, r *http.Request) {
		userService := service.NewUserService(store.NewUserStore(dbConn))

		userID, _ := middleware.GetUserIDFromContext(r.Context())
		matchList, err := userService.GetUserMatches(r.Context(), userID)
		if err != nil {
			storeError(w, "Failed to load followed matches", err)
			return
		}

		writeJSON(w, http.StatusOK, match.User{UserID: userID, MatchList: matchList})
	})

	r.Get("/me/matches", func(w http.ResponseWriter, r *http.Request) {
		matchService := service.NewMatchService(store.NewMatchStore(dbConn), clock)
		userService := service.NewUserService(store.NewUserStore(dbConn))

		userID, _ := middleware.GetUserIDFromContext(r.Context())
		matchList, err := userService.GetUserMatches(r.Context(), userID)
		if err != nil {
			storeError(w, "Failed to load followed matches", err)
			return
		}

		matches, err := matchService.ListActiveMatches(r.Context(), matchList)
		if err != nil {
			storeError(w, "Failed to load matches", err)
			return
		}

		responses := make([]matchResponse, 0, len(matches))
		for i := range matches {
			refreshed := matchService.Refresh(&matches[i])
			if refreshed.TimerState != matches[i].TimerState {
				if err := matchService.UpdateMatch(r.Context(), refreshed); err != nil {
					storeError(w, "Failed to save match", err)
					return
				}
			}
			responses = append(responses, toMatchResponse(refreshed, userID))
		}

		writeJSON(w, http.StatusOK, responses)
	})

	r.Post("/me/matches", func(w http.ResponseWriter, r *http.Request) {
		matchService := service.NewMatchService(store.NewMatchStore(dbConn), clock)
		userService := service.NewUserService(store.NewUserStore(dbConn))

		var req followMatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.BadRequest(w, "Invalid request body", err)
			return
		}

		// Accept either a raw scanner payload or a typed-in id; both must
		// come out as a valid UUID v4.
		matchUUID := req.MatchUUID
		if req.ScanResult != "" {
			matchUUID = qr.ExtractUUIDFromScan(req.ScanResult)
			if matchUUID == "" {
				httputil.BadRequest(w, "QR code could not be decoded or contains invalid data", nil)
				return
			}
		}
		if !qr.ValidateUUID(matchUUID) {
			httputil.BadRequest(w, "Invalid match UUID format", nil)
			return
		}

		m, err := matchService.GetMatch(r.Context(), matchUUID)
		if err != nil {
			storeError(w, "Failed to load match", err)
			return
		}
		if m == nil {
			httputil.NotFound(w, "Match not found", nil)
			return
		}

		userID, _ := middleware.GetUserIDFromContext(r.Context())
		if err := userService.FollowMatch(r.Context(), userID, matchUUID); err != nil {
			storeError(w, "Failed to follow match", err)
			return
		}

		writeJSON(w, http.StatusOK, toMatchResponse(m, userID))
	})

	r.Delete("/me/matches/{id}", func(w http.ResponseWriter, r *http.Request) {
		userService := service.NewUserService(store.NewUserStore(dbConn))
		id := chi.URLParam(r, "id")

		userID, _ := middleware.GetUserIDFromContext(r.Context())
		if err := userService.UnfollowMatch(r.Context(), userID, id); err != nil {
			storeError(w, "Failed to unfollow match", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})

	return r
}
