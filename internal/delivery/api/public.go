package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"mathdefenders/internal/domain/leaderboard"
	"mathdefenders/internal/httpresponse"
)

func (h *APIHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	query := chi.URLParam(r, "query")

	profile, err := h.users.GetProfile(r.Context(), query)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpresponse.WriteData(w, http.StatusOK, profile)
}

func (h *APIHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	mode, err := leaderboard.ParseMode(chi.URLParam(r, "mode"))
	if err != nil {
		httpresponse.WriteError(w, http.StatusNotFound, "unknownGameMode")
		return
	}

	entries, err := h.leaderboards.GetTop(r.Context(), mode)
	if err != nil {
		h.log.Errorw("GetLeaderboard failed", "mode", mode, "error", err)
		h.writeError(w, err)
		return
	}
	httpresponse.WriteData(w, http.StatusOK, entries)
}

func (h *APIHandler) GetMetadata(w http.ResponseWriter, r *http.Request) {
	count, err := h.metadata.UsersRegistered(r.Context())
	if err != nil {
		h.log.Errorw("GetMetadata failed", "error", err)
		h.writeError(w, err)
		return
	}
	httpresponse.WriteData(w, http.StatusOK, map[string]int64{"usersRegistered": count})
}

func (h *APIHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	httpresponse.WriteData(w, http.StatusOK, map[string]string{"token": h.tokens.Issue()})
}
