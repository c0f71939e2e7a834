// Package api is the JSON tier consumed by the web tier and external
// clients. Every response uses the {success, statusCode, data|error}
// envelope.
package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	errs "mathdefenders/internal/errors"
	"mathdefenders/internal/httpresponse"
	"mathdefenders/internal/repository"
	"mathdefenders/internal/usecase/leaderboard"
	"mathdefenders/internal/usecase/passwordreset"
	"mathdefenders/internal/usecase/registration"
	"mathdefenders/internal/usecase/users"
)

type MetadataStorage interface {
	UsersRegistered(ctx context.Context) (int64, error)
}

type APIHandler struct {
	registration  *registration.Usecase
	passwordReset *passwordreset.Usecase
	leaderboards  *leaderboard.Usecase
	users         *users.Usecase
	metadata      MetadataStorage
	tokens        repository.TokenStorage
	log           *zap.SugaredLogger
}

func NewAPIHandler(
	reg *registration.Usecase,
	reset *passwordreset.Usecase,
	boards *leaderboard.Usecase,
	userQuery *users.Usecase,
	meta MetadataStorage,
	tokens repository.TokenStorage,
	log *zap.SugaredLogger,
) *APIHandler {
	return &APIHandler{
		registration:  reg,
		passwordReset: reset,
		leaderboards:  boards,
		users:         userQuery,
		metadata:      meta,
		tokens:        tokens,
		log:           log,
	}
}

func (h *APIHandler) Router(r chi.Router) {
	r.Post("/pending-users", h.CreatePendingUser)
	r.Put("/users", h.VerifyPendingUser)
	r.Patch("/users", h.ChangePassword)
	r.Post("/pending-password-resets", h.CreatePendingPasswordReset)
	r.Get("/pending-password-resets/{email}/{code}", h.CheckPendingPasswordReset)
	r.Get("/api/users/{query}", h.GetUser)
	r.Get("/leaderboards/{mode}", h.GetLeaderboard)
	r.Get("/metadata", h.GetMetadata)
	r.Get("/csrf", h.IssueToken)
}

func (h *APIHandler) writeError(w http.ResponseWriter, err error) {
	httpresponse.WriteError(w, errs.StatusCode(err), errs.ErrorID(err))
}
