// Package web serves the public site: informational pages and the
// registration / e-mail confirmation / password reset form flows.
// Form submissions redirect to pages carrying a stable errorID code;
// the JSON contract lives in the api package.
package web

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	errs "mathdefenders/internal/errors"
	"mathdefenders/internal/repository"
	"mathdefenders/internal/usecase/leaderboard"
	"mathdefenders/internal/usecase/passwordreset"
	"mathdefenders/internal/usecase/registration"
	"mathdefenders/internal/usecase/users"
)

type MetadataStorage interface {
	UsersRegistered(ctx context.Context) (int64, error)
}

type WebHandler struct {
	registration  *registration.Usecase
	passwordReset *passwordreset.Usecase
	leaderboards  *leaderboard.Usecase
	users         *users.Usecase
	metadata      MetadataStorage
	tokens        repository.TokenStorage
	log           *zap.SugaredLogger
}

func NewWebHandler(
	reg *registration.Usecase,
	reset *passwordreset.Usecase,
	boards *leaderboard.Usecase,
	userQuery *users.Usecase,
	meta MetadataStorage,
	tokens repository.TokenStorage,
	log *zap.SugaredLogger,
) *WebHandler {
	return &WebHandler{
		registration:  reg,
		passwordReset: reset,
		leaderboards:  boards,
		users:         userQuery,
		metadata:      meta,
		tokens:        tokens,
		log:           log,
	}
}

func (h *WebHandler) Router(r chi.Router) {
	r.Get("/", h.Home)
	r.Get("/play", h.Play)
	r.Get("/about", h.About)
	r.Get("/changelog/{service}", h.Changelog)
	r.Get("/privacy-policy", h.PrivacyPolicy)
	r.Get("/open-source-acknowledgements", h.OpenSourceAcknowledgements)
	r.Get("/statistics", h.Statistics)
	r.Get("/error", h.ErrorPage)

	r.Get("/register", h.RegisterForm)
	r.Post("/register", h.RegisterSubmit)
	r.Get("/confirm-email-address", h.ConfirmEmailAddress)

	r.Get("/request-password-change", h.RequestPasswordChangeForm)
	r.Post("/request-password-change", h.RequestPasswordChangeSubmit)
	r.Get("/change-password", h.ChangePasswordForm)
	r.Post("/change-password", h.ChangePasswordSubmit)

	r.Get("/users/{query}", h.UserProfile)
	r.Get("/leaderboards/{mode}", h.Leaderboard)
}

type pageData struct {
	Title      string
	Message    string
	Registered bool
	Token      string
	UserID     string
	Email      string
	Code       string
	Profile    any
	Entries    any
}

func (h *WebHandler) render(w http.ResponseWriter, status int, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		h.log.Errorw("template rendering failed", "template", name, "error", err)
	}
}

func (h *WebHandler) redirectError(w http.ResponseWriter, r *http.Request, err error) {
	http.Redirect(w, r, "/error?errorID="+errs.ErrorID(err), http.StatusSeeOther)
}

// consumeToken enforces the single-use anti-forgery token on
// state-changing form posts. Reports false after writing the 403 page.
func (h *WebHandler) consumeToken(w http.ResponseWriter, r *http.Request) bool {
	if h.tokens.Consume(r.PostFormValue("csrf-token")) {
		return true
	}
	h.render(w, http.StatusForbidden, "message", pageData{
		Title:   "Forbidden",
		Message: "The form token was missing, expired, or already used. Go back and try again.",
	})
	return false
}

var errorMessages = map[string]string{
	"captchaIncomplete":   "Please complete the CAPTCHA and try again.",
	"emailInvalid":        "That e-mail address does not look valid.",
	"emailUnavailable":    "An account with that e-mail address already exists.",
	"usernameInvalid":     "Usernames must be 3 to 20 characters: letters, digits, underscores, or hyphens.",
	"usernameUnavailable": "That username is already taken.",
	"passwordInvalid":     "Passwords must be 8 to 48 characters with no spaces.",
	"recordNotFound":      "That link is invalid or has expired.",
	"forbidden":           "The form token was missing, expired, or already used.",
	"internalError":       "Something went wrong on our end. Please try again later.",
}

func (h *WebHandler) ErrorPage(w http.ResponseWriter, r *http.Request) {
	message, ok := errorMessages[r.URL.Query().Get("errorID")]
	if !ok {
		message = errorMessages["internalError"]
	}
	h.render(w, http.StatusOK, "message", pageData{Title: "Error", Message: message})
}
