package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"mathdefenders/internal/domain/leaderboard"
	errs "mathdefenders/internal/errors"
)

// reCAPTCHA widgets post their response under this field name.
const captchaField = "g-recaptcha-response"

func (h *WebHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "register", pageData{
		Title: "Register",
		Token: h.tokens.Issue(),
	})
}

func (h *WebHandler) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectError(w, r, errs.ErrInternal)
		return
	}
	if !h.consumeToken(w, r) {
		return
	}

	err := h.registration.CreatePendingUser(
		r.Context(),
		r.PostFormValue("email"),
		r.PostFormValue("username"),
		r.PostFormValue("password"),
		r.PostFormValue(captchaField),
	)
	if err != nil {
		h.redirectError(w, r, err)
		return
	}
	http.Redirect(w, r, "/?registered=true", http.StatusSeeOther)
}

func (h *WebHandler) ConfirmEmailAddress(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	code := r.URL.Query().Get("code")

	if err := h.registration.VerifyPendingUser(r.Context(), email, code); err != nil {
		h.redirectError(w, r, err)
		return
	}
	h.render(w, http.StatusOK, "message", pageData{
		Title:   "E-mail confirmed",
		Message: "Your account is ready. You can now log in from the game client.",
	})
}

func (h *WebHandler) RequestPasswordChangeForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "request_password_change", pageData{
		Title: "Request password change",
		Token: h.tokens.Issue(),
	})
}

func (h *WebHandler) RequestPasswordChangeSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectError(w, r, errs.ErrInternal)
		return
	}
	if !h.consumeToken(w, r) {
		return
	}

	err := h.passwordReset.CreatePendingPasswordReset(r.Context(), r.PostFormValue("email"), r.PostFormValue(captchaField))
	if err != nil {
		h.redirectError(w, r, err)
		return
	}
	// same page whether or not the address matched an account
	h.render(w, http.StatusOK, "message", pageData{
		Title:   "Check your e-mail",
		Message: "If an account uses that address, a password reset link is on its way. It is valid for 30 minutes.",
	})
}

func (h *WebHandler) ChangePasswordForm(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	code := r.URL.Query().Get("code")

	userID, err := h.passwordReset.CheckRecordExistence(r.Context(), email, code)
	if err != nil {
		h.redirectError(w, r, err)
		return
	}
	h.render(w, http.StatusOK, "change_password", pageData{
		Title:  "Set a new password",
		Token:  h.tokens.Issue(),
		UserID: userID,
		Email:  email,
		Code:   code,
	})
}

func (h *WebHandler) ChangePasswordSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectError(w, r, errs.ErrInternal)
		return
	}
	if !h.consumeToken(w, r) {
		return
	}

	err := h.passwordReset.VerifyPendingPasswordReset(
		r.Context(),
		r.PostFormValue("user-id"),
		r.PostFormValue("email"),
		r.PostFormValue("code"),
		r.PostFormValue("new-password"),
		r.PostFormValue("confirm-new-password"),
	)
	if err != nil {
		h.redirectError(w, r, err)
		return
	}
	h.render(w, http.StatusOK, "message", pageData{
		Title:   "Password changed",
		Message: "Your password was updated. You can now log in with it.",
	})
}

func (h *WebHandler) UserProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.users.GetProfile(r.Context(), chi.URLParam(r, "query"))
	if err != nil {
		if errs.Is(err, errs.ErrUserNotFound) {
			h.render(w, http.StatusNotFound, "message", pageData{
				Title:   "Player not found",
				Message: "No player goes by that name here.",
			})
			return
		}
		h.redirectError(w, r, err)
		return
	}
	h.render(w, http.StatusOK, "profile", pageData{
		Title:   profile.Username,
		Profile: profile,
	})
}

func (h *WebHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	mode, err := leaderboard.ParseMode(chi.URLParam(r, "mode"))
	if err != nil {
		h.render(w, http.StatusNotFound, "message", pageData{
			Title:   "Leaderboards",
			Message: "There is no leaderboard for that mode.",
		})
		return
	}

	entries, err := h.leaderboards.GetTop(r.Context(), mode)
	if err != nil {
		h.redirectError(w, r, errs.ErrInternal)
		return
	}
	h.render(w, http.StatusOK, "leaderboard", pageData{
		Title:   "Leaderboards: " + string(mode),
		Entries: entries,
	})
}
