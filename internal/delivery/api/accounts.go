package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	errs "mathdefenders/internal/errors"
	"mathdefenders/internal/httpresponse"
	"mathdefenders/internal/utils"
)

type createPendingUserRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	CaptchaToken string `json:"captchaToken"`
}

func (h *APIHandler) CreatePendingUser(w http.ResponseWriter, r *http.Request) {
	var req createPendingUserRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		h.log.Errorw("CreatePendingUser: malformed body", "error", err)
		httpresponse.WriteError(w, http.StatusBadRequest, "malformedRequest")
		return
	}

	err := h.registration.CreatePendingUser(r.Context(), req.Email, req.Username, req.Password, req.CaptchaToken)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpresponse.WriteData(w, http.StatusCreated, map[string]string{"message": "confirmation e-mail sent"})
}

type verifyPendingUserRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (h *APIHandler) VerifyPendingUser(w http.ResponseWriter, r *http.Request) {
	var req verifyPendingUserRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		h.log.Errorw("VerifyPendingUser: malformed body", "error", err)
		httpresponse.WriteError(w, http.StatusBadRequest, "malformedRequest")
		return
	}

	if err := h.registration.VerifyPendingUser(r.Context(), req.Email, req.Code); err != nil {
		h.writeError(w, err)
		return
	}
	httpresponse.WriteData(w, http.StatusOK, map[string]string{"message": "account confirmed"})
}

type createPendingPasswordResetRequest struct {
	Email        string `json:"email"`
	CaptchaToken string `json:"captchaToken"`
}

func (h *APIHandler) CreatePendingPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req createPendingPasswordResetRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		h.log.Errorw("CreatePendingPasswordReset: malformed body", "error", err)
		httpresponse.WriteError(w, http.StatusBadRequest, "malformedRequest")
		return
	}

	if err := h.passwordReset.CreatePendingPasswordReset(r.Context(), req.Email, req.CaptchaToken); err != nil {
		h.writeError(w, err)
		return
	}
	// deliberately identical for unknown addresses
	httpresponse.WriteData(w, http.StatusOK, map[string]string{"message": "if the address exists, a reset e-mail was sent"})
}

func (h *APIHandler) CheckPendingPasswordReset(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	code := chi.URLParam(r, "code")

	userID, err := h.passwordReset.CheckRecordExistence(r.Context(), email, code)
	if err != nil {
		if errs.Is(err, errs.ErrRecordNotFound) {
			httpresponse.WriteError(w, http.StatusNotFound, "recordNotFound")
			return
		}
		h.writeError(w, err)
		return
	}
	httpresponse.WriteData(w, http.StatusOK, map[string]string{"userID": userID})
}

type changePasswordRequest struct {
	UserID             string `json:"userID"`
	Email              string `json:"email"`
	Code               string `json:"code"`
	NewPassword        string `json:"newPassword"`
	ConfirmNewPassword string `json:"confirmNewPassword"`
}

func (h *APIHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		h.log.Errorw("ChangePassword: malformed body", "error", err)
		httpresponse.WriteError(w, http.StatusBadRequest, "malformedRequest")
		return
	}

	err := h.passwordReset.VerifyPendingPasswordReset(r.Context(), req.UserID, req.Email, req.Code, req.NewPassword, req.ConfirmNewPassword)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpresponse.WriteData(w, http.StatusOK, map[string]string{"message": "password changed"})
}
