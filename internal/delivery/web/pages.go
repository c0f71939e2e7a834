package web

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *WebHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "home", pageData{
		Title:      "Mathematical Base Defenders",
		Registered: r.URL.Query().Get("registered") == "true",
	})
}

func (h *WebHandler) Play(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "message", pageData{
		Title:   "Play",
		Message: "The game client connects from here. Solve problems, defend the base!",
	})
}

func (h *WebHandler) About(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "message", pageData{
		Title:   "About",
		Message: "Mathematical Base Defenders is a multiplayer math game. Destroy enemies by solving the problems they carry.",
	})
}

func (h *WebHandler) Changelog(w http.ResponseWriter, r *http.Request) {
	service := chi.URLParam(r, "service")
	switch service {
	case "game", "website":
		h.render(w, http.StatusOK, "message", pageData{
			Title:   "Changelog: " + service,
			Message: "See the project repository for the full " + service + " changelog.",
		})
	default:
		h.render(w, http.StatusNotFound, "message", pageData{
			Title:   "Changelog",
			Message: "No changelog is published for that service.",
		})
	}
}

func (h *WebHandler) PrivacyPolicy(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "message", pageData{
		Title:   "Privacy Policy",
		Message: "We store your e-mail address and a salted hash of your password, and use them only to operate your account.",
	})
}

func (h *WebHandler) OpenSourceAcknowledgements(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "message", pageData{
		Title:   "Open Source Acknowledgements",
		Message: "Mathematical Base Defenders is built on open-source software.",
	})
}

func (h *WebHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	count, err := h.metadata.UsersRegistered(r.Context())
	if err != nil {
		h.log.Errorw("statistics page: counter read failed", "error", err)
		h.redirectError(w, r, err)
		return
	}
	h.render(w, http.StatusOK, "message", pageData{
		Title:   "Statistics",
		Message: fmt.Sprintf("%d players registered.", count),
	})
}
