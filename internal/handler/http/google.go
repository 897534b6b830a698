package http

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/hirepath/hirepath-server/internal/logger"
	"github.com/hirepath/hirepath-server/internal/service"
	"github.com/google/uuid"
)

// stateCookieName holds the anti-CSRF state between the consent redirect and
// the callback.
const stateCookieName = "hirepath_oauth_state"

func (h *Handler) googleAuth(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/api/auth/google",
		MaxAge:   int(10 * time.Minute / time.Second),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.services.AuthService.GoogleAuthURL(state), http.StatusTemporaryRedirect)
}

func (h *Handler) googleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	stateCookie, err := r.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		log.Warn().Msg("oauth state mismatch")
		h.redirectToFrontend(w, r, url.Values{"error": {"invalid oauth state"}})
		return
	}

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		log.Warn().Str("error", errParam).Msg("google consent denied")
		h.redirectToFrontend(w, r, url.Values{"error": {errParam}})
		return
	}

	loggedInUser, err := h.services.AuthService.GoogleLogin(ctx, r.URL.Query().Get("code"))
	if err != nil {
		log.Err(err).Msg("google login failed")

		message := "google sign-in failed"
		if errors.Is(err, service.ErrAccountConflict) {
			message = "this email is already registered, sign in with your password"
		}
		h.redirectToFrontend(w, r, url.Values{"error": {message}})
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, loggedInUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		h.redirectToFrontend(w, r, url.Values{"error": {"google sign-in failed"}})
		return
	}

	h.redirectToFrontend(w, r, url.Values{"token": {token.SignedString}})
}

// redirectToFrontend sends the browser back to the configured frontend with
// either a session token or an error message in the query string.
func (h *Handler) redirectToFrontend(w http.ResponseWriter, r *http.Request, params url.Values) {
	redirect := h.config.App.FrontendURL + "/auth/callback?" + params.Encode()
	http.Redirect(w, r, redirect, http.StatusFound)
}
