package server

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"nasfs/pkg/log"
	"nasfs/pkg/models"
	"nasfs/pkg/render"
	"nasfs/pkg/userdb"

	"github.com/labstack/echo/v4"
)

// requireSession resolves the session cookie to a username before a
// protected handler runs. Requests without a valid session get the login
// page with a 401 status.
func (nas *NASServer) requireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		cookie, err := ctx.Cookie(models.SessionCookieName)
		if err != nil {
			return nas.unauthorized(ctx, "Protected resource, please log in")
		}

		username, err := nas.users.SessionUser(cookie.Value)
		if err != nil {
			if errors.Is(err, userdb.ErrSessionNotFound) {
				return nas.unauthorized(ctx, "Session expired, please log in again")
			}
			log.Error().Err(err).Msg("Session lookup failed")
			return nas.errorPage(ctx, http.StatusInternalServerError, "Session lookup failed", "")
		}

		ctx.Set("username", username)
		return next(ctx)
	}
}

// currentUser returns the username set by requireSession.
func currentUser(ctx echo.Context) string {
	username, _ := ctx.Get("username").(string)
	return username
}

// login handles POST /auth/login requests.
func (nas *NASServer) login(ctx echo.Context) error {
	username := ctx.FormValue("username")
	password := ctx.FormValue("password")

	user, err := nas.users.Authenticate(username, password)
	if err != nil {
		if errors.Is(err, userdb.ErrInvalidCredentials) {
			log.Warn().Str("username", username).Msg("Failed login attempt")
			return nas.unauthorized(ctx, "Invalid username or password")
		}
		log.Error().Err(err).Str("username", username).Msg("Authentication failed")
		return nas.errorPage(ctx, http.StatusInternalServerError, "Authentication failed", "")
	}

	session, err := nas.users.CreateSession(user.Username, nas.sessionTTL)
	if err != nil {
		log.Error().Err(err).Str("username", user.Username).Msg("Session creation failed")
		return nas.errorPage(ctx, http.StatusInternalServerError, "Could not create a session", "")
	}

	ctx.SetCookie(&http.Cookie{
		Name:     models.SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	// First login may happen before the user's directory exists.
	userDir := filepath.Join(nas.tree.Root(), user.Username)
	if err := os.MkdirAll(userDir, 0o750); err != nil {
		log.Error().Err(err).Str("dir", userDir).Msg("Failed to create user directory")
	}

	log.Info().Str("username", user.Username).Msg("User logged in")
	return ctx.Redirect(http.StatusSeeOther, redirectTarget(ctx))
}

// logout handles POST /auth/logout requests.
func (nas *NASServer) logout(ctx echo.Context) error {
	cookie, err := ctx.Cookie(models.SessionCookieName)
	if err == nil {
		if err := nas.users.DeleteSession(cookie.Value); err != nil && !errors.Is(err, userdb.ErrSessionNotFound) {
			log.Warn().Err(err).Msg("Failed to delete session")
		}
	}

	ctx.SetCookie(&http.Cookie{
		Name:     models.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	return ctx.Redirect(http.StatusSeeOther, "/")
}

// redirectTarget picks the post-login destination. Only same-site absolute
// paths are honored so the form cannot bounce a user to another host.
func redirectTarget(ctx echo.Context) string {
	target := ctx.FormValue("redirect")
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return "/"
	}
	return target
}

// unauthorized renders the login page with a 401 status.
func (nas *NASServer) unauthorized(ctx echo.Context, message string) error {
	page, err := nas.renderer.AuthPage(render.AuthPageParams{
		Theme:   nas.theme,
		Message: message,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to render auth page")
		return ctx.String(http.StatusUnauthorized, message)
	}
	return ctx.HTML(http.StatusUnauthorized, page)
}

// errorPage renders the browser-facing error page.
func (nas *NASServer) errorPage(ctx echo.Context, status int, message, path string) error {
	page, err := nas.renderer.ErrorPage(render.ErrorPageParams{
		Theme:   nas.theme,
		Message: message,
		Path:    path,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to render error page")
		return ctx.String(status, message)
	}
	return ctx.HTML(status, page)
}
