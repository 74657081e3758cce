package server

import (
	"net/http"

	"nasfs/pkg/log"
	"nasfs/pkg/models"
	"nasfs/pkg/render"

	"github.com/labstack/echo/v4"
)

// serveIndex handles GET / requests. Visitors with a valid session get the
// file browser, everyone else gets the login page.
func (nas *NASServer) serveIndex(ctx echo.Context) error {
	if cookie, err := ctx.Cookie(models.SessionCookieName); err == nil {
		if username, err := nas.users.SessionUser(cookie.Value); err == nil {
			page, err := nas.renderer.IndexPage(render.IndexPageParams{
				Theme:    nas.theme,
				Username: username,
				Version:  nas.version,
			})
			if err != nil {
				log.Error().Err(err).Msg("Failed to render index page")
				return ctx.String(http.StatusInternalServerError, "Failed to load page")
			}
			return ctx.HTML(http.StatusOK, page)
		}
	}

	page, err := nas.renderer.AuthPage(render.AuthPageParams{Theme: nas.theme})
	if err != nil {
		log.Error().Err(err).Msg("Failed to render auth page")
		return ctx.String(http.StatusInternalServerError, "Failed to load page")
	}
	return ctx.HTML(http.StatusOK, page)
}
