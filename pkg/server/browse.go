package server

import (
	"net/http"

	"nasfs/pkg/fstree"
	"nasfs/pkg/log"
	"nasfs/pkg/models"

	"github.com/labstack/echo/v4"
)

// browse handles GET /fs and GET /fs/{path} requests. Directories return a
// listing, anything else returns the metadata of the single node.
func (nas *NASServer) browse(ctx echo.Context) error {
	requested, absolute, err := nas.resolveRequest(ctx)
	if err != nil {
		return nas.pathError(ctx, requested, err)
	}

	category, _, err := fstree.Classify(absolute)
	if err != nil {
		return nas.pathError(ctx, requested, err)
	}

	if category == fstree.CategoryDirectory {
		entries, err := fstree.List(absolute, requested)
		if err != nil {
			return nas.pathError(ctx, requested, err)
		}

		log.Debug().
			Str("path", requested).
			Str("user", currentUser(ctx)).
			Int("entries", len(entries)).
			Msg("Directory listed")

		return ctx.JSON(http.StatusOK, models.Listing{
			Path:    requested,
			Entries: entries,
		})
	}

	entry, err := fstree.NewEntry(absolute, requested)
	if err != nil {
		return nas.pathError(ctx, requested, err)
	}

	return ctx.JSON(http.StatusOK, entry)
}
