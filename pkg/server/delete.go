package server

import (
	"net/http"

	"nasfs/pkg/fstree"
	"nasfs/pkg/log"

	"github.com/labstack/echo/v4"
)

// deleteNode handles DELETE /fs/{path} requests. Directories are removed
// recursively, everything else with a single remove.
func (nas *NASServer) deleteNode(ctx echo.Context) error {
	requested, absolute, err := nas.resolveRequest(ctx)
	if err != nil {
		return nas.pathError(ctx, requested, err)
	}

	if requested == "" {
		log.Warn().Str("user", currentUser(ctx)).Msg("Refused to delete user directory root")
		return ctx.JSON(http.StatusBadRequest, map[string]string{
			"error": "Cannot delete the root of your directory",
			"path":  requested,
		})
	}

	log.Info().
		Str("path", requested).
		Str("user", currentUser(ctx)).
		Msg("Delete request")

	// The category decides between recursive and single-node removal, so
	// it is read once and the removal is dispatched on that snapshot.
	category, _, err := fstree.Classify(absolute)
	if err != nil {
		return nas.pathError(ctx, requested, err)
	}

	if err := fstree.Delete(absolute, category); err != nil {
		return nas.pathError(ctx, requested, err)
	}

	log.Info().
		Str("path", requested).
		Str("category", string(category)).
		Msg("Node deleted")

	return ctx.NoContent(http.StatusOK)
}
