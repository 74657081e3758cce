package server

import (
	"errors"
	"net/http"
	"strings"

	"nasfs/pkg/fstree"
	"nasfs/pkg/log"

	"github.com/labstack/echo/v4"
)

// resolveRequest turns the wildcard tail of a /fs route into an absolute
// path inside the caller's directory. It returns the decoded request path
// for error bodies along with the resolved absolute path. On failure the
// returned request path falls back to the raw tail.
func (nas *NASServer) resolveRequest(ctx echo.Context) (string, string, error) {
	// Echo routes on the raw URI, so the wildcard keeps its percent
	// escapes. RemoveTrailingSlash only rewrites the decoded path, which
	// leaves a trailing slash on the raw tail to trim here.
	raw := strings.TrimSuffix(ctx.Param("*"), "/")

	requested, err := fstree.DecodePath(raw)
	if err != nil {
		return raw, "", err
	}

	// The username prefix is joined with plain concatenation. A cleaning
	// join would fold a leading slash or ".." into the prefix before
	// Resolve could see it.
	username := currentUser(ctx)
	namespaced := username
	switch {
	case strings.HasPrefix(requested, "/"):
		namespaced = requested
	case requested != "":
		namespaced = username + "/" + requested
	}

	absolute, err := nas.tree.Resolve(namespaced)
	if err != nil {
		return requested, "", err
	}

	return requested, absolute, nil
}

// pathError maps fstree errors onto the HTTP contract of the /fs routes.
// Bodies echo the path as the client sent it, never the resolved one.
func (nas *NASServer) pathError(ctx echo.Context, requested string, err error) error {
	var encodingErr fstree.InvalidEncodingError
	var outsideErr fstree.OutsideRootError
	var invalidErr fstree.InvalidPathError
	var notFoundErr fstree.NotFoundError
	var mismatchErr fstree.TypeMismatchError
	var deleteErr fstree.DeleteFailedError

	switch {
	case errors.As(err, &encodingErr):
		log.Warn().Str("raw", encodingErr.Raw).Msg("Rejected undecodable path")
		return ctx.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid path encoding",
			"path":  requested,
		})
	case errors.As(err, &outsideErr):
		return ctx.JSON(http.StatusForbidden, map[string]string{
			"error": "Path is outside your directory",
			"path":  requested,
		})
	case errors.As(err, &invalidErr):
		return ctx.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid path",
			"path":  requested,
		})
	case errors.As(err, &notFoundErr):
		return ctx.JSON(http.StatusNotFound, map[string]string{
			"error": "Path not found",
			"path":  requested,
		})
	case errors.As(err, &mismatchErr):
		return ctx.JSON(http.StatusConflict, map[string]string{
			"error": "Node changed type, retry the operation",
			"path":  requested,
		})
	case errors.As(err, &deleteErr):
		return ctx.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Delete failed",
			"path":  requested,
		})
	default:
		log.Error().Err(err).Str("path", requested).Msg("Unhandled filesystem error")
		return ctx.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Operation failed",
			"path":  requested,
		})
	}
}
