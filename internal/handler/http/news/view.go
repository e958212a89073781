package news

import (
	"errors"
	"net/http"

	"easy-news/internal/handler/http/pathutil"
	"easy-news/internal/handler/http/respond"
	newsUC "easy-news/internal/usecase/news"
)

type ViewHandler struct{ Svc *newsUC.Service }

// ServeHTTP registers one view for a news item without returning it.
// @Summary      Count a view
// @Description  Increments the view count of the news item with the given stable ID.
// @Tags         news
// @Produce      json
// @Param        id path string true "stable news ID"
// @Success      200 {object} map[string]any
// @Failure      400 {string} string "invalid news ID or action"
// @Failure      404 {string} string "news not found"
// @Failure      500 {string} string "server error"
// @Router       /news/{id}/view [post]
func (h ViewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, action, err := pathutil.ExtractIDAction(r.URL.Path, "/news/")
	if err != nil || action != "view" {
		respond.SafeError(w, http.StatusBadRequest, pathutil.ErrInvalidID)
		return
	}

	if err := h.Svc.IncrementView(r.Context(), id); err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, newsUC.ErrInvalidNewsID) {
			code = http.StatusBadRequest
		} else if errors.Is(err, newsUC.ErrNewsNotFound) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"id":      id,
		"success": true,
	})
}
