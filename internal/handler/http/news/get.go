package news

import (
	"errors"
	"net/http"

	"easy-news/internal/handler/http/pathutil"
	"easy-news/internal/handler/http/respond"
	newsUC "easy-news/internal/usecase/news"
)

type GetHandler struct{ Svc *newsUC.Service }

// ServeHTTP returns one news item and registers a view for it.
// @Summary      Get news detail
// @Description  Returns the news item with the given stable ID. Reading the detail counts as one view.
// @Tags         news
// @Produce      json
// @Param        id path string true "stable news ID"
// @Success      200 {object} DTO
// @Failure      400 {string} string "invalid news ID"
// @Failure      404 {string} string "news not found"
// @Failure      500 {string} string "server error"
// @Router       /news/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/news/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	item, err := h.Svc.GetAndCountView(r.Context(), id)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, newsUC.ErrInvalidNewsID) {
			code = http.StatusBadRequest
		} else if errors.Is(err, newsUC.ErrNewsNotFound) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(item))
}
