package news

import (
	"errors"
	"net/http"
	"strconv"

	"easy-news/internal/handler/http/respond"
	newsUC "easy-news/internal/usecase/news"
)

type PopularHandler struct{ Svc *newsUC.Service }

// ServeHTTP returns the most viewed news within a period.
// @Summary      List popular news
// @Description  Returns news ordered by view count within the given lookback period.
// @Tags         news
// @Produce      json
// @Param        period query string false "lookback period" Enums(24h, 7d, 30d, all) default(24h)
// @Param        limit  query int    false "maximum items" default(20) minimum(1) maximum(100)
// @Success      200 {array} DTO
// @Failure      400 {string} string "invalid period or limit"
// @Failure      500 {string} string "server error"
// @Router       /news/popular [get]
func (h PopularHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respond.SafeError(w, http.StatusBadRequest, errors.New("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	items, err := h.Svc.Popular(r.Context(), r.URL.Query().Get("period"), limit)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, newsUC.ErrInvalidPeriod) {
			code = http.StatusBadRequest
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTOs(items))
}
