package news

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"easy-news/internal/common/pagination"
	"easy-news/internal/handler/http/requestid"
	"easy-news/internal/handler/http/respond"
	"easy-news/internal/observability/logging"
	"easy-news/internal/repository"
	newsUC "easy-news/internal/usecase/news"
)

// allExceptPrefix marks a category filter that excludes one category
// instead of selecting it.
const allExceptPrefix = "all-except-"

// parseCategory interprets the category query parameter.
// "X" selects category X; "all-except-X" selects everything but X;
// empty or "all" means no filter.
func parseCategory(raw string) (*repository.CategoryFilter, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "all" {
		return nil, nil
	}
	if name, ok := strings.CutPrefix(raw, allExceptPrefix); ok {
		if name == "" {
			return nil, fmt.Errorf("invalid category filter %q", raw)
		}
		return &repository.CategoryFilter{Name: name, Exclude: true}, nil
	}
	return &repository.CategoryFilter{Name: raw}, nil
}

type ListHandler struct {
	Svc           *newsUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP lists news with cursor pagination.
// @Summary      List news
// @Description  Returns one page of news ordered by date or view count. The next_cursor of a response continues the same ordering.
// @Tags         news
// @Produce      json
// @Param        pageSize query int    false "page size" default(20) minimum(1) maximum(100)
// @Param        cursor   query string false "opaque cursor from a previous page"
// @Param        sort     query string false "sort order" Enums(date, views) default(date)
// @Param        category query string false "category name, or all-except-<name>"
// @Success      200 {object} pagination.Response[DTO]
// @Failure      400 {string} string "invalid parameters or cursor"
// @Failure      500 {string} string "server error"
// @Router       /news [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, h.Logger)

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		logger.Warn("invalid pagination parameters",
			"error", err.Error(),
			"request_id", reqID)
		pagination.RecordError("validation")
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	params = params.WithDefaults(h.PaginationCfg)

	category, err := parseCategory(r.URL.Query().Get("category"))
	if err != nil {
		pagination.RecordError("validation")
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	sortParam := r.URL.Query().Get("sort")
	mode := pagination.ModeDate
	if strings.EqualFold(sortParam, string(repository.SortByViews)) {
		mode = pagination.ModeViews
	}
	pagination.LogRequest(logger, reqID, mode, params)

	result, err := h.Svc.List(ctx, newsUC.ListInput{
		Limit:    params.Limit,
		Cursor:   params.Cursor,
		Sort:     sortParam,
		Category: category,
	})
	if err != nil {
		code := http.StatusInternalServerError
		errType := "database"
		switch {
		case errors.Is(err, newsUC.ErrInvalidCursor), errors.Is(err, newsUC.ErrInvalidSortKey):
			code = http.StatusBadRequest
			errType = "validation"
		}
		pagination.LogError(logger, reqID, mode, err, errType)
		respond.SafeError(w, code, err)
		return
	}

	response := pagination.NewResponse(toDTOs(result.Data), result.NextCursor, result.HasMore, result.Total)

	duration := time.Since(startTime)
	pagination.RecordRequest(http.StatusOK, mode)
	pagination.RecordDuration("handler", duration.Seconds())
	pagination.LogResponse(logger, reqID, mode, len(response.Data), response.HasMore, duration, http.StatusOK)

	respond.JSON(w, http.StatusOK, response)
}
