package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/getblogd/blogd-services/pkg/ajan/httpfx"
	"github.com/getblogd/blogd-services/pkg/ajan/logfx"
	"github.com/getblogd/blogd-services/pkg/api/business/blogs"
)

type blogUpdateRequest struct {
	Content      string `json:"content"`
	UpdatedAtISO string `json:"updated_at_iso"`
}

type bulkDeleteRequest struct {
	IDs []uint64 `json:"ids"`
}

type bulkUpdateRequest struct {
	IDs []uint64            `json:"ids"`
	Set blogs.BulkUpdateSet `json:"set"`
}

func RegisterHTTPRoutesForBlogs( //nolint:funlen
	routes *httpfx.Router,
	logger *logfx.Logger,
	blogsService *blogs.Service,
) {
	routes.
		Route("POST /blogs", func(ctx *httpfx.Context) httpfx.Result {
			var attrs blogs.BlogCreateAttrs

			if err := json.NewDecoder(ctx.Request.Body).Decode(&attrs); err != nil {
				return badRequest(ctx, "malformed request body")
			}

			if ctx.Request.URL.Query().Get("sync") == "true" {
				id, err := blogsService.CreateSync(ctx.Request.Context(), &attrs)
				if err != nil {
					return errorResult(ctx, err)
				}

				return ctx.Results.JSON(map[string]any{
					"status": "created",
					"id":     id,
				})
			}

			receipt, err := blogsService.Enqueue(ctx.Request.Context(), &attrs)
			if err != nil {
				return errorResult(ctx, err)
			}

			return ctx.Results.JSON(map[string]any{
				"status":     "enqueued",
				"stream":     receipt.Stream,
				"message_id": receipt.MessageID,
			})
		}).
		HasSummary("Create blog").
		HasDescription("Enqueues a blog for asynchronous storage, or stores it synchronously with ?sync=true.").
		HasResponse(http.StatusOK)

	routes.
		Route("GET /blogs/{id}", func(ctx *httpfx.Context) httpfx.Result {
			id, ok := parseIDParam(ctx)
			if !ok {
				return badRequest(ctx, "invalid id")
			}

			record, err := blogsService.GetByID(ctx.Request.Context(), id)
			if err != nil {
				return errorResult(ctx, err)
			}

			return ctx.Results.JSON(blogs.FormatBlog(record))
		}).
		HasSummary("Get blog").
		HasDescription("Get a single blog by id.").
		HasResponse(http.StatusOK)

	routes.
		Route("GET /blogs", func(ctx *httpfx.Context) httpfx.Result {
			filters, ok := parseListFilters(ctx)
			if !ok {
				return badRequest(ctx, "invalid limit or offset")
			}

			records, err := blogsService.List(ctx.Request.Context(), filters)
			if err != nil {
				return errorResult(ctx, err)
			}

			return ctx.Results.JSON(blogs.FormatBlogs(records))
		}).
		HasSummary("List blogs").
		HasDescription("List blogs filtered by author, genre and location.").
		HasResponse(http.StatusOK)

	routes.
		Route("PUT /blogs/{id}", func(ctx *httpfx.Context) httpfx.Result {
			id, ok := parseIDParam(ctx)
			if !ok {
				return badRequest(ctx, "invalid id")
			}

			var request blogUpdateRequest

			if err := json.NewDecoder(ctx.Request.Body).Decode(&request); err != nil {
				return badRequest(ctx, "malformed request body")
			}

			err := blogsService.UpdateContent(
				ctx.Request.Context(),
				id,
				request.Content,
				request.UpdatedAtISO,
			)
			if err != nil {
				return errorResult(ctx, err)
			}

			return ctx.Results.JSON(map[string]any{"status": "updated", "id": id})
		}).
		HasSummary("Update blog").
		HasDescription("Replace a blog's content.").
		HasResponse(http.StatusOK)

	routes.
		Route("DELETE /blogs/{id}", func(ctx *httpfx.Context) httpfx.Result {
			id, ok := parseIDParam(ctx)
			if !ok {
				return badRequest(ctx, "invalid id")
			}

			err := blogsService.Delete(ctx.Request.Context(), id)
			if err != nil {
				return errorResult(ctx, err)
			}

			return ctx.Results.JSON(map[string]any{"status": "deleted", "id": id})
		}).
		HasSummary("Delete blog").
		HasDescription("Delete a single blog by id.").
		HasResponse(http.StatusOK)

	routes.
		Route("POST /blogs/bulk-delete", func(ctx *httpfx.Context) httpfx.Result {
			var request bulkDeleteRequest

			if err := json.NewDecoder(ctx.Request.Body).Decode(&request); err != nil {
				return badRequest(ctx, "malformed request body")
			}

			deleted, err := blogsService.BulkDelete(ctx.Request.Context(), request.IDs)
			if err != nil {
				return errorResult(ctx, err)
			}

			return ctx.Results.JSON(map[string]any{"deleted": deleted})
		}).
		HasSummary("Bulk delete blogs").
		HasDescription("Delete a set of blogs by id.").
		HasResponse(http.StatusOK)

	routes.
		Route("POST /blogs/bulk-update", func(ctx *httpfx.Context) httpfx.Result {
			var request bulkUpdateRequest

			if err := json.NewDecoder(ctx.Request.Body).Decode(&request); err != nil {
				return badRequest(ctx, "malformed request body")
			}

			updated, err := blogsService.BulkUpdate(
				ctx.Request.Context(),
				request.IDs,
				request.Set,
			)
			if err != nil {
				return errorResult(ctx, err)
			}

			return ctx.Results.JSON(map[string]any{"updated": updated})
		}).
		HasSummary("Bulk update blogs").
		HasDescription("Rewrite genre, location or content across a set of blogs.").
		HasResponse(http.StatusOK)
}

func parseIDParam(ctx *httpfx.Context) (uint64, bool) {
	id, err := strconv.ParseUint(ctx.Request.PathValue("id"), 10, 64)
	if err != nil {
		return 0, false
	}

	return id, true
}

func parseListFilters(ctx *httpfx.Context) (blogs.ListFilters, bool) {
	query := ctx.Request.URL.Query()

	filters := blogs.ListFilters{ //nolint:exhaustruct
		Author:   query.Get("author"),
		Genre:    query.Get("genre"),
		Location: query.Get("location"),
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return filters, false
		}

		filters.Limit = limit
	}

	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return filters, false
		}

		filters.Offset = offset
	}

	return filters, true
}

func badRequest(ctx *httpfx.Context, detail string) httpfx.Result {
	return ctx.Results.BadRequest(httpfx.WithJSON(map[string]string{"detail": detail}))
}

func errorResult(ctx *httpfx.Context, err error) httpfx.Result {
	switch {
	case errors.Is(err, blogs.ErrInvalidRecord):
		return ctx.Results.BadRequest(httpfx.WithJSON(map[string]string{"detail": err.Error()}))
	case errors.Is(err, blogs.ErrRecordNotFound):
		return ctx.Results.NotFound(httpfx.WithJSON(map[string]string{"detail": "Not found"}))
	default:
		return ctx.Results.Error(
			http.StatusInternalServerError,
			httpfx.WithJSON(map[string]string{"detail": err.Error()}),
		)
	}
}
