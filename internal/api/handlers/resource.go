package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Tenchi88/flask-shop/internal/api/middleware"
	appErrors "github.com/Tenchi88/flask-shop/internal/errors"
	"github.com/Tenchi88/flask-shop/internal/models"
	service "github.com/Tenchi88/flask-shop/internal/services"
	"github.com/Tenchi88/flask-shop/internal/utils"
	"github.com/Tenchi88/flask-shop/internal/utils/response"
)

// ResourceHandler exposes one entity collection over HTTP. Every endpoint is
// a thin parse-dispatch-render wrapper around the ResourceService.
type ResourceHandler struct {
	service service.ResourceService
}

func NewResourceHandler(svc service.ResourceService) *ResourceHandler {
	return &ResourceHandler{service: svc}
}

// List handles GET on the collection endpoint. Supported query parameters:
// q, filter, from, to, fields.
func (h *ResourceHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		query := &service.ListQuery{
			Search: r.URL.Query().Get("q"),
			Filter: r.URL.Query().Get("filter"),
		}

		fromStr := r.URL.Query().Get("from")
		toStr := r.URL.Query().Get("to")

		if fromStr != "" && toStr != "" {
			from, err := strconv.Atoi(fromStr)
			if err != nil {
				response.Error(w, appErrors.BadRequestError("Invalid 'from' parameter"))
				return
			}

			to, err := strconv.Atoi(toStr)
			if err != nil {
				response.Error(w, appErrors.BadRequestError("Invalid 'to' parameter"))
				return
			}

			query.From = &from
			query.To = &to
		}

		if fields := r.URL.Query().Get("fields"); fields != "" {
			query.Fields = strings.Split(fields, ",")
		}

		records, err := h.service.List(r.Context(), query)
		if err != nil {
			logger.Error("Failed to list records", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		// An empty collection still renders as a JSON array.
		if records == nil {
			records = []models.Record{}
		}

		response.WriteJson(w, http.StatusOK, records)
	}
}

// Create handles POST on the collection endpoint and echoes the submitted
// payload on success.
func (h *ResourceHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var raw map[string]any

		if err := utils.DecodeJSONBody(r, &raw); err != nil {
			response.Error(w, appErrors.BadRequestError(err.Error()))
			return
		}

		echo, err := h.service.Create(r.Context(), raw)
		if err != nil {
			logger.Warn("Failed to create record", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Record created")
		response.WriteJson(w, http.StatusCreated, echo)
	}
}

// Get handles GET on the item endpoint.
func (h *ResourceHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}

		record, err := h.service.Get(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.WriteJson(w, http.StatusOK, record)
	}
}

// Replace handles PUT on the item endpoint: full validation, then overwrite
// of the fields present in the payload.
func (h *ResourceHandler) Replace() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, ok := parseID(w, r)
		if !ok {
			return
		}

		var raw map[string]any

		if err := utils.DecodeJSONBody(r, &raw); err != nil {
			response.Error(w, appErrors.BadRequestError(err.Error()))
			return
		}

		if err := h.service.Replace(r.Context(), id, raw); err != nil {
			logger.Warn("Failed to replace record", slog.Int64("id", id), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Record replaced", slog.Int64("id", id))
		response.WriteJson(w, http.StatusOK, response.Ack())
	}
}

// Update handles PATCH on the item endpoint: partial validation, overwrite,
// and returns the full updated record.
func (h *ResourceHandler) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, ok := parseID(w, r)
		if !ok {
			return
		}

		var raw map[string]any

		if err := utils.DecodeJSONBody(r, &raw); err != nil {
			response.Error(w, appErrors.BadRequestError(err.Error()))
			return
		}

		record, err := h.service.Update(r.Context(), id, raw)
		if err != nil {
			logger.Warn("Failed to update record", slog.Int64("id", id), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Record updated", slog.Int64("id", id))
		response.WriteJson(w, http.StatusOK, record)
	}
}

// Delete handles DELETE on the item endpoint.
func (h *ResourceHandler) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, ok := parseID(w, r)
		if !ok {
			return
		}

		if err := h.service.Delete(r.Context(), id); err != nil {
			logger.Warn("Failed to delete record", slog.Int64("id", id), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Record deleted", slog.Int64("id", id))
		response.WriteJson(w, http.StatusOK, response.Ack())
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		response.Error(w, appErrors.BadRequestError("Invalid record id"))
		return 0, false
	}

	return id, true
}
