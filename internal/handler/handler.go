// Package handler exposes the reminder service over fasthttp.
package handler

import (
	"errors"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"reminder-engine/internal/fhirsource"
	"reminder-engine/internal/model"
	"reminder-engine/internal/profile"
	"reminder-engine/internal/service"
)

type Handler struct {
	svc     *service.Service
	logger  zerolog.Logger
	metrics fasthttp.RequestHandler
}

// New builds the HTTP handler. gatherer backs /metrics.
func New(svc *service.Service, logger zerolog.Logger, gatherer prometheus.Gatherer) *Handler {
	return &Handler{
		svc:     svc,
		logger:  logger,
		metrics: fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})),
	}
}

// Handle is the fasthttp entry point. It routes the request and logs it.
func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error().Interface("panic", r).Str("path", string(ctx.Path())).Msg("panic recovered")
			writeError(ctx, fasthttp.StatusInternalServerError, "internal server error")
		}
		h.logger.Info().
			Str("method", string(ctx.Method())).
			Str("path", string(ctx.Path())).
			Int("status", ctx.Response.StatusCode()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}()

	h.route(ctx)
}

func (h *Handler) route(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	switch path {
	case "/reminders":
		h.post(ctx, h.handleReminders)
		return
	case "/reminders/compare":
		h.post(ctx, h.handleCompare)
		return
	case "/profiles":
		h.get(ctx, func(ctx *fasthttp.RequestCtx) { writeJSON(ctx, fasthttp.StatusOK, h.svc.Profiles()) })
		return
	case "/catalog":
		h.get(ctx, func(ctx *fasthttp.RequestCtx) { writeJSON(ctx, fasthttp.StatusOK, h.svc.Catalog()) })
		return
	case "/healthz":
		h.get(ctx, func(ctx *fasthttp.RequestCtx) {
			writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
		})
		return
	case "/metrics":
		h.get(ctx, h.metrics)
		return
	}

	if id, rest, ok := patientPath(path); ok {
		switch rest {
		case "reminders":
			h.get(ctx, func(ctx *fasthttp.RequestCtx) { h.handlePatientReminders(ctx, id) })
			return
		case "profile":
			switch {
			case ctx.IsGet():
				h.handleGetProfile(ctx, id)
			case ctx.IsPut():
				h.handleSetProfile(ctx, id)
			default:
				writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
			}
			return
		}
	}

	writeError(ctx, fasthttp.StatusNotFound, "Not found")
}

// patientPath splits /patients/{id}/{rest}.
func patientPath(path string) (id, rest string, ok bool) {
	trimmed := strings.TrimPrefix(path, "/patients/")
	if trimmed == path {
		return "", "", false
	}
	parts := strings.Split(trimmed, "/")
	if len(parts) != 2 || parts[0] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func (h *Handler) post(ctx *fasthttp.RequestCtx, next fasthttp.RequestHandler) {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	next(ctx)
}

func (h *Handler) get(ctx *fasthttp.RequestCtx, next fasthttp.RequestHandler) {
	if !ctx.IsGet() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	next(ctx)
}

func decodeRequest(ctx *fasthttp.RequestCtx) (*model.ReminderRequest, bool) {
	var req model.ReminderRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return nil, false
	}
	return &req, true
}

func (h *Handler) handleReminders(ctx *fasthttp.RequestCtx) {
	req, ok := decodeRequest(ctx)
	if !ok {
		return
	}
	resp, err := h.svc.Evaluate(ctx, req)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (h *Handler) handleCompare(ctx *fasthttp.RequestCtx) {
	req, ok := decodeRequest(ctx)
	if !ok {
		return
	}
	resp, err := h.svc.Compare(ctx, req)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (h *Handler) handlePatientReminders(ctx *fasthttp.RequestCtx, id string) {
	args := ctx.QueryArgs()
	resp, err := h.svc.EvaluatePatient(ctx, id, args.GetBool("include_optional"), string(args.Peek("now")))
	if err != nil {
		h.fail(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (h *Handler) handleGetProfile(ctx *fasthttp.RequestCtx, id string) {
	resp, err := h.svc.GetProfile(ctx, id)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (h *Handler) handleSetProfile(ctx *fasthttp.RequestCtx, id string) {
	var body model.ProfileUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &body); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := h.svc.SetProfile(ctx, id, body.Profile); err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.SetStatusCode(fasthttp.StatusNoContent)
}

func (h *Handler) fail(ctx *fasthttp.RequestCtx, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidNow), errors.Is(err, profile.ErrInvalidProfile):
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
	case errors.Is(err, fhirsource.ErrNotFound), errors.Is(err, service.ErrSourceDisabled):
		writeError(ctx, fasthttp.StatusNotFound, err.Error())
	default:
		h.logger.Error().Err(err).Str("path", string(ctx.Path())).Msg("request failed")
		writeError(ctx, fasthttp.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "encode response: "+err.Error())
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	body, _ := json.Marshal(model.ErrorResponse{
		Status:  status,
		Message: message,
	})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}
