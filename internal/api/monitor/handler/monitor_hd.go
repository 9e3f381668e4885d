package monitorHandler

import (
	"DriverGuard/internal/api/monitor"
	"DriverGuard/internal/entity"
	contextPkg "DriverGuard/pkg/context"
	"DriverGuard/pkg/handlerUtil"
	"DriverGuard/pkg/log"
	"errors"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
	"time"
)

func (h *MonitorHandler) Evaluate(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req monitor.EvaluateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
		"subject_id": req.SubjectID,
		"camera":     req.Camera,
	}).Debug("Processing evaluate request")

	c = contextPkg.WithSubjectID(c, req.SubjectID)
	result, err := h.monitorService.ProcessFrame(c, req.SubjectID, monitor.FrameMessage{
		Camera:    req.Camera,
		Frame:     req.Frame,
		Landmarks: req.Landmarks,
	})
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "evaluate_frame")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		if result == nil {
			return errHandler.HandleSuccess(ctx, fiber.StatusAccepted, fiber.Map{
				"message": "Frame ignored",
				"camera":  req.Camera,
			})
		}
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

func (h *MonitorHandler) GetSubjectStatus(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	subjectID := ctx.Params("id")
	if subjectID == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("subject ID is required"), ctx.Path())
	}

	status, err := h.monitorService.GetSubjectStatus(c, subjectID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_subject_status")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, status)
	}
}

func (h *MonitorHandler) ListAlertEvents(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var query monitor.EventQuery
	if err := ctx.QueryParser(&query); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(query); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	filter, err := eventFilter(query)
	if err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	events, err := h.monitorService.ListAlertEvents(c, filter)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_alert_events")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, monitor.EventListResponse{
			Events: events,
			Count:  len(events),
		})
	}
}

func (h *MonitorHandler) GetMetrics(ctx *fiber.Ctx) error {
	return handlerUtil.New(h.log).HandleSuccess(ctx, fiber.StatusOK, h.monitorService.Metrics())
}

func eventFilter(q monitor.EventQuery) (entity.AlertEventFilter, error) {
	filter := entity.AlertEventFilter{
		SubjectID: q.SubjectID,
		Verdict:   q.Verdict,
		Limit:     q.Limit,
		Offset:    q.Offset,
	}

	if q.Since != "" {
		since, err := time.Parse(time.RFC3339, q.Since)
		if err != nil {
			return entity.AlertEventFilter{}, err
		}
		filter.Since = &since
	}

	if q.Until != "" {
		until, err := time.Parse(time.RFC3339, q.Until)
		if err != nil {
			return entity.AlertEventFilter{}, err
		}
		filter.Until = &until
	}

	return filter, nil
}
