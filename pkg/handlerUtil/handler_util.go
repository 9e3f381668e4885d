package handlerUtil

import (
	"DriverGuard/internal/alertness"
	"DriverGuard/pkg/log"
	"DriverGuard/pkg/response"
	"errors"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

func (h *ErrorHandler) fields(requestID string, err error, path string, operation string) log.Fields {
	return log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}
}

func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	var respErr *response.Error
	if errors.As(err, &respErr) {
		fields := h.fields(requestID, err, path, operation)
		fields["code"] = respErr.Code
		if respErr.Code >= fiber.StatusInternalServerError {
			h.logger.WithFields(fields).Error("Operation failed with error response")
		} else {
			h.logger.WithFields(fields).Warn("Operation failed with error response")
		}
		return c.Status(respErr.Code).JSON(ErrorResponse{Error: respErr.Err.Error()})
	}

	// Core domain errors
	if errors.Is(err, alertness.ErrMalformedLandmarks) {
		h.logger.WithFields(h.fields(requestID, err, path, operation)).Warn("Malformed landmarks")
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
			Error:   "Malformed landmarks",
			Code:    "MALFORMED_LANDMARKS",
			Details: err.Error(),
		})
	}

	if errors.Is(err, alertness.ErrInvalidTopology) || errors.Is(err, alertness.ErrUnknownSignal) {
		h.logger.WithFields(h.fields(requestID, err, path, operation)).Error("Invalid alertness configuration")
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Invalid alertness configuration",
			Code:  "INVALID_CONFIGURATION",
		})
	}

	traceID := log.ErrorWithTraceID(h.logger, h.fields(requestID, err, path, operation), "Unexpected error")

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   "An unexpected error occurred",
		Details: "trace_id: " + traceID,
	})
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error: "Validation failed: " + err.Error(),
		Code:  "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(utils.StatusMessage(fiber.StatusRequestTimeout))
}

func (h *ErrorHandler) HandleUnauthorized(c *fiber.Ctx, requestID string, message string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"path":       c.Path(),
		"message":    message,
	}).Warn("Unauthorized access")

	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error: message,
		Code:  "UNAUTHORIZED",
	})
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
