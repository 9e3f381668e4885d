package monitorHandler

import (
	"DriverGuard/internal/api/monitor"
	"DriverGuard/internal/middleware"
	contextPkg "DriverGuard/pkg/context"
	"DriverGuard/pkg/log"
	"DriverGuard/pkg/response"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/websocket/v2"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/net/context"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	frameTimeout = 10 * time.Second
	writeTimeout = 10 * time.Second
)

// handleStream evaluates every frame a client sends for one subject. Text
// messages carry a FrameMessage; binary messages are raw driver-camera
// images. A bad frame gets an error reply and the loop continues.
func (h *MonitorHandler) handleStream(c *websocket.Conn) {
	subjectID := c.Query("subject")
	requestID, _ := c.Locals(middleware.RequestIDKey).(string)

	logger := h.log.WithFields(log.Fields{
		"request_id": requestID,
		"subject_id": subjectID,
	})

	if err := h.monitorService.AttachSubject(subjectID); err != nil {
		logger.WithError(err).Warn("Rejecting monitor stream")
		_ = h.writeError(c, err)
		return
	}
	defer h.monitorService.DetachSubject(subjectID)

	logger.Info("Monitor stream connected")
	defer logger.Info("Monitor stream disconnected")

	c.SetPingHandler(func(data string) error {
		if err := c.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(5*time.Second)); err != nil {
			logger.WithError(err).Debug("Error sending pong")
		}
		return nil
	})

	for {
		if err := c.SetReadDeadline(time.Now().Add(h.readTimeout)); err != nil {
			logger.WithError(err).Error("Error setting read deadline")
			return
		}

		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.WithError(err).Warn("Monitor stream error")
			}
			return
		}

		var msg monitor.FrameMessage
		switch messageType {
		case websocket.TextMessage:
			if err := json.Unmarshal(message, &msg); err != nil {
				logger.WithError(err).Debug("Invalid frame message")
				if err := h.writeJSON(c, monitor.WebSocketError{Error: "invalid message", Code: "INVALID_MESSAGE"}); err != nil {
					return
				}
				continue
			}
		case websocket.BinaryMessage:
			msg = monitor.FrameMessage{
				Camera: monitor.DriverCamera,
				Frame:  base64.StdEncoding.EncodeToString(message),
			}
		default:
			continue
		}

		ctx, cancel := context.WithTimeout(
			contextPkg.WithSubjectID(contextPkg.WithRequestID(context.Background(), requestID), subjectID),
			frameTimeout,
		)
		result, err := h.monitorService.ProcessFrame(ctx, subjectID, msg)
		cancel()

		if err != nil {
			if err := h.writeError(c, err); err != nil {
				return
			}
			continue
		}

		if result == nil {
			continue
		}

		if err := h.writeJSON(c, result); err != nil {
			logger.WithError(err).Warn("Error writing alert message")
			return
		}
	}
}

func (h *MonitorHandler) writeJSON(c *websocket.Conn, v interface{}) error {
	if err := c.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	if err := c.WriteJSON(v); err != nil {
		return err
	}
	return c.SetWriteDeadline(time.Time{})
}

func (h *MonitorHandler) writeError(c *websocket.Conn, err error) error {
	return h.writeJSON(c, websocketError(err))
}

func websocketError(err error) monitor.WebSocketError {
	var respErr *response.Error
	if errors.As(err, &respErr) {
		msg := respErr.Err.Error()
		return monitor.WebSocketError{
			Error: msg,
			Code:  strings.ToUpper(strings.ReplaceAll(msg, " ", "_")),
		}
	}
	return monitor.WebSocketError{Error: "internal error", Code: "INTERNAL_ERROR"}
}
