package monitorService

import (
	"DriverGuard/internal/api/monitor"
	"DriverGuard/internal/entity"
	contextPkg "DriverGuard/pkg/context"
	"DriverGuard/pkg/redis"
	"DriverGuard/pkg/response"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *monitorService) GetSubjectStatus(ctx context.Context, subjectID string) (entity.SubjectStatus, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if subjectID == "" {
		return entity.SubjectStatus{}, monitor.ErrInvalidSubject
	}

	if s.redis != nil {
		payload, err := s.redis.GetSubjectStatus(ctx, subjectID)
		switch {
		case err == nil:
			var status entity.SubjectStatus
			if err := json.Unmarshal(payload, &status); err != nil {
				s.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"subject_id": subjectID,
					"error":      err.Error(),
				}).Error("Failed to decode cached subject status")
				return entity.SubjectStatus{}, response.Wrap(monitor.ErrInternalServerError, err)
			}
			return status, nil
		case errors.Is(err, redis.ErrStatusNotFound):
		default:
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"subject_id": subjectID,
				"error":      err.Error(),
			}).Warn("Status cache unavailable, falling back to live sessions")
		}
	}

	sess, ok := s.registry.get(subjectID)
	if !ok {
		return entity.SubjectStatus{}, monitor.ErrSubjectNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.status == nil {
		return entity.SubjectStatus{}, monitor.ErrSubjectNotFound
	}
	return *sess.status, nil
}

func (s *monitorService) ListAlertEvents(ctx context.Context, filter entity.AlertEventFilter) ([]monitor.AlertEventResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if filter.Since != nil && filter.Until != nil && filter.Until.Before(*filter.Since) {
		return nil, monitor.ErrInvalidTimeRange
	}

	if s.repository == nil {
		return nil, response.Wrap(monitor.ErrInternalServerError, errors.New("alert journal not configured"))
	}

	client, err := s.repository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, response.Wrap(monitor.ErrInternalServerError, err)
	}

	events, err := client.AlertEvent.ListAlertEvents(ctx, filter)
	if err != nil {
		return nil, response.Wrap(monitor.ErrInternalServerError, err)
	}

	responses := make([]monitor.AlertEventResponse, 0, len(events))
	for _, e := range events {
		resp := monitor.AlertEventResponse{
			ID:          e.ID,
			SubjectID:   e.SubjectID,
			Camera:      e.Camera,
			Verdict:     e.Verdict,
			Status:      e.Status,
			EyeFrames:   e.EyeFrames,
			YawnFrames:  e.YawnFrames,
			EAR:         e.EAR,
			MAR:         e.MAR,
			TiltDegrees: e.TiltDegrees,
			CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		}

		if e.SnapshotKey != nil && s.s3 != nil {
			url, err := s.s3.PresignUrl(*e.SnapshotKey)
			if err != nil {
				s.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"event_id":   e.ID,
					"error":      err.Error(),
				}).Warn("Failed to presign snapshot")
			} else {
				resp.SnapshotURL = url
			}
		}

		responses = append(responses, resp)
	}

	return responses, nil
}
