package monitorService

import (
	"DriverGuard/internal/alertness"
	"DriverGuard/internal/api/monitor"
	"DriverGuard/internal/entity"
	contextPkg "DriverGuard/pkg/context"
	"DriverGuard/pkg/log"
	"DriverGuard/pkg/response"
	"errors"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const statusWriteTimeout = time.Second

func (s *monitorService) ProcessFrame(ctx context.Context, subjectID string, msg monitor.FrameMessage) (*monitor.AlertMessage, error) {
	requestID := contextPkg.GetRequestID(ctx)
	subjectID = strings.TrimSpace(subjectID)

	if msg.Camera != monitor.DriverCamera {
		s.metrics.IncrementIgnored()
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"subject_id": subjectID,
			"camera":     msg.Camera,
		}).Debug("Ignoring frame from unrecognized camera")
		return nil, nil
	}

	if subjectID == "" {
		return nil, monitor.ErrInvalidSubject
	}

	frame, raw, err := s.resolveLandmarks(ctx, msg)
	if err != nil {
		s.metrics.IncrementErrors()
		return nil, err
	}

	sess, err := s.registry.touch(subjectID)
	if err != nil {
		s.metrics.IncrementErrors()
		return nil, response.Wrap(monitor.ErrInternalServerError, err)
	}
	s.metrics.SetActiveSubjects(s.registry.len())

	start := time.Now()

	sess.mu.Lock()
	result, err := sess.pipeline.Process(frame)
	if err != nil {
		sess.mu.Unlock()
		s.metrics.IncrementErrors()
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"subject_id": subjectID,
			"error":      err.Error(),
		}).Warn("Rejected malformed landmarks")
		if errors.Is(err, alertness.ErrMalformedLandmarks) {
			return nil, response.Wrap(monitor.ErrMalformedLandmarks, err)
		}
		return nil, err
	}

	transition := result.Verdict.IsAlert() && (!sess.hasLast || sess.last != result.Verdict)
	sess.last = result.Verdict
	sess.hasLast = true

	now := time.Now().UTC()
	status := newSubjectStatus(subjectID, result, now)
	sess.status = &status
	sess.mu.Unlock()

	s.metrics.RecordVerdict(result.Verdict, time.Since(start))

	s.log.WithFields(logrus.Fields{
		"request_id":  requestID,
		"subject_id":  subjectID,
		"verdict":     result.Verdict.Code(),
		"eye_frames":  result.EyeFrames,
		"yawn_frames": result.YawnFrames,
	}).Debug("Frame evaluated")

	s.cacheStatus(ctx, status)

	if transition {
		s.journal(requestID, subjectID, msg.Camera, result, raw, now)
	}

	return newAlertMessage(msg.Camera, subjectID, result, now), nil
}

// resolveLandmarks prefers inline landmarks and otherwise decodes the frame
// and asks the landmark service. raw is the decoded image, if any.
func (s *monitorService) resolveLandmarks(ctx context.Context, msg monitor.FrameMessage) (alertness.Frame, []byte, error) {
	if msg.Landmarks != nil {
		return msg.Landmarks.Frame(), nil, nil
	}

	if msg.Frame == "" {
		return alertness.Frame{}, nil, monitor.ErrInvalidFrame
	}

	raw, err := s.utils.DecodeBase64Frame(msg.Frame)
	if err != nil {
		return alertness.Frame{}, nil, response.Wrap(monitor.ErrInvalidFrame, err)
	}

	if s.landmark == nil {
		return alertness.Frame{}, nil, monitor.ErrLandmarkServiceUnavailable
	}

	frame, err := s.landmark.Detect(ctx, raw)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Landmark detection failed")
		return alertness.Frame{}, nil, response.Wrap(monitor.ErrLandmarkServiceUnavailable, err)
	}

	return frame, raw, nil
}

func (s *monitorService) cacheStatus(ctx context.Context, status entity.SubjectStatus) {
	if s.redis == nil {
		return
	}

	payload, err := json.Marshal(status)
	if err != nil {
		s.log.WithError(err).Error("Failed to encode subject status")
		return
	}

	c, cancel := context.WithTimeout(ctx, statusWriteTimeout)
	defer cancel()

	if err := s.redis.SetSubjectStatus(c, status.SubjectID, payload, s.cfg.StatusTTL); err != nil {
		log.FromContext(s.log, ctx).WithField(log.SubjectIDKey, status.SubjectID).WithError(err).Warn("Failed to cache subject status")
	}
}

func (s *monitorService) journal(requestID, subjectID, camera string, result alertness.Result, raw []byte, at time.Time) {
	id, err := s.utils.NewULIDFromTimestamp(at)
	if err != nil {
		s.log.WithError(err).Error("Failed to generate event id")
		return
	}

	event := entity.AlertEvent{
		ID:          id,
		SubjectID:   subjectID,
		Camera:      camera,
		Verdict:     result.Verdict.Code(),
		Status:      result.Verdict.String(),
		EyeFrames:   result.EyeFrames,
		YawnFrames:  result.YawnFrames,
		TiltDegrees: result.TiltDegrees,
		CreatedAt:   at,
	}
	if result.Sample != nil {
		ear, mar := result.Sample.EAR, result.Sample.MAR
		event.EAR = &ear
		event.MAR = &mar
	}

	var contentType string
	if len(raw) > 0 {
		contentType = http.DetectContentType(raw)
	}

	s.recorder.enqueue(alertJob{
		requestID:   requestID,
		event:       event,
		snapshot:    raw,
		contentType: contentType,
	})
}

func newSubjectStatus(subjectID string, result alertness.Result, at time.Time) entity.SubjectStatus {
	status := entity.SubjectStatus{
		SubjectID:   subjectID,
		Verdict:     result.Verdict.Code(),
		Status:      result.Verdict.String(),
		Critical:    result.Verdict.Critical(),
		EyeFrames:   result.EyeFrames,
		YawnFrames:  result.YawnFrames,
		TiltDegrees: result.TiltDegrees,
		UpdatedAt:   at,
	}
	if result.Sample != nil {
		ear, mar := result.Sample.EAR, result.Sample.MAR
		status.EAR = &ear
		status.MAR = &mar
	}
	return status
}

func newAlertMessage(camera, subjectID string, result alertness.Result, at time.Time) *monitor.AlertMessage {
	msg := &monitor.AlertMessage{
		Camera:      camera,
		Status:      result.Verdict.String(),
		Critical:    result.Verdict.Critical(),
		Verdict:     result.Verdict.Code(),
		SubjectID:   subjectID,
		EyeFrames:   result.EyeFrames,
		YawnFrames:  result.YawnFrames,
		TiltDegrees: result.TiltDegrees,
		Timestamp:   at,
	}
	if result.Sample != nil {
		ear, mar := result.Sample.EAR, result.Sample.MAR
		msg.EAR = &ear
		msg.MAR = &mar
	}
	return msg
}
