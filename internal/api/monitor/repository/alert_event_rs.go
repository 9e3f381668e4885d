package monitorRepository

import (
	"DriverGuard/internal/entity"
	contextPkg "DriverGuard/pkg/context"
	"context"
	"database/sql"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"time"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

type AlertEventDB struct {
	ID          sql.NullString  `db:"id"`
	SubjectID   sql.NullString  `db:"subject_id"`
	Camera      sql.NullString  `db:"camera"`
	Verdict     sql.NullString  `db:"verdict"`
	Status      sql.NullString  `db:"status"`
	EyeFrames   sql.NullInt64   `db:"eye_frames"`
	YawnFrames  sql.NullInt64   `db:"yawn_frames"`
	EAR         sql.NullFloat64 `db:"ear"`
	MAR         sql.NullFloat64 `db:"mar"`
	TiltDegrees sql.NullFloat64 `db:"tilt_degrees"`
	SnapshotKey sql.NullString  `db:"snapshot_key"`
	CreatedAt   time.Time       `db:"created_at"`
}

func (e AlertEventDB) toEntity() entity.AlertEvent {
	event := entity.AlertEvent{
		ID:         e.ID.String,
		SubjectID:  e.SubjectID.String,
		Camera:     e.Camera.String,
		Verdict:    e.Verdict.String,
		Status:     e.Status.String,
		EyeFrames:  int(e.EyeFrames.Int64),
		YawnFrames: int(e.YawnFrames.Int64),
		CreatedAt:  e.CreatedAt,
	}

	if e.EAR.Valid {
		event.EAR = &e.EAR.Float64
	}
	if e.MAR.Valid {
		event.MAR = &e.MAR.Float64
	}
	if e.TiltDegrees.Valid {
		event.TiltDegrees = &e.TiltDegrees.Float64
	}
	if e.SnapshotKey.Valid {
		event.SnapshotKey = &e.SnapshotKey.String
	}

	return event
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil || *v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func (r *alertEventRepository) CreateAlertEvent(c context.Context, event entity.AlertEvent) error {
	requestID := contextPkg.GetRequestID(c)

	createdAt := event.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	argsKV := map[string]interface{}{
		"id":           event.ID,
		"subject_id":   event.SubjectID,
		"camera":       event.Camera,
		"verdict":      event.Verdict,
		"status":       event.Status,
		"eye_frames":   event.EyeFrames,
		"yawn_frames":  event.YawnFrames,
		"ear":          nullFloat(event.EAR),
		"mar":          nullFloat(event.MAR),
		"tilt_degrees": nullFloat(event.TiltDegrees),
		"snapshot_key": nullString(event.SnapshotKey),
		"created_at":   createdAt,
	}

	query, args, err := sqlx.Named(queryCreateAlertEvent, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateAlertEvent")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"subject_id": event.SubjectID,
			"error":      err.Error(),
		}).Error("Database error when creating alert event")
		return err
	}

	return nil
}

func (r *alertEventRepository) ListAlertEvents(c context.Context, filter entity.AlertEventFilter) ([]entity.AlertEvent, error) {
	requestID := contextPkg.GetRequestID(c)

	since := time.Unix(0, 0).UTC()
	if filter.Since != nil {
		since = *filter.Since
	}
	until := time.Now().Add(24 * time.Hour)
	if filter.Until != nil {
		until = *filter.Until
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	argsKV := map[string]interface{}{
		"subject_id": filter.SubjectID,
		"verdict":    filter.Verdict,
		"since":      since,
		"until":      until,
		"limit":      limit,
		"offset":     offset,
	}

	query, args, err := sqlx.Named(queryListAlertEvents, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListAlertEvents named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	var rows []AlertEventDB
	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when listing alert events")
		return nil, err
	}

	events := make([]entity.AlertEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, row.toEntity())
	}

	return events, nil
}
