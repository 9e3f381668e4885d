package monitorRepository

const (
	queryCreateAlertEvent = `
		INSERT INTO alert_events (
			id,
			subject_id,
			camera,
			verdict,
			status,
			eye_frames,
			yawn_frames,
			ear,
			mar,
			tilt_degrees,
			snapshot_key,
			created_at
		) VALUES (
			:id,
			:subject_id,
			:camera,
			:verdict,
			:status,
			:eye_frames,
			:yawn_frames,
			:ear,
			:mar,
			:tilt_degrees,
			:snapshot_key,
			:created_at
		)
	`

	queryListAlertEvents = `
		SELECT
			id,
			subject_id,
			camera,
			verdict,
			status,
			eye_frames,
			yawn_frames,
			ear,
			mar,
			tilt_degrees,
			snapshot_key,
			created_at
		FROM alert_events
		WHERE (:subject_id = '' OR subject_id = :subject_id)
			AND (:verdict = '' OR verdict = :verdict)
			AND created_at >= :since
			AND created_at <= :until
		ORDER BY created_at DESC
		LIMIT :limit OFFSET :offset
	`
)
