package monitorRepository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAlertEventDBToEntity(t *testing.T) {
	created := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	row := AlertEventDB{
		ID:          sql.NullString{String: "01HX", Valid: true},
		SubjectID:   sql.NullString{String: "truck-7", Valid: true},
		Camera:      sql.NullString{String: "driver", Valid: true},
		Verdict:     sql.NullString{String: "DROWSY_EYES", Valid: true},
		Status:      sql.NullString{String: "Drowsy: Eyes closed", Valid: true},
		EyeFrames:   sql.NullInt64{Int64: 7, Valid: true},
		EAR:         sql.NullFloat64{Float64: 0.12, Valid: true},
		SnapshotKey: sql.NullString{String: "snapshots/truck-7/01HX.jpg", Valid: true},
		CreatedAt:   created,
	}

	event := row.toEntity()
	assert.Equal(t, "truck-7", event.SubjectID)
	assert.Equal(t, 7, event.EyeFrames)
	if assert.NotNil(t, event.EAR) {
		assert.InDelta(t, 0.12, *event.EAR, 1e-9)
	}
	assert.Nil(t, event.MAR)
	assert.Nil(t, event.TiltDegrees)
	if assert.NotNil(t, event.SnapshotKey) {
		assert.Equal(t, "snapshots/truck-7/01HX.jpg", *event.SnapshotKey)
	}
	assert.Equal(t, created, event.CreatedAt)
}

func TestNullHelpers(t *testing.T) {
	v := 1.5
	assert.Equal(t, sql.NullFloat64{Float64: 1.5, Valid: true}, nullFloat(&v))
	assert.False(t, nullFloat(nil).Valid)

	empty := ""
	assert.False(t, nullString(&empty).Valid)
	assert.False(t, nullString(nil).Valid)
}
