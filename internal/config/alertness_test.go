package config

import (
	"DriverGuard/internal/alertness"
	"os"
	"path/filepath"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearAlertnessEnv(t *testing.T) {
	for _, key := range []string{
		"HEAD_TILT_THRESHOLD_DEGREES",
		"EAR_THRESHOLD",
		"MAR_THRESHOLD",
		"CONSECUTIVE_FRAME_LIMIT",
		"SIGNAL_SOURCE",
		"LANDMARK_TOPOLOGY_FILE",
		"SUBJECT_IDLE_TTL",
		"SUBJECT_STATUS_TTL",
		"ALERT_QUEUE_SIZE",
		"SNAPSHOT_UPLOAD_ENABLED",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadAlertnessConfigDefaults(t *testing.T) {
	clearAlertnessEnv(t)

	cfg, err := LoadAlertnessConfig(NewValidator())
	require.NoError(t, err)
	assert.Equal(t, alertness.DefaultThresholds(), cfg.Thresholds)
	assert.Equal(t, alertness.SignalAspect, cfg.Signal)
	assert.Nil(t, cfg.Topology)
}

func TestLoadAlertnessConfigOverrides(t *testing.T) {
	clearAlertnessEnv(t)
	t.Setenv("HEAD_TILT_THRESHOLD_DEGREES", "20")
	t.Setenv("EAR_THRESHOLD", "0.2")
	t.Setenv("MAR_THRESHOLD", "0.6")
	t.Setenv("CONSECUTIVE_FRAME_LIMIT", "10")
	t.Setenv("SIGNAL_SOURCE", "eyelid")

	cfg, err := LoadAlertnessConfig(NewValidator())
	require.NoError(t, err)
	assert.Equal(t, alertness.Thresholds{HeadTiltDegrees: 20, EAR: 0.2, MAR: 0.6, FrameLimit: 10}, cfg.Thresholds)
	assert.Equal(t, alertness.SignalEyelid, cfg.Signal)
}

func TestLoadAlertnessConfigRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"EAR_THRESHOLD":               "-1",
		"HEAD_TILT_THRESHOLD_DEGREES": "abc",
		"CONSECUTIVE_FRAME_LIMIT":     "-3",
		"SIGNAL_SOURCE":               "sonar",
	}

	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearAlertnessEnv(t)
			t.Setenv(key, value)

			_, err := LoadAlertnessConfig(NewValidator())
			assert.Error(t, err)
		})
	}
}

func TestLoadAlertnessConfigTopologyFile(t *testing.T) {
	clearAlertnessEnv(t)

	path := filepath.Join(t.TempDir(), "topology.json")
	topology := alertness.DefaultTopology()
	topology.Name = "mirrored"
	topology.PoseLeftEye, topology.PoseRightEye = topology.PoseRightEye, topology.PoseLeftEye

	payload, err := jsoniter.Marshal(topology)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, payload, 0o600))
	t.Setenv("LANDMARK_TOPOLOGY_FILE", path)

	cfg, err := LoadAlertnessConfig(NewValidator())
	require.NoError(t, err)
	require.NotNil(t, cfg.Topology)
	assert.Equal(t, "mirrored", cfg.Topology.Name)
	assert.Equal(t, 5, cfg.Topology.PoseLeftEye)

	t.Setenv("LANDMARK_TOPOLOGY_FILE", filepath.Join(t.TempDir(), "missing.json"))
	_, err = LoadAlertnessConfig(NewValidator())
	assert.Error(t, err)
}

func TestLoadMonitorSettings(t *testing.T) {
	clearAlertnessEnv(t)
	t.Setenv("SUBJECT_IDLE_TTL", "90s")
	t.Setenv("ALERT_QUEUE_SIZE", "8")
	t.Setenv("SNAPSHOT_UPLOAD_ENABLED", "true")

	settings, err := LoadMonitorSettings(NewValidator())
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, settings.IdleTTL)
	assert.Equal(t, 10*time.Minute, settings.StatusTTL)
	assert.Equal(t, 8, settings.QueueSize)
	assert.True(t, settings.SnapshotUploads)

	t.Setenv("ALERT_QUEUE_SIZE", "0")
	_, err = LoadMonitorSettings(NewValidator())
	assert.Error(t, err)
}
