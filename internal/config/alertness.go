package config

import (
	"DriverGuard/internal/alertness"
	monitorService "DriverGuard/internal/api/monitor/service"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

type MonitorSettings struct {
	Alertness       alertness.Config
	IdleTTL         time.Duration `validate:"gte=0"`
	StatusTTL       time.Duration `validate:"gt=0"`
	QueueSize       int           `validate:"gt=0,lte=100000"`
	SnapshotUploads bool
}

type alertnessEnv struct {
	Thresholds alertness.Thresholds
	Signal     string `validate:"omitempty,oneof=aspect eyelid"`
}

// LoadAlertnessConfig reads thresholds and signal choice from the
// environment. Unset keys keep their defaults.
func LoadAlertnessConfig(v *validator.Validate) (alertness.Config, error) {
	var err error
	t := alertness.DefaultThresholds()

	if t.HeadTiltDegrees, err = envFloat("HEAD_TILT_THRESHOLD_DEGREES", t.HeadTiltDegrees); err != nil {
		return alertness.Config{}, err
	}
	if t.EAR, err = envFloat("EAR_THRESHOLD", t.EAR); err != nil {
		return alertness.Config{}, err
	}
	if t.MAR, err = envFloat("MAR_THRESHOLD", t.MAR); err != nil {
		return alertness.Config{}, err
	}
	if t.FrameLimit, err = envInt("CONSECUTIVE_FRAME_LIMIT", t.FrameLimit); err != nil {
		return alertness.Config{}, err
	}

	env := alertnessEnv{
		Thresholds: t,
		Signal:     envString("SIGNAL_SOURCE", alertness.SignalAspect),
	}
	if err := v.Struct(env); err != nil {
		return alertness.Config{}, errors.Wrap(err, "invalid alertness configuration")
	}

	cfg := alertness.Config{
		Thresholds: env.Thresholds,
		Signal:     env.Signal,
	}

	if path := os.Getenv("LANDMARK_TOPOLOGY_FILE"); path != "" {
		topology, err := alertness.LoadTopology(path)
		if err != nil {
			return alertness.Config{}, err
		}
		cfg.Topology = topology
	}

	return cfg, nil
}

func LoadMonitorSettings(v *validator.Validate) (MonitorSettings, error) {
	alertnessCfg, err := LoadAlertnessConfig(v)
	if err != nil {
		return MonitorSettings{}, err
	}

	settings := MonitorSettings{Alertness: alertnessCfg}

	if settings.IdleTTL, err = envDuration("SUBJECT_IDLE_TTL", 5*time.Minute); err != nil {
		return MonitorSettings{}, err
	}
	if settings.StatusTTL, err = envDuration("SUBJECT_STATUS_TTL", 10*time.Minute); err != nil {
		return MonitorSettings{}, err
	}
	if settings.QueueSize, err = envInt("ALERT_QUEUE_SIZE", 256); err != nil {
		return MonitorSettings{}, err
	}
	if settings.SnapshotUploads, err = envBool("SNAPSHOT_UPLOAD_ENABLED", false); err != nil {
		return MonitorSettings{}, err
	}

	if err := v.Struct(settings); err != nil {
		return MonitorSettings{}, errors.Wrap(err, "invalid monitor configuration")
	}

	return settings, nil
}

func (m MonitorSettings) serviceConfig() monitorService.Config {
	return monitorService.Config{
		Pipeline:  m.Alertness,
		IdleTTL:   m.IdleTTL,
		StatusTTL: m.StatusTTL,
		QueueSize: m.QueueSize,
	}
}
