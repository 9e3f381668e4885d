package monitorService

import (
	"DriverGuard/internal/alertness"
	"DriverGuard/internal/api/monitor"
	monitorRepository "DriverGuard/internal/api/monitor/repository"
	"DriverGuard/internal/entity"
	"DriverGuard/pkg/landmark"
	"DriverGuard/pkg/metrics"
	"DriverGuard/pkg/redis"
	"DriverGuard/pkg/s3"
	"DriverGuard/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"sync"
	"time"
)

type IMonitorService interface {
	ProcessFrame(ctx context.Context, subjectID string, msg monitor.FrameMessage) (*monitor.AlertMessage, error)
	AttachSubject(subjectID string) error
	DetachSubject(subjectID string)
	GetSubjectStatus(ctx context.Context, subjectID string) (entity.SubjectStatus, error)
	ListAlertEvents(ctx context.Context, filter entity.AlertEventFilter) ([]monitor.AlertEventResponse, error)
	Metrics() metrics.Snapshot
	Close(ctx context.Context) error
}

type Config struct {
	Pipeline  alertness.Config
	IdleTTL   time.Duration
	StatusTTL time.Duration
	QueueSize int
}

type Dependencies struct {
	Repository monitorRepository.Repository
	Redis      redis.IRedis
	Landmark   landmark.IClient
	S3         s3.ItfS3
	Utils      utils.IUtils
	Metrics    *metrics.Metrics
}

type monitorService struct {
	log        *logrus.Logger
	cfg        Config
	repository monitorRepository.Repository
	redis      redis.IRedis
	landmark   landmark.IClient
	s3         s3.ItfS3
	utils      utils.IUtils
	metrics    *metrics.Metrics

	registry *registry
	recorder *recorder

	stop     chan struct{}
	stopOnce sync.Once
}

func NewMonitorService(log *logrus.Logger, cfg Config, deps Dependencies) (IMonitorService, error) {
	// Fail at startup rather than on the first frame.
	if _, err := alertness.NewPipeline(cfg.Pipeline); err != nil {
		return nil, err
	}

	if deps.Utils == nil {
		deps.Utils = utils.New()
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}
	if cfg.StatusTTL <= 0 {
		cfg.StatusTTL = 10 * time.Minute
	}

	s := &monitorService{
		log:        log,
		cfg:        cfg,
		repository: deps.Repository,
		redis:      deps.Redis,
		landmark:   deps.Landmark,
		s3:         deps.S3,
		utils:      deps.Utils,
		metrics:    deps.Metrics,
		registry:   newRegistry(cfg.Pipeline),
		recorder:   newRecorder(log, deps.Repository, deps.S3, deps.Metrics, cfg.QueueSize),
		stop:       make(chan struct{}),
	}

	if cfg.IdleTTL > 0 {
		go s.janitor()
	}

	return s, nil
}

func (s *monitorService) janitor() {
	interval := s.cfg.IdleTTL / 2
	if interval < time.Second {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if evicted := s.registry.evictIdle(s.cfg.IdleTTL); len(evicted) > 0 {
				s.log.WithField("subjects", evicted).Debug("Evicted idle subjects")
				s.metrics.SetActiveSubjects(s.registry.len())
			}
		}
	}
}

func (s *monitorService) AttachSubject(subjectID string) error {
	if subjectID == "" {
		return monitor.ErrInvalidSubject
	}

	if _, err := s.registry.acquire(subjectID); err != nil {
		return err
	}
	s.metrics.IncrementWebSocketConnections()
	s.metrics.SetActiveSubjects(s.registry.len())
	return nil
}

func (s *monitorService) DetachSubject(subjectID string) {
	s.registry.release(subjectID)
	s.metrics.DecrementWebSocketConnections()
	s.metrics.SetActiveSubjects(s.registry.len())
}

func (s *monitorService) Metrics() metrics.Snapshot {
	return s.metrics.Snapshot()
}

func (s *monitorService) Close(ctx context.Context) error {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	return s.recorder.close(ctx)
}
