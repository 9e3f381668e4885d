package monitorService

import (
	monitorRepository "DriverGuard/internal/api/monitor/repository"
	"DriverGuard/internal/entity"
	contextPkg "DriverGuard/pkg/context"
	"DriverGuard/pkg/log"
	"DriverGuard/pkg/metrics"
	"DriverGuard/pkg/s3"
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type alertJob struct {
	requestID   string
	event       entity.AlertEvent
	snapshot    []byte
	contentType string
}

// recorder persists alert events off the frame path. Jobs that do not fit
// in the queue are dropped.
type recorder struct {
	log     *logrus.Logger
	repo    monitorRepository.Repository
	s3      s3.ItfS3
	metrics *metrics.Metrics
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	queue  chan alertJob
	done   chan struct{}
}

func newRecorder(log *logrus.Logger, repo monitorRepository.Repository, storage s3.ItfS3, m *metrics.Metrics, size int) *recorder {
	if size <= 0 {
		size = 1
	}

	r := &recorder{
		log:     log,
		repo:    repo,
		s3:      storage,
		metrics: m,
		timeout: 10 * time.Second,
		queue:   make(chan alertJob, size),
		done:    make(chan struct{}),
	}

	go r.run()

	return r
}

func (r *recorder) enqueue(job alertJob) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return false
	}

	select {
	case r.queue <- job:
		return true
	default:
		r.metrics.IncrementDroppedEvents()
		r.log.WithFields(logrus.Fields{
			"request_id": job.requestID,
			"subject_id": job.event.SubjectID,
			"verdict":    job.event.Verdict,
		}).Warn("Alert queue full, dropping event")
		return false
	}
}

func (r *recorder) run() {
	defer close(r.done)

	for job := range r.queue {
		r.record(job)
	}
}

func (r *recorder) record(job alertJob) {
	ctx := contextPkg.WithSubjectID(contextPkg.WithRequestID(context.Background(), job.requestID), job.event.SubjectID)
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	logger := log.FromContext(r.log, ctx).WithField("event_id", job.event.ID)

	if r.s3 != nil && len(job.snapshot) > 0 {
		key, err := r.s3.UploadSnapshot(ctx, s3.SnapshotKey(job.event.SubjectID, job.event.ID), job.snapshot, job.contentType)
		if err != nil {
			logger.WithError(err).Warn("Failed to upload alert snapshot")
		} else {
			job.event.SnapshotKey = &key
		}
	}

	if r.repo == nil {
		return
	}

	client, err := r.repo.NewClient(false)
	if err != nil {
		logger.WithError(err).Error("Failed to create repository client")
		return
	}

	if err := client.AlertEvent.CreateAlertEvent(ctx, job.event); err != nil {
		logger.WithError(err).Error("Failed to record alert event")
		return
	}

	logger.Debug("Alert event recorded")
}

// close stops accepting jobs and waits for queued ones until ctx expires.
func (r *recorder) close(ctx context.Context) error {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.queue)
	}
	r.mu.Unlock()

	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
