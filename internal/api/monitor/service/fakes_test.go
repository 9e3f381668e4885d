package monitorService

import (
	"DriverGuard/internal/alertness"
	monitorRepository "DriverGuard/internal/api/monitor/repository"
	"DriverGuard/internal/entity"
	"DriverGuard/pkg/redis"
	"context"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type fakeLandmark struct {
	mu    sync.Mutex
	frame alertness.Frame
	err   error
	calls int
}

func (f *fakeLandmark) Detect(ctx context.Context, frame []byte) (alertness.Frame, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.frame, f.err
}

func (f *fakeLandmark) IsConnected() bool { return f.err == nil }
func (f *fakeLandmark) Reconnect() error  { return nil }
func (f *fakeLandmark) Close()            {}

type fakeRedis struct {
	mu   sync.Mutex
	data map[string][]byte
	ttl  time.Duration
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string][]byte)}
}

func (f *fakeRedis) SetSubjectStatus(ctx context.Context, subjectID string, payload []byte, expiration time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[subjectID] = payload
	f.ttl = expiration
	return nil
}

func (f *fakeRedis) GetSubjectStatus(ctx context.Context, subjectID string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	payload, ok := f.data[subjectID]
	if !ok {
		return nil, redis.ErrStatusNotFound
	}
	return payload, nil
}

func (f *fakeRedis) DeleteSubjectStatus(ctx context.Context, subjectID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, subjectID)
	return nil
}

func (f *fakeRedis) Ping(ctx context.Context) error { return nil }

type fakeStore struct {
	mu      sync.Mutex
	events  []entity.AlertEvent
	entered chan struct{}
	block   chan struct{}
}

func (f *fakeStore) CreateAlertEvent(c context.Context, event entity.AlertEvent) error {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakeStore) ListAlertEvents(c context.Context, filter entity.AlertEventFilter) ([]entity.AlertEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.AlertEvent, len(f.events))
	copy(out, f.events)
	return out, nil
}

func (f *fakeStore) recorded() []entity.AlertEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.AlertEvent, len(f.events))
	copy(out, f.events)
	return out
}

type fakeRepository struct {
	store *fakeStore
}

func (f *fakeRepository) NewClient(tx bool) (monitorRepository.Client, error) {
	return monitorRepository.Client{
		AlertEvent: f.store,
		Commit:     func() error { return nil },
		Rollback:   func() error { return nil },
	}, nil
}

type fakeS3 struct {
	mu      sync.Mutex
	uploads map[string][]byte
}

func newFakeS3() *fakeS3 {
	return &fakeS3{uploads: make(map[string][]byte)}
}

func (f *fakeS3) UploadSnapshot(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads[key] = data
	return key, nil
}

func (f *fakeS3) PresignUrl(key string) (string, error) {
	return "https://signed.example/" + key, nil
}

func (f *fakeS3) DeleteFile(key string) error { return nil }
