package monitorService

import (
	"DriverGuard/internal/alertness"
	"DriverGuard/internal/entity"
	"sync"
	"time"
)

// session owns the pipeline of one subject. mu serializes frames so the
// pipeline only ever sees a single writer.
type session struct {
	mu       sync.Mutex
	pipeline *alertness.Pipeline
	last     alertness.Verdict
	hasLast  bool
	status   *entity.SubjectStatus

	refs     int
	lastSeen time.Time
}

type registry struct {
	mu       sync.Mutex
	sessions map[string]*session
	cfg      alertness.Config
	now      func() time.Time
}

func newRegistry(cfg alertness.Config) *registry {
	return &registry{
		sessions: make(map[string]*session),
		cfg:      cfg,
		now:      time.Now,
	}
}

func (r *registry) getOrCreateLocked(subjectID string) (*session, error) {
	if s, ok := r.sessions[subjectID]; ok {
		return s, nil
	}

	pipeline, err := alertness.NewPipeline(r.cfg)
	if err != nil {
		return nil, err
	}

	s := &session{pipeline: pipeline}
	r.sessions[subjectID] = s
	return s, nil
}

// acquire pins a subject for a long-lived connection.
func (r *registry) acquire(subjectID string) (*session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.getOrCreateLocked(subjectID)
	if err != nil {
		return nil, err
	}
	s.refs++
	s.lastSeen = r.now()
	return s, nil
}

// release drops a pin; the last release discards the subject's state.
func (r *registry) release(subjectID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[subjectID]
	if !ok {
		return
	}

	if s.refs > 0 {
		s.refs--
	}
	if s.refs == 0 {
		delete(r.sessions, subjectID)
	}
}

func (r *registry) touch(subjectID string) (*session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.getOrCreateLocked(subjectID)
	if err != nil {
		return nil, err
	}
	s.lastSeen = r.now()
	return s, nil
}

func (r *registry) get(subjectID string) (*session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[subjectID]
	return s, ok
}

// evictIdle removes unpinned subjects not seen within ttl.
func (r *registry) evictIdle(ttl time.Duration) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-ttl)
	var evicted []string
	for id, s := range r.sessions {
		if s.refs == 0 && s.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			evicted = append(evicted, id)
		}
	}
	return evicted
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sessions)
}
