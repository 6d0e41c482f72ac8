package credstore

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/domain/session"
)

type memoryRecord struct {
	token string
	user  []byte
}

// Memory is the in-process store. It backs tests and serves as the degraded
// mode when redis is unreachable. Values are stored as the serialized form
// so load goes through the same decode path as the redis store.
type Memory struct {
	mu      sync.RWMutex
	records map[string]memoryRecord
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string]memoryRecord)}
}

func (m *Memory) Save(_ context.Context, sid string, s session.Session) error {
	b, err := json.Marshal(s.User)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.records[sid] = memoryRecord{token: s.Token, user: b}
	m.mu.Unlock()
	return nil
}

func (m *Memory) Load(ctx context.Context, sid string) (session.Session, bool) {
	m.mu.RLock()
	rec, ok := m.records[sid]
	m.mu.RUnlock()
	if !ok {
		return session.Session{}, false
	}

	s, ok := decodeRecord(rec.token, rec.user)
	if !ok {
		_ = m.Clear(ctx, sid)
		return session.Session{}, false
	}
	return s, true
}

func (m *Memory) Clear(_ context.Context, sid string) error {
	m.mu.Lock()
	delete(m.records, sid)
	m.mu.Unlock()
	return nil
}

// putRaw exists for tests that need to plant corrupt or half-present data.
func (m *Memory) putRaw(sid string, token string, user []byte) {
	m.mu.Lock()
	m.records[sid] = memoryRecord{token: token, user: user}
	m.mu.Unlock()
}

// decodeRecord turns the persisted pair back into a session. Either half
// missing, undecodable JSON, or an unknown role all count as corrupt.
func decodeRecord(token string, user []byte) (session.Session, bool) {
	if token == "" || len(user) == 0 {
		return session.Session{}, false
	}
	var u session.User
	if err := json.Unmarshal(user, &u); err != nil {
		return session.Session{}, false
	}
	s := session.Session{User: u, Token: token}
	if !s.Valid() {
		return session.Session{}, false
	}
	return s, true
}

var _ Store = (*Memory)(nil)
