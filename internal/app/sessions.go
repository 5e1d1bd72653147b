package app

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionStore keeps open edit sessions in memory, keyed by a random id that
// the edit page posts back.
type SessionStore struct {
	ttl time.Duration
	now func() time.Time

	mu    sync.Mutex
	items map[string]storedSession
}

type storedSession struct {
	s       *EditSession
	touched time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{ttl: ttl, now: time.Now, items: map[string]storedSession{}}
}

// Put assigns s an id and stores it. Expired sessions are swept on the way.
func (st *SessionStore) Put(s *EditSession) string {
	s.ID = uuid.NewString()
	st.mu.Lock()
	defer st.mu.Unlock()
	now := st.now()
	for id, it := range st.items {
		if now.Sub(it.touched) > st.ttl && it.s.State() != StateSubmitting {
			delete(st.items, id)
		}
	}
	st.items[s.ID] = storedSession{s: s, touched: now}
	return s.ID
}

// Get returns the session only to the user and hotel it was opened for.
func (st *SessionStore) Get(id string, userID, serviceID int64) (*EditSession, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	it, ok := st.items[id]
	if !ok || it.s.UserID != userID || it.s.ServiceID != serviceID {
		return nil, false
	}
	now := st.now()
	if now.Sub(it.touched) > st.ttl && it.s.State() != StateSubmitting {
		delete(st.items, id)
		return nil, false
	}
	it.touched = now
	st.items[id] = it
	return it.s, true
}

func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.items, id)
}

func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.items)
}
