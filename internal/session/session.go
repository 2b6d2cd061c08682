package session

import (
	"sync"

	"github.com/Domenick1991/flightres/internal/domain"
	"github.com/google/uuid"
)

// Session holds the state of one connected customer: the authenticated
// identity, if any, and the itinerary cache of the most recent search. The
// cache is keyed by the 1-based position in the search output; indices are
// only meaningful until the next search replaces the cache.
type Session struct {
	mu            sync.RWMutex
	cid           int64
	name          string
	authenticated bool
	itineraries   map[int]domain.Itinerary
}

func New() *Session {
	return &Session{}
}

// Authenticate records a successful login, replacing any previous identity.
func (s *Session) Authenticate(cid int64, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cid = cid
	s.name = name
	s.authenticated = true
}

// Identity returns the customer id and display name, or false if no login
// has succeeded in this session.
func (s *Session) Identity() (int64, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cid, s.name, s.authenticated
}

// SetItineraries replaces the cache wholesale with the given search result,
// indexed 1..N in order. A nil or empty result leaves an empty cache.
func (s *Session) SetItineraries(itins []domain.Itinerary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.itineraries = make(map[int]domain.Itinerary, len(itins))
	for i, itin := range itins {
		s.itineraries[i+1] = itin
	}
}

// Itinerary looks up a cached itinerary by its search index.
func (s *Session) Itinerary(index int) (domain.Itinerary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	itin, ok := s.itineraries[index]
	return itin, ok
}

// HasItineraries reports whether the cache holds at least one itinerary.
// A search that matched nothing leaves the cache empty, so booking against
// it is treated the same as never having searched.
func (s *Session) HasItineraries() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.itineraries) > 0
}

// Store maps opaque tokens to live sessions. Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Create registers a fresh session and returns its token.
func (st *Store) Create() (string, *Session) {
	token := uuid.NewString()
	sess := New()
	st.mu.Lock()
	st.sessions[token] = sess
	st.mu.Unlock()
	return token, sess
}

func (st *Store) Get(token string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	sess, ok := st.sessions[token]
	return sess, ok
}

// Delete drops a session; deleting an unknown token is a no-op.
func (st *Store) Delete(token string) {
	st.mu.Lock()
	delete(st.sessions, token)
	st.mu.Unlock()
}
