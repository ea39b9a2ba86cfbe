package session

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
	"time"
)

const (
	// SessionCookieName is the name of the session cookie
	SessionCookieName = "sb_sid"
	// SessionIDLength is the length of the session ID in hex characters
	SessionIDLength = 32
	// SessionTTL is how long an idle session is kept
	SessionTTL = 12 * time.Hour
)

// Session represents a user session
type Session struct {
	ID        string
	CreatedAt time.Time
	LastSeen  time.Time

	mu   sync.RWMutex
	Conn *ActiveConnection
}

// Connection returns the active connection, or nil.
func (s *Session) Connection() *ActiveConnection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Conn
}

func (s *Session) setConnection(conn *ActiveConnection) {
	s.mu.Lock()
	s.Conn = conn
	s.mu.Unlock()
}

var (
	sessionsMu sync.RWMutex
	sessions   = map[string]*Session{}
)

// newRandomID generates a new random ID for sessions
func newRandomID() string {
	b := make([]byte, SessionIDLength/2)
	if _, err := rand.Read(b); err != nil {
		panic(err) // This should never happen with crypto/rand
	}
	return hex.EncodeToString(b)
}

// EnsureSession returns the existing session from cookie or creates a new one.
// The cookie is marked Secure when secure is set or the request came over TLS.
func EnsureSession(w http.ResponseWriter, r *http.Request, secure bool) *Session {
	if s := FromRequest(r); s != nil {
		return s
	}

	// Create new session
	now := time.Now()
	s := &Session{
		ID:        newRandomID(),
		CreatedAt: now,
		LastSeen:  now,
	}
	store(s)

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure || r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	return s
}

// FromRequest returns the session named by the request cookie, or nil.
func FromRequest(r *http.Request) *Session {
	c, err := r.Cookie(SessionCookieName)
	if err != nil || c.Value == "" {
		return nil
	}

	sessionsMu.Lock()
	defer sessionsMu.Unlock()
	s, ok := sessions[c.Value]
	if !ok {
		return nil
	}
	s.LastSeen = time.Now()
	return s
}

// SaveSession stores sess and sets its cookie. Tests use it to seed a
// session with a ready connection.
func SaveSession(w http.ResponseWriter, r *http.Request, sess *Session, secure bool) {
	if sess.ID == "" {
		sess.ID = newRandomID()
	}
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = time.Now()
	}
	sess.LastSeen = time.Now()
	store(sess)

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure || r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

func store(s *Session) {
	sessionsMu.Lock()
	sessions[s.ID] = s
	sessionsMu.Unlock()
}

// GetSession retrieves an existing session by ID
func GetSession(sessionID string) (*Session, bool) {
	sessionsMu.RLock()
	defer sessionsMu.RUnlock()
	session, exists := sessions[sessionID]
	return session, exists
}

// DeleteSession removes a session
func DeleteSession(sessionID string) {
	sessionsMu.Lock()
	defer sessionsMu.Unlock()
	delete(sessions, sessionID)
}

// Sweep drops sessions not seen for SessionTTL and returns how many were removed.
func Sweep(now time.Time) int {
	sessionsMu.Lock()
	defer sessionsMu.Unlock()

	removed := 0
	for id, s := range sessions {
		if now.Sub(s.LastSeen) > SessionTTL {
			delete(sessions, id)
			removed++
		}
	}
	return removed
}
