package web

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/showfinder/showfinder/internal/client"
	"github.com/showfinder/showfinder/internal/widget"
)

// SessionCookie names the cookie carrying a visitor's session id.
const SessionCookie = "showfinder_session"

// SessionStore maps session ids to widgets. Least recently used sessions are
// evicted once size is reached, and every session expires after ttl.
type SessionStore struct {
	client   client.Client
	ttl      time.Duration
	sessions *expirable.LRU[string, *widget.Widget]
}

// NewSessionStore creates a store whose widgets share c.
func NewSessionStore(c client.Client, size int, ttl time.Duration) *SessionStore {
	if size <= 0 {
		size = 10000
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionStore{
		client:   c,
		ttl:      ttl,
		sessions: expirable.NewLRU[string, *widget.Widget](size, nil, ttl),
	}
}

// Lookup returns the widget of the session named by r's cookie, if any.
func (s *SessionStore) Lookup(r *http.Request) (*widget.Widget, bool) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return nil, false
	}
	return s.sessions.Get(cookie.Value)
}

// Get returns the widget for r's session, starting a new session (and
// setting its cookie on w) when there is none.
func (s *SessionStore) Get(w http.ResponseWriter, r *http.Request) *widget.Widget {
	if wg, ok := s.Lookup(r); ok {
		return wg
	}

	id := uuid.NewString()
	wg := widget.New(s.client)
	s.sessions.Add(id, wg)

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return wg
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	return s.sessions.Len()
}
