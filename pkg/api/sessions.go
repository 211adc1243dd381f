package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// sessionCookie is the name of the portal's session cookie.
const sessionCookie = "scour_session"

// sessionStore maps opaque session tokens to usernames. Sessions live in
// memory only; a restart signs everyone out.
type sessionStore struct {
	mu      sync.Mutex
	byToken map[string]string
}

func newSessionStore() *sessionStore {
	return &sessionStore{byToken: make(map[string]string)}
}

// create mints a new session token for username.
func (s *sessionStore) create(username string) string {
	token := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.byToken[token] = username

	return token
}

// lookup resolves a token to its username.
func (s *sessionStore) lookup(token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	username, ok := s.byToken[token]

	return username, ok
}

// drop invalidates a token.
func (s *sessionStore) drop(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.byToken, token)
}

// currentUser returns the logged-in username for a request, or empty.
func (a *API) currentUser(r *http.Request) string {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return ""
	}

	username, ok := a.sessions.lookup(c.Value)
	if !ok {
		return ""
	}

	return username
}

// setSession attaches a fresh session cookie for username to the response.
func (a *API) setSession(w http.ResponseWriter, username string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    a.sessions.create(username),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSession drops the request's session, if any, and expires the cookie.
func (a *API) clearSession(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		a.sessions.drop(c.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
