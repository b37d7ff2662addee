// Package session wraps the signed cookie session for browser clients.
//
// The cookie carries only the user id and the CSRF base; it is HMAC-signed by
// gorilla/sessions and surfaced to handlers through echo-contrib's session
// middleware.
package session

import (
	"net/http"

	"github.com/gorilla/sessions"
	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	// CookieName is the session cookie.
	CookieName = "tagblog_session"

	// RememberCookie stores the last full login (alice#0042) so the login
	// form can be prefilled. Readable by page scripts on purpose.
	RememberCookie = "full_username"

	maxAgeDays = 30

	keyUserID   = "user_id"
	keyCSRFBase = "_csrf_base"
)

// NewStore builds the signed cookie store for the middleware.
func NewStore(secret []byte) sessions.Store {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAgeDays * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// Middleware returns the echo middleware that makes the store available to
// Current.
func Middleware(store sessions.Store) echo.MiddlewareFunc {
	return echosession.Middleware(store)
}

// Session is one request's view of the signed cookie.
type Session struct {
	sess *sessions.Session
	c    echo.Context
}

// Current returns the request's session, creating an empty one if the client
// sent no (or an invalid) cookie.
func Current(c echo.Context) (*Session, error) {
	sess, err := echosession.Get(CookieName, c)
	if err != nil {
		// An undecodable cookie (tampered, or signed under a rotated
		// SECRET_KEY) still comes back with a fresh session; treat the
		// client as anonymous instead of failing the request.
		if sess == nil {
			return nil, err
		}
	}
	return &Session{sess: sess, c: c}, nil
}

// UserID returns the authenticated user id, if any.
func (s *Session) UserID() (int64, bool) {
	id, ok := s.sess.Values[keyUserID].(int64)
	return id, ok
}

// Establish regenerates the session around a new user id: all previous values
// are dropped first so an attacker-fixated session cannot survive login.
func (s *Session) Establish(userID int64) error {
	s.sess.Values = map[interface{}]interface{}{keyUserID: userID}
	return s.Save()
}

// Clear drops every session value. Idempotent.
func (s *Session) Clear() error {
	s.sess.Values = map[interface{}]interface{}{}
	return s.Save()
}

// CSRFBase returns the session-bound CSRF base, empty when unset.
func (s *Session) CSRFBase() string {
	base, _ := s.sess.Values[keyCSRFBase].(string)
	return base
}

// SetCSRFBase stores a new CSRF base. The caller persists it with Save; the
// auth handlers save once per request after token generation.
func (s *Session) SetCSRFBase(base string) {
	s.sess.Values[keyCSRFBase] = base
}

// Save writes the cookie onto the response.
func (s *Session) Save() error {
	return s.sess.Save(s.c.Request(), s.c.Response())
}

// SetRememberCookie records the full login for form prefill.
func SetRememberCookie(c echo.Context, fullUsername string) {
	c.SetCookie(&http.Cookie{
		Name:     RememberCookie,
		Value:    fullUsername,
		Path:     "/",
		MaxAge:   maxAgeDays * 24 * 60 * 60,
		SameSite: http.SameSiteStrictMode,
	})
}

// RememberedLogin returns the prefill login from the cookie, empty when absent.
func RememberedLogin(c echo.Context) string {
	cookie, err := c.Cookie(RememberCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}
