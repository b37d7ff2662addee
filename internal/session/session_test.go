package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func serve(t *testing.T, cookies []*http.Cookie, h echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.Use(Middleware(NewStore([]byte("test-secret"))))
	e.GET("/", h)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSession_EstablishAndReadBack(t *testing.T) {
	rec := serve(t, nil, func(c echo.Context) error {
		sess, err := Current(c)
		if err != nil {
			return err
		}
		if _, ok := sess.UserID(); ok {
			t.Fatalf("fresh session should have no user id")
		}
		if err := sess.Establish(42); err != nil {
			return err
		}
		return c.NoContent(http.StatusOK)
	})

	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("expected a session cookie to be set")
	}

	rec = serve(t, cookies, func(c echo.Context) error {
		sess, err := Current(c)
		if err != nil {
			return err
		}
		id, ok := sess.UserID()
		if !ok || id != 42 {
			t.Fatalf("expected user id 42, got %d (ok=%v)", id, ok)
		}
		return c.NoContent(http.StatusOK)
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
}

func TestSession_EstablishDropsOldValues(t *testing.T) {
	rec := serve(t, nil, func(c echo.Context) error {
		sess, err := Current(c)
		if err != nil {
			return err
		}
		sess.SetCSRFBase("old-base")
		if err := sess.Establish(7); err != nil {
			return err
		}
		if sess.CSRFBase() != "" {
			t.Fatalf("establish must drop prior values (fixation defense)")
		}
		return c.NoContent(http.StatusOK)
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
}

func TestSession_ClearIsIdempotent(t *testing.T) {
	rec := serve(t, nil, func(c echo.Context) error {
		sess, err := Current(c)
		if err != nil {
			return err
		}
		if err := sess.Establish(7); err != nil {
			return err
		}
		if err := sess.Clear(); err != nil {
			return err
		}
		if err := sess.Clear(); err != nil {
			return err
		}
		if _, ok := sess.UserID(); ok {
			t.Fatalf("cleared session still has a user id")
		}
		return c.NoContent(http.StatusOK)
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
}

func TestSession_TamperedCookieIsAnonymous(t *testing.T) {
	rec := serve(t, nil, func(c echo.Context) error {
		sess, _ := Current(c)
		return sess.Establish(42)
	})

	cookies := rec.Result().Cookies()
	for _, c := range cookies {
		if c.Name == CookieName && len(c.Value) > 4 {
			c.Value = c.Value[:len(c.Value)-4] + "zzzz"
		}
	}

	rec = serve(t, cookies, func(c echo.Context) error {
		sess, err := Current(c)
		if err != nil {
			t.Fatalf("tampered cookie must yield a fresh session, got error: %v", err)
		}
		if _, ok := sess.UserID(); ok {
			t.Fatalf("tampered cookie yielded an authenticated session")
		}
		// The fresh session is fully usable: a new identity can be
		// established over the broken cookie.
		if err := sess.Establish(9); err != nil {
			t.Fatalf("establish over tampered cookie: %v", err)
		}
		return c.NoContent(http.StatusOK)
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
}

func TestRememberCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	SetRememberCookie(c, "alice#0042")

	res := rec.Result()
	var found *http.Cookie
	for _, ck := range res.Cookies() {
		if ck.Name == RememberCookie {
			found = ck
		}
	}
	if found == nil || found.Value != "alice#0042" {
		t.Fatalf("remember cookie not set: %+v", found)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	req2.AddCookie(found)
	c2 := e.NewContext(req2, httptest.NewRecorder())
	if got := RememberedLogin(c2); got != "alice#0042" {
		t.Fatalf("expected prefill alice#0042, got %q", got)
	}
}
