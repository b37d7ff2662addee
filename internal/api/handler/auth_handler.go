package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tagblog/tagblog/internal/api/metrics"
	"github.com/tagblog/tagblog/internal/core/csrf"
	"github.com/tagblog/tagblog/internal/core/domain"
	"github.com/tagblog/tagblog/internal/core/ports"
	"github.com/tagblog/tagblog/internal/forms"
	"github.com/tagblog/tagblog/internal/session"
)

// AuthHandler serves the register/login/logout form endpoints. GET returns
// the form description plus a fresh CSRF token for the templating layer;
// POST binds and validates, re-rendering errors with input preserved except
// secrets.
type AuthHandler struct {
	authService ports.AuthService
	csrf        *csrf.Service
}

func NewAuthHandler(authService ports.AuthService, csrfService *csrf.Service) *AuthHandler {
	return &AuthHandler{authService: authService, csrf: csrfService}
}

// sessionTokens adapts the CSRF service to the form engine's validator slice
// for one request's session.
type sessionTokens struct {
	svc  *csrf.Service
	sess *session.Session
}

func (t sessionTokens) Validate(token string) bool {
	return t.svc.Validate(t.sess, token)
}

type fieldView struct {
	Name   string   `json:"name"`
	Label  string   `json:"label"`
	Value  string   `json:"value"`
	Errors []string `json:"errors,omitempty"`
}

type formView struct {
	Fields    []fieldView         `json:"fields"`
	CSRFToken string              `json:"csrf_token,omitempty"`
	Errors    map[string][]string `json:"errors,omitempty"`
	Prefill   string              `json:"prefill,omitempty"`
}

func viewOf(f *forms.Form, csrfToken string) formView {
	view := formView{CSRFToken: csrfToken, Errors: f.Errors()}
	if len(view.Errors) == 0 {
		view.Errors = nil
	}
	for _, field := range f.Fields() {
		value := field.Data
		if field.Secret {
			value = ""
		}
		view.Fields = append(view.Fields, fieldView{
			Name:   field.Name,
			Label:  field.Label,
			Value:  value,
			Errors: field.Errors,
		})
	}
	return view
}

type authResponse struct {
	User  *domain.User `json:"user"`
	Tag   string       `json:"tag"`
	Token string       `json:"token,omitempty"`
}

// RegisterPage handles GET /auth/register.
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	sess, err := session.Current(c)
	if err != nil {
		return err
	}
	token, err := h.csrf.Generate(sess)
	if err != nil {
		return err
	}
	if err := sess.Save(); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, viewOf(forms.RegistrationForm(), token))
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c echo.Context) error {
	sess, err := session.Current(c)
	if err != nil {
		return err
	}

	form := forms.RegistrationForm()
	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form payload")
	}
	form.Bind(values)

	if !form.Validate(sessionTokens{svc: h.csrf, sess: sess}) {
		if form.CSRFFailed() {
			metrics.CSRFFailuresTotal.WithLabelValues("register").Inc()
		}
		metrics.RegistrationsTotal.WithLabelValues("rejected").Inc()
		return c.JSON(http.StatusOK, viewOf(form, ""))
	}

	user, err := h.authService.Register(c.Request().Context(), form.Value("username"), form.Value("password"))
	if err != nil {
		return h.renderRegisterError(c, form, err)
	}

	// The session is regenerated around the new identity; the old CSRF base
	// is dropped with it, so pre-login tokens die here.
	if err := sess.Establish(user.ID); err != nil {
		return err
	}
	session.SetRememberCookie(c, user.Tag())

	metrics.RegistrationsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusCreated, authResponse{User: user, Tag: user.Tag()})
}

func (h *AuthHandler) renderRegisterError(c echo.Context, form *forms.Form, err error) error {
	var message string
	switch {
	case errors.Is(err, domain.ErrReservedUsername):
		metrics.RegistrationsTotal.WithLabelValues("rejected").Inc()
		message = "this username is reserved"
	case errors.Is(err, domain.ErrUsernameHasSeparator):
		metrics.RegistrationsTotal.WithLabelValues("rejected").Inc()
		message = "username must not contain '#'"
	case errors.Is(err, domain.ErrDiscriminatorExhausted):
		metrics.RegistrationsTotal.WithLabelValues("exhausted").Inc()
		message = "this username is fully occupied, please pick a different one"
	case errors.Is(err, domain.ErrUserExists):
		// Lost the tag race; do not leak which slot collided.
		metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
		message = "registration failed, please try again"
	default:
		return err
	}
	if field := form.Field("username"); field != nil {
		field.Errors = append(field.Errors, message)
	}
	return c.JSON(http.StatusOK, viewOf(form, ""))
}

// LoginPage handles GET /auth/login.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	sess, err := session.Current(c)
	if err != nil {
		return err
	}
	token, err := h.csrf.Generate(sess)
	if err != nil {
		return err
	}
	if err := sess.Save(); err != nil {
		return err
	}

	view := viewOf(forms.LoginForm(), token)
	view.Prefill = session.RememberedLogin(c)
	return c.JSON(http.StatusOK, view)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	sess, err := session.Current(c)
	if err != nil {
		return err
	}

	form := forms.LoginForm()
	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form payload")
	}
	form.Bind(values)

	if !form.Validate(sessionTokens{svc: h.csrf, sess: sess}) {
		if form.CSRFFailed() {
			metrics.CSRFFailuresTotal.WithLabelValues("login").Inc()
		}
		return c.JSON(http.StatusOK, viewOf(form, ""))
	}

	login := form.Value("username")
	user, err := h.authService.Login(c.Request().Context(), login, form.Value("password"))
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginPath(login), loginResult(err)).Inc()
		return h.renderLoginError(c, form, err)
	}

	if err := sess.Establish(user.ID); err != nil {
		return err
	}
	session.SetRememberCookie(c, user.Tag())

	token, err := h.authService.Token(user)
	if err != nil {
		return err
	}

	metrics.LoginsTotal.WithLabelValues(loginPath(login), "ok").Inc()
	return c.JSON(http.StatusOK, authResponse{User: user, Tag: user.Tag(), Token: token})
}

func (h *AuthHandler) renderLoginError(c echo.Context, form *forms.Form, err error) error {
	var message string
	switch {
	case errors.Is(err, domain.ErrAmbiguousLogin):
		message = "multiple accounts match this name, use the full name#0000 login"
	case errors.Is(err, domain.ErrInvalidLoginFormat):
		message = "login must look like name#0000"
	case errors.Is(err, domain.ErrInvalidCredentials):
		message = "invalid username or password"
	default:
		return err
	}
	if field := form.Field("username"); field != nil {
		field.Errors = append(field.Errors, message)
	}
	return c.JSON(http.StatusOK, viewOf(form, ""))
}

// Logout handles GET /auth/logout. Clearing an already-empty session is fine.
func (h *AuthHandler) Logout(c echo.Context) error {
	sess, err := session.Current(c)
	if err != nil {
		return err
	}
	if err := sess.Clear(); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func loginPath(login string) string {
	switch {
	case strings.EqualFold(login, domain.AdminUsername):
		return "admin"
	case strings.Contains(login, domain.TagSeparator):
		return "tagged"
	default:
		return "bare"
	}
}

func loginResult(err error) string {
	if errors.Is(err, domain.ErrAmbiguousLogin) {
		return "ambiguous"
	}
	return "invalid"
}
