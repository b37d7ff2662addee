package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tagblog/tagblog/internal/core/discriminator"
	"github.com/tagblog/tagblog/internal/core/domain"
	"github.com/tagblog/tagblog/internal/core/password"
	"github.com/tagblog/tagblog/internal/core/ports"
)

// AuthService implements registration and the three login paths: admin,
// tagged (name#dddd) and the bare-name convenience fallback.
type AuthService struct {
	repo        ports.UserRepository
	secretKey   string
	adminSecret string
	tokenTTL    time.Duration
}

func NewAuthService(repo ports.UserRepository, secretKey, adminSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, secretKey: secretKey, adminSecret: adminSecret, tokenTTL: tokenTTL}
}

// Register creates a new account under a freshly allocated discriminator.
func (s *AuthService) Register(ctx context.Context, username, pass string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || pass == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if strings.EqualFold(username, domain.AdminUsername) {
		return nil, domain.ErrReservedUsername
	}
	if strings.Contains(username, domain.TagSeparator) {
		return nil, domain.ErrUsernameHasSeparator
	}

	tag, err := discriminator.Allocate(ctx, s.repo, username)
	if err != nil {
		return nil, err
	}

	hash, salt, err := password.Hash(pass)
	if err != nil {
		return nil, err
	}

	// CreatedAt is left zero: the store fills it and Create returns the
	// re-read row.
	user := &domain.User{
		Username:      username,
		Discriminator: tag,
		PasswordHash:  hash,
		Salt:          salt,
	}

	// A racing registration may have grabbed the same tag between Allocate
	// and the insert; the store's uniqueness constraint raises ErrUserExists
	// and the caller surfaces a generic "try again".
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Login authenticates a combined login string and returns the matched row.
// Every failure except the ambiguous bare-name case collapses into
// domain.ErrInvalidCredentials so the response shape never distinguishes an
// unknown identity from a wrong password.
func (s *AuthService) Login(ctx context.Context, login, pass string) (*domain.User, error) {
	login = strings.TrimSpace(login)
	if login == "" || pass == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if strings.EqualFold(login, domain.AdminUsername) {
		return s.loginAdmin(ctx, pass)
	}
	if strings.Contains(login, domain.TagSeparator) {
		return s.loginTagged(ctx, login, pass)
	}
	return s.loginBare(ctx, login, pass)
}

// loginAdmin checks the operator-configured secret and lazily provisions the
// admin row (discriminator 0) on first successful login.
func (s *AuthService) loginAdmin(ctx context.Context, pass string) (*domain.User, error) {
	if subtle.ConstantTimeCompare([]byte(pass), []byte(s.adminSecret)) != 1 {
		return nil, domain.ErrInvalidCredentials
	}

	admin, err := s.repo.FindByTag(ctx, domain.AdminUsername, 0)
	if err == nil {
		return admin, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, salt, err := password.Hash(pass)
	if err != nil {
		return nil, err
	}
	admin = &domain.User{
		Username:      domain.AdminUsername,
		Discriminator: 0,
		PasswordHash:  hash,
		Salt:          salt,
	}
	created, err := s.repo.Create(ctx, admin)
	if errors.Is(err, domain.ErrUserExists) {
		// Lost a provisioning race; the row exists now.
		return s.repo.FindByTag(ctx, domain.AdminUsername, 0)
	}
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *AuthService) loginTagged(ctx context.Context, login, pass string) (*domain.User, error) {
	username, tag, err := domain.ParseLogin(login)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.FindByTag(ctx, username, tag)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !password.Verify(user.PasswordHash, pass, user.Salt) {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// loginBare resolves a login without a tag: it succeeds only when exactly one
// account under that name matches the password. Several matches are refused
// outright rather than silently picking one.
func (s *AuthService) loginBare(ctx context.Context, login, pass string) (*domain.User, error) {
	users, err := s.repo.FindAllByUsername(ctx, login)
	if err != nil {
		return nil, err
	}

	var matches []*domain.User
	for _, u := range users {
		if password.Verify(u.PasswordHash, pass, u.Salt) {
			matches = append(matches, u)
		}
	}

	switch len(matches) {
	case 0:
		return nil, domain.ErrInvalidCredentials
	case 1:
		return matches[0], nil
	default:
		return nil, domain.ErrAmbiguousLogin
	}
}

// Token mints an HS256 JWT for JSON API clients.
func (s *AuthService) Token(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"uid":      user.ID,
		"username": user.Username,
		"tag":      user.Discriminator,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.secretKey))
}

// CurrentUser resolves a session user id. A deleted user or any lookup
// failure resolves to anonymous, never an error.
func (s *AuthService) CurrentUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil
	}
	return user, nil
}
