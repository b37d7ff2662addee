package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/tagblog/tagblog/internal/api/middleware"
	"github.com/tagblog/tagblog/internal/core/domain"
)

type stubPostService struct {
	posts     map[int64]*domain.Post
	createErr error
}

func (s *stubPostService) Create(_ context.Context, author *domain.User, title, content string) (*domain.Post, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	post := &domain.Post{
		ID:                  int64(len(s.posts) + 1),
		AuthorID:            author.ID,
		AuthorUsername:      author.Username,
		AuthorDiscriminator: author.Discriminator,
		Title:               title,
		Content:             content,
	}
	s.posts[post.ID] = post
	return post, nil
}

func (s *stubPostService) Get(_ context.Context, id int64) (*domain.Post, error) {
	post, ok := s.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return post, nil
}

func (s *stubPostService) List(context.Context) ([]*domain.Post, error) {
	out := make([]*domain.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, p)
	}
	return out, nil
}

func (s *stubPostService) Update(_ context.Context, _ *domain.User, id int64, title, content string) (*domain.Post, error) {
	post, ok := s.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	post.Title, post.Content = title, content
	return post, nil
}

func (s *stubPostService) Delete(_ context.Context, _ *domain.User, id int64) error {
	if _, ok := s.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(s.posts, id)
	return nil
}

func postContext(t *testing.T, method, target, body string, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(middleware.CurrentUserKey, user)
	}
	return c, rec
}

func TestPostHandler_Create(t *testing.T) {
	svc := &stubPostService{posts: map[int64]*domain.Post{}}
	h := NewPostHandler(svc)
	author := &domain.User{ID: 3, Username: "alice", Discriminator: 42}

	c, rec := postContext(t, http.MethodPost, "/posts", `{"title":"hello","content":"world"}`, author)
	if err := h.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var got struct {
		Title  string `json:"title"`
		Author string `json:"author"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got.Title != "hello" || got.Author != "alice#0042" {
		t.Fatalf("unexpected response: %+v", got)
	}
}

func TestPostHandler_CreateRejectsInvalidPayload(t *testing.T) {
	h := NewPostHandler(&stubPostService{posts: map[int64]*domain.Post{}})
	author := &domain.User{ID: 3, Username: "alice", Discriminator: 42}

	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{"content":"world"}`},
		{"missing content", `{"title":"hello"}`},
		{"title too long", `{"title":"` + strings.Repeat("x", 201) + `","content":"y"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := postContext(t, http.MethodPost, "/posts", tt.body, author)
			err := h.Create(c)
			var he *echo.HTTPError
			if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
				t.Fatalf("expected a 400, got %v", err)
			}
		})
	}
}

func TestPostHandler_GetNotFoundPropagates(t *testing.T) {
	h := NewPostHandler(&stubPostService{posts: map[int64]*domain.Post{}})

	c, _ := postContext(t, http.MethodGet, "/posts/99", "", nil)
	c.SetParamNames("id")
	c.SetParamValues("99")

	if err := h.Get(c); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestPostHandler_BadID(t *testing.T) {
	h := NewPostHandler(&stubPostService{posts: map[int64]*domain.Post{}})

	for _, raw := range []string{"abc", "0", "-4"} {
		c, _ := postContext(t, http.MethodGet, "/posts/"+raw, "", nil)
		c.SetParamNames("id")
		c.SetParamValues(raw)

		err := h.Get(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("id %q: expected a 400, got %v", raw, err)
		}
	}
}
