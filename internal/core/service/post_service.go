package service

import (
	"context"

	"github.com/tagblog/tagblog/internal/core/domain"
	"github.com/tagblog/tagblog/internal/core/ports"
)

// PostService implements blog post CRUD with author-or-admin authorization.
type PostService struct {
	posts ports.PostRepository
}

func NewPostService(posts ports.PostRepository) *PostService {
	return &PostService{posts: posts}
}

func (s *PostService) Create(ctx context.Context, author *domain.User, title, content string) (*domain.Post, error) {
	if author == nil {
		return nil, domain.ErrForbidden
	}
	return s.posts.Create(ctx, author.ID, title, content)
}

func (s *PostService) Get(ctx context.Context, id int64) (*domain.Post, error) {
	return s.posts.FindByID(ctx, id)
}

func (s *PostService) List(ctx context.Context) ([]*domain.Post, error) {
	return s.posts.FindAll(ctx)
}

func (s *PostService) Update(ctx context.Context, actor *domain.User, id int64, title, content string) (*domain.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canModify(actor, post.AuthorID) {
		return nil, domain.ErrForbidden
	}
	if err := s.posts.Update(ctx, id, title, content); err != nil {
		return nil, err
	}
	return s.posts.FindByID(ctx, id)
}

func (s *PostService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !canModify(actor, post.AuthorID) {
		return domain.ErrForbidden
	}
	return s.posts.Delete(ctx, id)
}

// canModify allows the resource author and the admin row.
func canModify(actor *domain.User, authorID int64) bool {
	if actor == nil {
		return false
	}
	return actor.ID == authorID || actor.IsAdmin()
}
