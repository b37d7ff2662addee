package service

import (
	"context"

	"github.com/tagblog/tagblog/internal/core/domain"
	"github.com/tagblog/tagblog/internal/core/ports"
)

// CommentService implements comment operations on posts.
type CommentService struct {
	comments ports.CommentRepository
	posts    ports.PostRepository
}

func NewCommentService(comments ports.CommentRepository, posts ports.PostRepository) *CommentService {
	return &CommentService{comments: comments, posts: posts}
}

func (s *CommentService) Create(ctx context.Context, author *domain.User, postID int64, content string) (*domain.Comment, error) {
	if author == nil {
		return nil, domain.ErrForbidden
	}
	// The post must exist; a dangling comment would 500 on render.
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.comments.Create(ctx, author.ID, postID, content)
}

func (s *CommentService) ListForPost(ctx context.Context, postID int64) ([]*domain.Comment, error) {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.comments.FindByPost(ctx, postID)
}

func (s *CommentService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !canModify(actor, comment.AuthorID) {
		return domain.ErrForbidden
	}
	return s.comments.Delete(ctx, id)
}
