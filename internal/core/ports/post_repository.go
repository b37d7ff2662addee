package ports

import (
	"context"

	"github.com/tagblog/tagblog/internal/core/domain"
)

// PostRepository defines the persistence boundary for posts.
type PostRepository interface {
	Create(ctx context.Context, authorID int64, title, content string) (*domain.Post, error)
	FindByID(ctx context.Context, id int64) (*domain.Post, error)
	FindAll(ctx context.Context) ([]*domain.Post, error)
	Update(ctx context.Context, id int64, title, content string) error
	Delete(ctx context.Context, id int64) error
}

// CommentRepository defines the persistence boundary for comments.
type CommentRepository interface {
	Create(ctx context.Context, authorID, postID int64, content string) (*domain.Comment, error)
	FindByID(ctx context.Context, id int64) (*domain.Comment, error)
	FindByPost(ctx context.Context, postID int64) ([]*domain.Comment, error)
	Delete(ctx context.Context, id int64) error
}
