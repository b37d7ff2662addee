package ports

import (
	"context"

	"github.com/tagblog/tagblog/internal/core/domain"
)

// PostService exposes blog post operations. Mutations take the acting user so
// the service can enforce author-or-admin authorization.
type PostService interface {
	Create(ctx context.Context, author *domain.User, title, content string) (*domain.Post, error)
	Get(ctx context.Context, id int64) (*domain.Post, error)
	List(ctx context.Context) ([]*domain.Post, error)
	Update(ctx context.Context, actor *domain.User, id int64, title, content string) (*domain.Post, error)
	Delete(ctx context.Context, actor *domain.User, id int64) error
}

// CommentService exposes comment operations on posts.
type CommentService interface {
	Create(ctx context.Context, author *domain.User, postID int64, content string) (*domain.Comment, error)
	ListForPost(ctx context.Context, postID int64) ([]*domain.Comment, error)
	Delete(ctx context.Context, actor *domain.User, id int64) error
}
