package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tagblog/tagblog/internal/core/domain"
)

type stubCommentRepo struct {
	comments map[int64]*domain.Comment
	nextID   int64
}

func newStubCommentRepo() *stubCommentRepo {
	return &stubCommentRepo{comments: make(map[int64]*domain.Comment), nextID: 1}
}

func (r *stubCommentRepo) Create(_ context.Context, authorID, postID int64, content string) (*domain.Comment, error) {
	c := &domain.Comment{
		ID:       r.nextID,
		PostID:   postID,
		AuthorID: authorID,
		Content:  content,
		Created:  time.Now().UTC(),
	}
	r.comments[c.ID] = c
	r.nextID++
	clone := *c
	return &clone, nil
}

func (r *stubCommentRepo) FindByID(_ context.Context, id int64) (*domain.Comment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCommentRepo) FindByPost(_ context.Context, postID int64) ([]*domain.Comment, error) {
	var out []*domain.Comment
	for _, c := range r.comments {
		if c.PostID == postID {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubCommentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.comments[id]; !ok {
		return domain.ErrCommentNotFound
	}
	delete(r.comments, id)
	return nil
}

func TestCommentService_CreateAndList(t *testing.T) {
	posts := newStubPostRepo()
	svc := NewCommentService(newStubCommentRepo(), posts)
	author := &domain.User{ID: 1, Username: "alice", Discriminator: 42}

	post, _ := posts.Create(context.Background(), author.ID, "t", "c")

	if _, err := svc.Create(context.Background(), author, post.ID, "nice post"); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	list, err := svc.ListForPost(context.Background(), post.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one comment, got %v / %v", list, err)
	}
}

func TestCommentService_Create_MissingPost(t *testing.T) {
	svc := NewCommentService(newStubCommentRepo(), newStubPostRepo())
	author := &domain.User{ID: 1}

	if _, err := svc.Create(context.Background(), author, 99, "hi"); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestCommentService_Delete_Authorization(t *testing.T) {
	posts := newStubPostRepo()
	svc := NewCommentService(newStubCommentRepo(), posts)
	author := &domain.User{ID: 1, Username: "alice", Discriminator: 42}
	other := &domain.User{ID: 2, Username: "bob", Discriminator: 7}
	admin := &domain.User{ID: 3, Username: "admin", Discriminator: 0}

	post, _ := posts.Create(context.Background(), author.ID, "t", "c")
	comment, _ := svc.Create(context.Background(), author, post.ID, "mine")

	if err := svc.Delete(context.Background(), other, comment.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("non-author delete allowed: %v", err)
	}
	if err := svc.Delete(context.Background(), admin, comment.ID); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), author, comment.ID); !errors.Is(err, domain.ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound after delete, got %v", err)
	}
}
