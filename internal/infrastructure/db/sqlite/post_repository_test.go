package sqlite

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/tagblog/tagblog/internal/core/domain"
)

func setupPostMock(t *testing.T) (*PostRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	return NewPostRepository(db), mock, func() { db.Close() }
}

func postRow(p *domain.Post) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "author_id", "title", "content", "created", "username", "discriminator"}).
		AddRow(p.ID, p.AuthorID, p.Title, p.Content, p.Created, p.AuthorUsername, p.AuthorDiscriminator)
}

func TestPostRepository_FindByID(t *testing.T) {
	repo, mock, cleanup := setupPostMock(t)
	defer cleanup()

	want := &domain.Post{
		ID: 3, AuthorID: 1, Title: "hello", Content: "world",
		Created: time.Now().UTC(), AuthorUsername: "alice", AuthorDiscriminator: 42,
	}
	mock.ExpectQuery(regexp.QuoteMeta(`FROM post p JOIN user u ON p.author_id = u.id WHERE p.id = ?`)).
		WithArgs(int64(3)).
		WillReturnRows(postRow(want))

	got, err := repo.FindByID(context.Background(), 3)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if got.AuthorTag() != "alice#0042" {
		t.Fatalf("author tag not joined in: %s", got.AuthorTag())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostRepository_FindByID_NotFound(t *testing.T) {
	repo, mock, cleanup := setupPostMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE p.id = ?`)).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "author_id", "title", "content", "created", "username", "discriminator"}))

	if _, err := repo.FindByID(context.Background(), 99); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestPostRepository_Update_NotFound(t *testing.T) {
	repo, mock, cleanup := setupPostMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE post SET title = ?, content = ? WHERE id = ?`)).
		WithArgs("t", "c", int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Update(context.Background(), 99, "t", "c"); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestPostRepository_Delete(t *testing.T) {
	repo, mock, cleanup := setupPostMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM post WHERE id = ?`)).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), 3); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
