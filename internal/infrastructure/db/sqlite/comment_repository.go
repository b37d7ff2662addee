package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tagblog/tagblog/internal/core/domain"
)

const commentColumns = `c.id, c.post_id, c.author_id, c.content, c.created, u.username, u.discriminator`

// CommentRepository persists comments.
type CommentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, authorID, postID int64, content string) (*domain.Comment, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO comment (author_id, post_id, content) VALUES (?, ?, ?)`,
		authorID, postID, content,
	)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert comment id: %w", err)
	}
	return r.FindByID(ctx, id)
}

func (r *CommentRepository) FindByID(ctx context.Context, id int64) (*domain.Comment, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+commentColumns+` FROM comment c JOIN user u ON c.author_id = u.id WHERE c.id = ?`, id)

	var c domain.Comment
	err := row.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Content, &c.Created, &c.AuthorUsername, &c.AuthorDiscriminator)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan comment: %w", err)
	}
	return &c, nil
}

func (r *CommentRepository) FindByPost(ctx context.Context, postID int64) ([]*domain.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+commentColumns+` FROM comment c JOIN user u ON c.author_id = u.id
		 WHERE c.post_id = ? ORDER BY c.created ASC`, postID)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()

	var comments []*domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Content, &c.Created, &c.AuthorUsername, &c.AuthorDiscriminator); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}

func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comment WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return requireRow(res, domain.ErrCommentNotFound)
}
