package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tagblog/tagblog/internal/core/domain"
)

// post rows are always read joined to the author so every rendering site has
// the full tag available without a second lookup.
const postColumns = `p.id, p.author_id, p.title, p.content, p.created, u.username, u.discriminator`

// PostRepository persists blog posts.
type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, authorID int64, title, content string) (*domain.Post, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO post (author_id, title, content) VALUES (?, ?, ?)`,
		authorID, title, content,
	)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert post id: %w", err)
	}
	return r.FindByID(ctx, id)
}

func (r *PostRepository) FindByID(ctx context.Context, id int64) (*domain.Post, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM post p JOIN user u ON p.author_id = u.id WHERE p.id = ?`, id)

	var p domain.Post
	err := row.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Content, &p.Created, &p.AuthorUsername, &p.AuthorDiscriminator)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan post: %w", err)
	}
	return &p, nil
}

func (r *PostRepository) FindAll(ctx context.Context) ([]*domain.Post, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+postColumns+` FROM post p JOIN user u ON p.author_id = u.id ORDER BY p.created DESC`)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	var posts []*domain.Post
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Content, &p.Created, &p.AuthorUsername, &p.AuthorDiscriminator); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, &p)
	}
	return posts, rows.Err()
}

func (r *PostRepository) Update(ctx context.Context, id int64, title, content string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE post SET title = ?, content = ? WHERE id = ?`, title, content, id)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return requireRow(res, domain.ErrPostNotFound)
}

func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM post WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return requireRow(res, domain.ErrPostNotFound)
}

// requireRow maps a zero-row mutation to the given not-found sentinel.
func requireRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
