package domain

import "time"

// Post is a blog entry. AuthorUsername and AuthorDiscriminator are joined in
// from the user table so the rendered author is always the full tag.
type Post struct {
	ID                  int64     `json:"id"`
	AuthorID            int64     `json:"author_id"`
	Title               string    `json:"title"`
	Content             string    `json:"content"`
	Created             time.Time `json:"created"`
	AuthorUsername      string    `json:"author_username"`
	AuthorDiscriminator int       `json:"author_discriminator"`
}

// AuthorTag returns the post author's full identity.
func (p *Post) AuthorTag() string {
	return FormatTag(p.AuthorUsername, p.AuthorDiscriminator)
}

// Comment is a reply attached to a post.
type Comment struct {
	ID                  int64     `json:"id"`
	PostID              int64     `json:"post_id"`
	AuthorID            int64     `json:"author_id"`
	Content             string    `json:"content"`
	Created             time.Time `json:"created"`
	AuthorUsername      string    `json:"author_username"`
	AuthorDiscriminator int       `json:"author_discriminator"`
}

// AuthorTag returns the comment author's full identity.
func (c *Comment) AuthorTag() string {
	return FormatTag(c.AuthorUsername, c.AuthorDiscriminator)
}
