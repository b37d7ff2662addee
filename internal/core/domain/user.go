package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// AdminUsername is reserved: nobody can register it and the admin row is
	// the only one carrying discriminator 0.
	AdminUsername = "admin"

	// TagSeparator splits the display name from the discriminator in the
	// combined login format (alice#0042).
	TagSeparator = "#"

	// MinDiscriminator and MaxDiscriminator bound the tag range for regular
	// users. 0 is reserved for the admin account.
	MinDiscriminator = 1
	MaxDiscriminator = 9999
)

// User models an account. The pair (Username, Discriminator) is unique across
// all rows; the store enforces it with a uniqueness constraint.
type User struct {
	ID            int64     `json:"id"`
	Username      string    `json:"username"`
	Discriminator int       `json:"discriminator"`
	PasswordHash  string    `json:"-"`
	Salt          []byte    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
}

// IsAdmin reports whether this is the reserved admin row.
func (u *User) IsAdmin() bool {
	return u.Discriminator == 0
}

// Tag returns the full identity: alice#0042 for regular users, the bare
// username for the admin row (no tag is shown for discriminator 0).
func (u *User) Tag() string {
	return FormatTag(u.Username, u.Discriminator)
}

// FormatTag renders a username and discriminator in the combined login format.
func FormatTag(username string, discriminator int) string {
	if discriminator <= 0 {
		return username
	}
	return fmt.Sprintf("%s%s%04d", username, TagSeparator, discriminator)
}

// ParseLogin splits a combined login into its username and discriminator.
// The separator is searched from the right so a stray '#' earlier in the
// string does not shift the tag.
func ParseLogin(login string) (username string, discriminator int, err error) {
	idx := strings.LastIndex(login, TagSeparator)
	if idx < 0 {
		return "", 0, ErrInvalidLoginFormat
	}

	username = login[:idx]
	tag := login[idx+len(TagSeparator):]
	if username == "" || tag == "" {
		return "", 0, ErrInvalidLoginFormat
	}

	discriminator, convErr := strconv.Atoi(tag)
	if convErr != nil || discriminator < 0 || discriminator > MaxDiscriminator {
		return "", 0, ErrInvalidLoginFormat
	}

	return username, discriminator, nil
}
