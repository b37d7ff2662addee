package domain

import "errors"

var (
	// ErrInvalidCredentials is the single generic authentication failure.
	// Wrong password, unknown identity and a bad admin secret all map here so
	// the response shape never reveals which check failed.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidLoginFormat reports a login that does not parse as name#dddd.
	ErrInvalidLoginFormat = errors.New("invalid login format")

	// ErrAmbiguousLogin reports a bare-name login matching several accounts
	// whose passwords all verify. The caller must retry with the full tag.
	ErrAmbiguousLogin = errors.New("multiple accounts match this name, use the full name#0000 login")

	// ErrUserNotFound reports a missing user row.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserExists reports a uniqueness violation on (username, discriminator).
	// Under concurrent registration two requests can pick the same free tag;
	// the store constraint is the final arbiter and raises this.
	ErrUserExists = errors.New("user already exists")

	// ErrReservedUsername rejects registration of the admin name.
	ErrReservedUsername = errors.New("this username is reserved")

	// ErrUsernameHasSeparator rejects usernames containing the tag separator.
	ErrUsernameHasSeparator = errors.New("username must not contain '#'")

	// ErrDiscriminatorExhausted signals that all 9999 tags for a literal
	// username are taken.
	ErrDiscriminatorExhausted = errors.New("all tags for this username are taken")

	// ErrPostNotFound reports a missing post row.
	ErrPostNotFound = errors.New("post not found")

	// ErrCommentNotFound reports a missing comment row.
	ErrCommentNotFound = errors.New("comment not found")

	// ErrForbidden reports an operation attempted by someone other than the
	// resource author or the admin.
	ErrForbidden = errors.New("access forbidden")
)
