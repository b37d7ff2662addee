package forms

import "github.com/tagblog/tagblog/internal/core/domain"

// RegistrationForm declares the register page fields.
func RegistrationForm() *Form {
	return New(
		Text("username", "Username",
			Required{Message: "username is required"},
			Length{Min: 3, Max: 20, Message: "username must be between 3 and 20 characters"},
			Excludes{Substring: domain.TagSeparator, Message: "username must not contain '#'"},
		),
		Password("password", "Password",
			Required{Message: "password is required"},
			Length{Min: 4, Max: 128, Message: "password must be between 4 and 128 characters"},
		),
	)
}

// LoginForm declares the login page fields. The browser autofill script
// historically posted login_username/login_password, kept as aliases.
func LoginForm() *Form {
	return New(
		Text("username", "Username",
			Required{Message: "username is required"},
		),
		Password("password", "Password",
			Required{Message: "password is required"},
		),
	).Alias("login_username", "username").Alias("login_password", "password")
}

// PostForm declares the fields for creating or editing a post.
func PostForm() *Form {
	return New(
		Text("title", "Title",
			Required{Message: "title is required"},
			Length{Max: 200, Message: "title must be at most 200 characters"},
		),
		Text("content", "Content",
			Required{Message: "content is required"},
		),
	)
}

// CommentForm declares the fields for replying to a post.
func CommentForm() *Form {
	return New(
		Text("content", "Comment",
			Required{Message: "comment text is required"},
			Length{Max: 2000, Message: "comment must be at most 2000 characters"},
		),
	)
}
