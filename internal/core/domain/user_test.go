package domain

import (
	"errors"
	"testing"
)

func TestFormatTag(t *testing.T) {
	if got := FormatTag("alice", 42); got != "alice#0042" {
		t.Fatalf("expected alice#0042, got %q", got)
	}
	if got := FormatTag("alice", 9999); got != "alice#9999" {
		t.Fatalf("expected alice#9999, got %q", got)
	}
	// The admin row renders without a tag.
	if got := FormatTag("admin", 0); got != "admin" {
		t.Fatalf("expected bare admin, got %q", got)
	}
}

func TestUser_Tag(t *testing.T) {
	u := &User{Username: "alice", Discriminator: 7}
	if u.Tag() != "alice#0007" {
		t.Fatalf("unexpected tag: %s", u.Tag())
	}
	admin := &User{Username: "admin", Discriminator: 0}
	if !admin.IsAdmin() || admin.Tag() != "admin" {
		t.Fatalf("admin row misrendered: %s", admin.Tag())
	}
}

func TestParseLogin(t *testing.T) {
	cases := []struct {
		login    string
		username string
		tag      int
		ok       bool
	}{
		{"alice#0042", "alice", 42, true},
		{"alice#42", "alice", 42, true},
		{"alice#9999", "alice", 9999, true},
		{"we#ird#0001", "we#ird", 1, true},
		{"alice", "", 0, false},
		{"alice#", "", 0, false},
		{"#0042", "", 0, false},
		{"alice#abcd", "", 0, false},
		{"alice#10000", "", 0, false},
		{"alice#-1", "", 0, false},
	}
	for _, tc := range cases {
		username, tag, err := ParseLogin(tc.login)
		if tc.ok {
			if err != nil {
				t.Fatalf("%q: unexpected error %v", tc.login, err)
			}
			if username != tc.username || tag != tc.tag {
				t.Fatalf("%q: got (%q, %d)", tc.login, username, tag)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidLoginFormat) {
			t.Fatalf("%q: expected ErrInvalidLoginFormat, got %v", tc.login, err)
		}
	}
}
