package validation

import (
	"strings"
	"testing"
)

func TestIsUsernameValid(t *testing.T) {
	cases := []struct {
		username string
		want     bool
	}{
		{"abc", true},
		{"ab", false},
		{strings.Repeat("a", 21), false},
		{strings.Repeat("a", 20), true},
		{"user_one", true},
		{"user-one", true},
		{"user one", false},
		{"user!one", false},
		{"", false},
	}
	for _, c := range cases {
		if got := IsUsernameValid(c.username); got != c.want {
			t.Errorf("IsUsernameValid(%q) = %v, want %v", c.username, got, c.want)
		}
	}
}

func TestIsPasswordValid(t *testing.T) {
	cases := []struct {
		password string
		want     bool
	}{
		{"password1", true},
		{"short1", false},
		{"has a space", false},
		{strings.Repeat("a", 48), true},
		{strings.Repeat("a", 49), false},
		{"test12345test", true},
		{"p@ssw0rd!#", true},
		{"", false},
	}
	for _, c := range cases {
		if got := IsPasswordValid(c.password); got != c.want {
			t.Errorf("IsPasswordValid(%q) = %v, want %v", c.password, got, c.want)
		}
	}
}

func TestIsEmailValid(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"testprime@example.com", true},
		{"a+b@example.co.uk", true},
		{"no-at-sign.example.com", false},
		{"two@@example.com", false},
		{"spaces in@example.com", false},
		{"user@example", false},
		{"", false},
	}
	for _, c := range cases {
		if got := IsEmailValid(c.email); got != c.want {
			t.Errorf("IsEmailValid(%q) = %v, want %v", c.email, got, c.want)
		}
	}
}

func TestIsEmailSafe(t *testing.T) {
	if !IsEmailSafe("normal@example.com") {
		t.Error("IsEmailSafe rejected a normal address")
	}
	for _, bad := range []string{"a$b@example.com", "a{b@example.com", "a}b@example.com"} {
		if IsEmailSafe(bad) {
			t.Errorf("IsEmailSafe(%q) = true, want false", bad)
		}
	}
}
