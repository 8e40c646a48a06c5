package service

import (
	"errors"
	"testing"
	"time"

	"eduverse_backend/internal/config"
	"eduverse_backend/internal/model"
	"eduverse_backend/internal/util"
)

func TestParseRole(t *testing.T) {
	cases := map[string]model.UserRole{"": model.Student, "student": model.Student, "Teacher": model.Teacher}
	for in, want := range cases {
		got, ok := ParseRole(in)
		if !ok || got != want {
			t.Fatalf("ParseRole(%q) = %q, %v", in, got, ok)
		}
	}
	if _, ok := ParseRole("admin"); ok {
		t.Fatalf("admin must not be a signup role")
	}
}

func TestSignupAndLogin(t *testing.T) {
	f := newFixture(t)
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour}}
	auth := NewAuthService(f.users, cfg)

	user, err := auth.Signup(SignupInput{Username: "ada", Name: "Ada", Email: "Ada@Example.com", Password: "pw", Role: "Teacher"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if user.Role != model.Teacher || user.Email != "ada@example.com" || user.Password == "pw" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := auth.Signup(SignupInput{Username: "other", Name: "O", Email: "ada@example.com", Password: "pw"}); !errors.Is(err, util.ErrEmailInUse) {
		t.Fatalf("expected email in use, got %v", err)
	}
	if _, err := auth.Signup(SignupInput{Username: "ada", Name: "O", Email: "o@example.com", Password: "pw"}); !errors.Is(err, util.ErrUsernameInUse) {
		t.Fatalf("expected username in use, got %v", err)
	}
	if _, err := auth.Signup(SignupInput{Username: "x", Name: "X", Email: "x@example.com"}); !errors.Is(err, util.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	token, loggedIn, err := auth.Login("ada@example.com", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := util.ParseJWT(token, cfg.JWT.Secret)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != loggedIn.ID || claims.Role != model.Teacher {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, _, err := auth.Login("ada@example.com", "wrong"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, _, err := auth.Login("nobody@example.com", "pw"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown email, got %v", err)
	}
}
