package operations

import (
	"context"
	"errors"

	"attendancehub/internal/crypto"
	"attendancehub/internal/model"
	"attendancehub/internal/store"
)

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

// Login looks the user up by exact email. The password is only checked when
// the account has one and the caller supplied one; otherwise login succeeds.
func (s *Service) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	if in.Email == "" {
		return LoginResult{}, &Error{Code: ErrEmailRequired}
	}

	user, err := s.store.GetUserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.recorder.LoginAttempt("unknown_user")
			return LoginResult{}, &Error{Code: ErrUserNotFound}
		}
		return LoginResult{}, &Error{Code: ErrServerError, Err: err}
	}

	if user.HasPassword() && in.Password != "" {
		if err := crypto.CheckPassword(user.PasswordHash, in.Password); err != nil {
			s.recorder.LoginAttempt("rejected")
			return LoginResult{}, &Error{Code: ErrInvalidCredentials}
		}
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return LoginResult{}, &Error{Code: ErrServerError, Err: err}
	}
	s.recorder.LoginAttempt("ok")
	user.PasswordHash = ""
	return LoginResult{User: user, Token: token}, nil
}
