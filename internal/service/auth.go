package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"movieflix/internal/model"
	"movieflix/pkg/httpclient"

	"github.com/rs/zerolog/log"
)

const (
	// MsgLoginFailed is shown when the backend rejects a login without a message
	MsgLoginFailed = "Login failed!"
	// MsgLoginError is shown when the login backend cannot be reached
	MsgLoginError = "An error occurred while logging in."
)

// ValidationErrors maps form field names to their error message
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, v[f])
	}
	return strings.Join(msgs, "; ")
}

// ValidateCredentials checks that email and password are present.
// Each missing field is reported on its own.
func ValidateCredentials(email, password string) ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(email) == "" {
		errs["email"] = "Email is required"
	}
	if strings.TrimSpace(password) == "" {
		errs["password"] = "Password is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// LoginResult is the outcome of a login attempt the backend answered
type LoginResult struct {
	User    *model.User
	Message string
}

// OK reports whether the login succeeded
func (r *LoginResult) OK() bool {
	return r.User != nil
}

// AuthService talks to the external login backend
type AuthService struct {
	client *httpclient.Client
	url    string
}

// NewAuthService creates a new AuthService posting to loginURL
func NewAuthService(client *httpclient.Client, loginURL string) *AuthService {
	return &AuthService{
		client: client,
		url:    loginURL,
	}
}

// Login validates the credentials and posts them to the login backend.
// ValidationErrors are returned without any network request. A backend
// rejection is a LoginResult with Message set, not an error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if errs := ValidateCredentials(email, password); errs != nil {
		return nil, errs
	}

	var resp model.LoginResponse
	err := s.client.PostJSON(ctx, s.url, model.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		var se *httpclient.StatusError
		if !errors.As(err, &se) || resp.Message == "" {
			log.Warn().Err(err).Str("email", email).Msg("Login request failed")
			return &LoginResult{Message: MsgLoginError}, nil
		}
	}

	if resp.Success && resp.User != nil {
		log.Info().Str("username", resp.User.Username).Msg("🔓 Login succeeded")
		return &LoginResult{User: resp.User}, nil
	}

	msg := resp.Message
	if msg == "" {
		msg = MsgLoginFailed
	}
	log.Info().Str("email", email).Str("reason", msg).Msg("Login rejected")
	return &LoginResult{Message: msg}, nil
}
