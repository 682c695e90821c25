package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/civicsense/backend/internal/models"
)

// authResponse is the authority's session shape: the user record plus a
// bearer token the engine treats as opaque.
type authResponse struct {
	User struct {
		Role  models.Role `json:"role"`
		Email string      `json:"email"`
		Name  string      `json:"name"`
	} `json:"user"`
	Token string `json:"token"`
}

// authFailure is the authority's rejection body. Detail is optional; a
// missing detail gets a generic message.
type authFailure struct {
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

// Login exchanges credentials for a session. A rejection returns *AuthError
// carrying the authority's detail text when it provided one.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (models.Session, error) {
	return c.authCall(ctx, "/auth/login", req)
}

// Register creates an account and returns its first session.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (models.Session, error) {
	return c.authCall(ctx, "/auth/register", req)
}

func (c *Client) authCall(ctx context.Context, path string, body any) (models.Session, error) {
	buf, err := json.Marshal(body)
	if err != nil {
		return models.Session{}, fmt.Errorf("encode %s: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(buf))
	if err != nil {
		return models.Session{}, fmt.Errorf("build %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Warn("auth endpoint unreachable", "path", path, "error", err)
		return models.Session{}, &AuthError{Detail: "authentication service unavailable"}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var failure authFailure
		_ = json.NewDecoder(resp.Body).Decode(&failure)
		detail := failure.Detail
		if detail == "" {
			detail = failure.Error
		}
		if detail == "" {
			detail = "authentication failed"
		}
		return models.Session{}, &AuthError{Detail: detail}
	}

	var ok authResponse
	if err := json.NewDecoder(resp.Body).Decode(&ok); err != nil {
		return models.Session{}, &AuthError{Detail: "authentication failed"}
	}
	return models.Session{
		Role:  ok.User.Role,
		Email: ok.User.Email,
		Name:  ok.User.Name,
		Token: ok.Token,
	}, nil
}
