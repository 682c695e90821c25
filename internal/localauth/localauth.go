// Package localauth is the offline credential store: registration and login
// against the local sqlite users table, used by the access gate when no
// remote authority is configured.
//
// Passwords are bcrypt-hashed; successful authentication mints a local HS256
// token so sessions from this path carry a credential just like sessions
// issued by the authority.
package localauth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/civicsense/backend/internal/auth"
	"github.com/civicsense/backend/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidInput       = errors.New("email, password, and role are required")
)

const minPasswordLen = 8

// Store authenticates against the users table and signs session tokens with
// secret.
type Store struct {
	DB     *sql.DB
	Secret string
}

// Register creates an account and returns its first session.
func (s *Store) Register(ctx context.Context, req models.RegisterRequest) (models.Session, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Name = strings.TrimSpace(req.Name)

	if req.Email == "" || req.Password == "" {
		return models.Session{}, ErrInvalidInput
	}
	if req.Role != models.RoleUser && req.Role != models.RoleMunicipal {
		return models.Session{}, ErrInvalidInput
	}
	if len(req.Password) < minPasswordLen {
		return models.Session{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLen)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.Session{}, fmt.Errorf("hash password: %w", err)
	}

	_, err = s.DB.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, name, role, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), req.Email, string(hash), req.Name, req.Role, time.Now().UTC(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return models.Session{}, ErrEmailTaken
		}
		return models.Session{}, fmt.Errorf("create user: %w", err)
	}

	return s.sessionFor(req.Email, req.Name, req.Role)
}

// Login verifies credentials and returns a fresh session. The role stored at
// registration wins; the mode the prompt was opened in does not override it.
func (s *Store) Login(ctx context.Context, req models.LoginRequest) (models.Session, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		return models.Session{}, ErrInvalidInput
	}

	var hash, name string
	var role models.Role
	err := s.DB.QueryRowContext(ctx,
		`SELECT password_hash, name, role FROM users WHERE email = ?`, email,
	).Scan(&hash, &name, &role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrInvalidCredentials
		}
		return models.Session{}, fmt.Errorf("look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		return models.Session{}, ErrInvalidCredentials
	}

	return s.sessionFor(email, name, role)
}

func (s *Store) sessionFor(email, name string, role models.Role) (models.Session, error) {
	token, err := auth.GenerateToken(email, role, s.Secret)
	if err != nil {
		return models.Session{}, fmt.Errorf("issue token: %w", err)
	}
	return models.Session{Role: role, Email: email, Name: name, Token: token}, nil
}
