package localauth

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/civicsense/backend/internal/auth"
	"github.com/civicsense/backend/internal/db"
	"github.com/civicsense/backend/internal/models"
)

const testSecret = "localauth-test-secret"

var testDBCounter uint64

func newTestStore(t *testing.T) *Store {
	t.Helper()
	id := atomic.AddUint64(&testDBCounter, 1)
	dsn := fmt.Sprintf("file:localauth%d?mode=memory&cache=shared&_foreign_keys=on", id)
	database, err := db.Open(dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return &Store{DB: database, Secret: testSecret}
}

func TestRegisterAndLogin(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sess, err := store.Register(ctx, models.RegisterRequest{
		Email:    "Jane@Example.com",
		Password: "password123",
		Name:     "Jane",
		Role:     models.RoleUser,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if sess.Email != "jane@example.com" {
		t.Errorf("email not normalized: %q", sess.Email)
	}
	if sess.Token == "" {
		t.Fatal("expected a token on the offline path")
	}
	// The locally minted token is a real signed credential.
	claims, err := auth.ParseToken(sess.Token, testSecret)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Role != models.RoleUser {
		t.Errorf("token role: got %q", claims.Role)
	}

	login, err := store.Login(ctx, models.LoginRequest{Email: "jane@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.Role != models.RoleUser {
		t.Errorf("login role: got %q", login.Role)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	req := models.RegisterRequest{Email: "dup@example.com", Password: "password123", Name: "D", Role: models.RoleUser}

	if _, err := store.Register(ctx, req); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := store.Register(ctx, req)
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	cases := []models.RegisterRequest{
		{Email: "", Password: "password123", Role: models.RoleUser},
		{Email: "a@b.c", Password: "", Role: models.RoleUser},
		{Email: "a@b.c", Password: "short", Role: models.RoleUser},
		{Email: "a@b.c", Password: "password123", Role: "admin"},
	}
	for i, req := range cases {
		if _, err := store.Register(ctx, req); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	if _, err := store.Register(ctx, models.RegisterRequest{
		Email: "m@example.com", Password: "password123", Name: "M", Role: models.RoleMunicipal,
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := store.Login(ctx, models.LoginRequest{Email: "m@example.com", Password: "wrongwrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Login(context.Background(), models.LoginRequest{Email: "ghost@example.com", Password: "password123"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
