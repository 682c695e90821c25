package session

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/civicsense/backend/internal/db"
	"github.com/civicsense/backend/internal/models"
)

var testDBCounter uint64

func newSQLStore(t *testing.T) *SQLStore {
	t.Helper()
	id := atomic.AddUint64(&testDBCounter, 1)
	dsn := fmt.Sprintf("file:sessiontest%d?mode=memory&cache=shared&_foreign_keys=on", id)
	database, err := db.Open(dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return &SQLStore{DB: database}
}

func TestSQLStore_RoundTrip(t *testing.T) {
	store := newSQLStore(t)

	if sess, err := store.Load(); err != nil || sess != nil {
		t.Fatalf("empty store: got (%v, %v), want (nil, nil)", sess, err)
	}

	want := models.Session{Role: models.RoleMunicipal, Email: "m@example.com", Name: "M", Token: "tok"}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got == nil || *got != want {
		t.Fatalf("Load: got %+v, want %+v", got, want)
	}
}

func TestSQLStore_SaveOverwrites(t *testing.T) {
	store := newSQLStore(t)
	if err := store.Save(models.Session{Role: models.RoleUser, Email: "first@example.com"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(models.Session{Role: models.RoleMunicipal, Email: "second@example.com"}); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Email != "second@example.com" || got.Role != models.RoleMunicipal {
		t.Fatalf("expected second session to win, got %+v", got)
	}
}

func TestSQLStore_Clear(t *testing.T) {
	store := newSQLStore(t)
	if err := store.Save(models.Session{Role: models.RoleUser, Email: "u@example.com"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if sess, err := store.Load(); err != nil || sess != nil {
		t.Fatalf("after Clear: got (%v, %v), want (nil, nil)", sess, err)
	}
	// Clearing an already-empty store is fine.
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}

func TestSQLStore_CorruptValueIsAbsent(t *testing.T) {
	store := newSQLStore(t)
	if _, err := store.DB.Exec(
		`INSERT INTO session (key, value) VALUES (?, ?)`, AppKey, "{not valid json",
	); err != nil {
		t.Fatalf("seed corrupt value: %v", err)
	}

	sess, err := store.Load()
	if err != nil {
		t.Fatalf("Load should not fail on corrupt state: %v", err)
	}
	if sess != nil {
		t.Fatalf("corrupt state should read as absent, got %+v", sess)
	}
}

func TestSQLStore_UnknownRoleIsAbsent(t *testing.T) {
	store := newSQLStore(t)
	if _, err := store.DB.Exec(
		`INSERT INTO session (key, value) VALUES (?, ?)`, AppKey, `{"role":"superadmin","email":"x@y.z"}`,
	); err != nil {
		t.Fatalf("seed: %v", err)
	}
	sess, err := store.Load()
	if err != nil || sess != nil {
		t.Fatalf("unknown role should read as absent, got (%v, %v)", sess, err)
	}
}

func TestMemStore(t *testing.T) {
	store := &MemStore{}
	if sess, err := store.Load(); err != nil || sess != nil {
		t.Fatalf("empty MemStore: got (%v, %v)", sess, err)
	}
	want := models.Session{Role: models.RoleUser, Email: "u@example.com", Token: "tok"}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, _ := store.Load()
	if got == nil || *got != want {
		t.Fatalf("Load: got %+v", got)
	}
	// Load returns a copy; mutating it must not affect the stored session.
	got.Email = "mutated@example.com"
	again, _ := store.Load()
	if again.Email != "u@example.com" {
		t.Fatal("Load must return a copy")
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if sess, _ := store.Load(); sess != nil {
		t.Fatal("expected nil after Clear")
	}
}
