package viewer

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/jimdaga/morning-press/internal/database"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Init(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("initializing database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return NewStore(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRegisterNewUser(t *testing.T) {
	s := newTestStore(t)

	user, existed, err := s.Register("reader@example.com", "Reader")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if existed {
		t.Error("fresh registration reported as existing")
	}
	if user.AccessToken == "" {
		t.Error("new user missing access token")
	}
	if user.LastLogin == nil {
		t.Error("new user missing last login stamp")
	}
	if !user.Active {
		t.Error("new user should be active")
	}
}

func TestRegisterIsIdempotent(t *testing.T) {
	s := newTestStore(t)

	first, _, err := s.Register("reader@example.com", "Reader")
	if err != nil {
		t.Fatal(err)
	}

	second, existed, err := s.Register("Reader@Example.com", "")
	if err != nil {
		t.Fatalf("re-register: %v", err)
	}
	if !existed {
		t.Error("re-registration not reported as existing")
	}
	if second.ID != first.ID {
		t.Errorf("re-registration created a new row: %d != %d", second.ID, first.ID)
	}
	if second.AccessToken != first.AccessToken {
		t.Error("access token changed on re-registration")
	}
	if second.Name != "Reader" {
		t.Errorf("empty name overwrote the stored one: %q", second.Name)
	}
}

func TestRegisterUpdatesName(t *testing.T) {
	s := newTestStore(t)

	if _, _, err := s.Register("reader@example.com", "Old Name"); err != nil {
		t.Fatal(err)
	}
	user, _, err := s.Register("reader@example.com", "New Name")
	if err != nil {
		t.Fatal(err)
	}
	if user.Name != "New Name" {
		t.Errorf("name = %q, want updated", user.Name)
	}
}

func TestRegisterRejectsInvalidEmail(t *testing.T) {
	s := newTestStore(t)

	for _, email := range []string{
		"",
		"   ",
		"no-at-sign",
		"user@domain",
		"a@@b.com",
		"@example.com",
		"user@.com",
		"a b@example.com",
	} {
		if _, _, err := s.Register(email, ""); !errors.Is(err, ErrInvalidEmail) {
			t.Errorf("Register(%q): %v, want ErrInvalidEmail", email, err)
		}
	}

	users, err := s.ActiveUsers()
	if err != nil {
		t.Fatalf("ActiveUsers: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("malformed addresses created %d accounts", len(users))
	}
}

func TestLogin(t *testing.T) {
	s := newTestStore(t)

	registered, _, err := s.Register("reader@example.com", "Reader")
	if err != nil {
		t.Fatal(err)
	}

	user, err := s.Login("READER@example.com")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("login matched wrong user: %d", user.ID)
	}
	if user.LastLogin == nil {
		t.Error("login did not stamp last_login")
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Login("nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Login: %v, want ErrNotFound", err)
	}
}

func TestLogViewNeverFails(t *testing.T) {
	s := newTestStore(t)

	user, _, err := s.Register("reader@example.com", "")
	if err != nil {
		t.Fatal(err)
	}

	// Both a real and a dangling user id are absorbed.
	s.LogView(user.ID, "2025-06-11")
	s.LogView(99999, "2025-06-11")

	users, err := s.ActiveUsers()
	if err != nil {
		t.Fatalf("ActiveUsers: %v", err)
	}
	if len(users) != 1 {
		t.Errorf("active users = %d, want 1", len(users))
	}
}
