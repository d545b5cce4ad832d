package data

import (
	"errors"
	"testing"
)

func newUser(t *testing.T, username, plaintext, role string) *User {
	t.Helper()
	user := &User{Username: username, Role: role}
	if err := user.Password.Set(plaintext); err != nil {
		t.Fatalf("set password: %v", err)
	}
	return user
}

func TestInsertAssignsID(t *testing.T) {
	m := UserModel{DB: tempDB(t)}

	user := newUser(t, "alice", "correct horse", RoleStudent)
	if err := m.Insert(user); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("insert did not write back the assigned id")
	}

	got, err := m.Get(user.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Username != "alice" || got.Role != RoleStudent {
		t.Fatalf("got %q/%q", got.Username, got.Role)
	}
}

func TestUsernameUniqueAcrossRoles(t *testing.T) {
	db := tempDB(t)
	m := UserModel{DB: db}

	if err := m.Insert(newUser(t, "casey", "password1", RoleAdmin)); err != nil {
		t.Fatalf("insert admin: %v", err)
	}

	// A student signup with an admin's username must be rejected.
	err := m.Insert(newUser(t, "casey", "password2", RoleStudent))
	if !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("want ErrDuplicateUsername, got %v", err)
	}

	count, err := m.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("duplicate signup left a row behind: count=%d", count)
	}
}

func TestAuthenticateRequiresExactMatch(t *testing.T) {
	m := UserModel{DB: tempDB(t)}

	if err := m.Insert(newUser(t, "alice", "sesame123", RoleStudent)); err != nil {
		t.Fatalf("insert: %v", err)
	}

	user, err := m.Authenticate("alice", "sesame123", RoleStudent)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("authenticated wrong user %q", user.Username)
	}

	cases := []struct {
		name     string
		username string
		password string
		role     string
	}{
		{"wrong password", "alice", "sesame124", RoleStudent},
		{"wrong role", "alice", "sesame123", RoleAdmin},
		{"unknown user", "bob", "sesame123", RoleStudent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := m.Authenticate(tc.username, tc.password, tc.role)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("want ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestSeedAccounts(t *testing.T) {
	db := tempDB(t)
	m := UserModel{DB: db}

	if err := Seed(db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	admin, err := m.Authenticate("admin", "admin123", RoleAdmin)
	if err != nil {
		t.Fatalf("seeded admin cannot log in: %v", err)
	}
	if admin.Role != RoleAdmin {
		t.Fatalf("admin has role %q", admin.Role)
	}

	if _, err := m.Authenticate("student1", "student123", RoleStudent); err != nil {
		t.Fatalf("seeded student cannot log in: %v", err)
	}

	// Seeding again must not duplicate or reset anything.
	if err := Seed(db); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	count, err := m.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("want 2 seeded users, got %d", count)
	}
}

func TestUpdatePassword(t *testing.T) {
	m := UserModel{DB: tempDB(t)}

	if err := m.Insert(newUser(t, "alice", "oldpassword", RoleStudent)); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := m.UpdatePassword("alice", "newpassword"); err != nil {
		t.Fatalf("update password: %v", err)
	}

	if _, err := m.Authenticate("alice", "oldpassword", RoleStudent); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password still accepted: %v", err)
	}
	if _, err := m.Authenticate("alice", "newpassword", RoleStudent); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}

	if err := m.UpdatePassword("nobody", "whatever123"); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("want ErrRecordNotFound, got %v", err)
	}
}
