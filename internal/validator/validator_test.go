package validator

import "testing"

func TestCheckCollectsErrors(t *testing.T) {
	v := New()
	if !v.Valid() {
		t.Fatal("new validator should be valid")
	}

	v.Check(true, "ok", "should not appear")
	v.Check(false, "username", "must be provided")
	v.Check(false, "username", "second message is ignored")

	if v.Valid() {
		t.Fatal("validator with errors reported valid")
	}
	if got := v.Errors["username"]; got != "must be provided" {
		t.Fatalf("want first error kept, got %q", got)
	}
	if _, ok := v.Errors["ok"]; ok {
		t.Fatal("passing check recorded an error")
	}
}

func TestUsernameRX(t *testing.T) {
	for _, valid := range []string{"student1", "a.b-c_d", "ADMIN"} {
		if !Matches(valid, UsernameRX) {
			t.Errorf("%q should be a valid username", valid)
		}
	}
	for _, invalid := range []string{"", "has space", "semi;colon", "emoji😀"} {
		if Matches(invalid, UsernameRX) {
			t.Errorf("%q should not be a valid username", invalid)
		}
	}
}

func TestPermittedValue(t *testing.T) {
	if !PermittedValue("admin", "admin", "student") {
		t.Error("admin should be permitted")
	}
	if PermittedValue("librarian", "admin", "student") {
		t.Error("librarian should not be permitted")
	}
}
