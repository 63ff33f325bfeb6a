package domain

import "testing"

func TestIsValidRole(t *testing.T) {
	t.Parallel()

	for _, r := range []string{"user", "admin"} {
		if !IsValidRole(r) {
			t.Fatalf("expected %q to be valid", r)
		}
	}
	for _, r := range []string{"", "root", "moderator"} {
		if IsValidRole(r) {
			t.Fatalf("expected %q to be invalid", r)
		}
	}
}

func TestRoleRank_AdminOutranksUser(t *testing.T) {
	t.Parallel()

	if RoleRank("admin") <= RoleRank("user") {
		t.Fatalf("admin must outrank user")
	}
	if RoleRank("unknown") != 0 {
		t.Fatalf("unknown roles rank 0")
	}
}

func TestIsValidGender(t *testing.T) {
	t.Parallel()

	for _, g := range []string{"male", "female", "unknown"} {
		if !IsValidGender(g) {
			t.Fatalf("expected %q to be valid", g)
		}
	}
	if IsValidGender("other") {
		t.Fatalf("expected other to be invalid")
	}
}
