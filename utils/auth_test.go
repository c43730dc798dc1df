package utils

import "testing"

func TestIsModerator(t *testing.T) {
	mods := []string{"role-a", "role-b"}

	if !IsModerator([]string{"role-x", "role-b"}, mods) {
		t.Error("member holding a moderator role must pass")
	}
	if IsModerator([]string{"role-x"}, mods) {
		t.Error("member without a moderator role must be refused")
	}
	if !IsModerator([]string{"role-x"}, nil) {
		t.Error("empty configuration must grant access")
	}
}
