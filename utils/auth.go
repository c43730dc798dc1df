package utils

// contains checks if a slice of strings contains an element.
func contains(slice []string, item string) bool {
	for _, a := range slice {
		if a == item {
			return true
		}
	}
	return false
}

// IsModerator reports whether a member holds one of the configured moderator
// roles. An empty configuration grants access to everyone; Discord's own
// command permissions are the gate in that case.
func IsModerator(memberRoleIDs, moderatorRoleIDs []string) bool {
	if len(moderatorRoleIDs) == 0 {
		return true
	}
	for _, roleID := range memberRoleIDs {
		if contains(moderatorRoleIDs, roleID) {
			return true
		}
	}
	return false
}
