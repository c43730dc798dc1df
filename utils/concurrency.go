package utils

import (
	"sync"
)

var (
	punishLocks = make(map[string]struct{})
	punishMutex = &sync.Mutex{}
)

// CheckAndSetPunishLock marks a user as having a punishment command in
// flight. Returns false when another command for the same user is already
// being processed, so repeated clicks cannot double-issue.
func CheckAndSetPunishLock(userID string) bool {
	punishMutex.Lock()
	defer punishMutex.Unlock()

	if _, ok := punishLocks[userID]; ok {
		return false
	}
	punishLocks[userID] = struct{}{}
	return true
}

// ReleasePunishLock clears the in-flight marker for a user.
func ReleasePunishLock(userID string) {
	punishMutex.Lock()
	defer punishMutex.Unlock()
	delete(punishLocks, userID)
}
