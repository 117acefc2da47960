package chat

import (
	"fmt"
	"regexp"
)

// legacyRoomSuffix matches the 13-digit millisecond timestamp an early
// identity scheme appended to room ids.
var legacyRoomSuffix = regexp.MustCompile(`_[0-9]{13}$`)

// DeriveRoomID derives the stable chat room identity for a vendor/supplier
// pair. It is commutative in its two arguments and carries no time or
// sequence component, so every request between the same two parties maps to
// the same room no matter how often requests are created and closed.
func DeriveRoomID(a, b uint64) string {
	if b < a {
		a, b = b, a
	}
	return fmt.Sprintf("room_%d_%d", a, b)
}

// NormalizeRoomID strips the legacy timestamp suffix from a room identity.
// Identities produced by DeriveRoomID pass through unchanged.
func NormalizeRoomID(roomID string) string {
	return legacyRoomSuffix.ReplaceAllString(roomID, "")
}
