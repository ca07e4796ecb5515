package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashUserKey maps a user ID to a stable filesystem- and S3-safe namespace
// segment. Provider-prefixed IDs contain ':' which object keys should avoid.
func HashUserKey(userID string) string {
	if userID == "" {
		userID = "anonymous"
	}
	sum := sha256.Sum256([]byte(userID))
	return hex.EncodeToString(sum[:])
}
