package services

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashContent digests the raw template document. Two submissions with
// byte-identical content collide on purpose.
func HashContent(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
