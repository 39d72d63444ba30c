package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// NewToken generates an opaque session token: a hex SHA-256 over a random
// UUID and the current nanosecond clock. 64 hex characters, unguessable,
// unique at issuance.
func NewToken() string {
	seed := uuid.NewString() + strconv.FormatInt(time.Now().UnixNano(), 10)
	sum := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:])
}
