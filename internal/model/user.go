package model

// User is a stored credential record. Token is the user's single active
// session token; empty means no active session. PasswordDigest is either a
// legacy hex SHA-256 digest or a bcrypt hash, distinguished by format.
type User struct {
	Username       string
	PasswordDigest string
	Token          string
	CreatedAt      int64 // unix milliseconds
}
