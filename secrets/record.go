package secrets

import (
	"time"
)

// SecretRecord is one stored credential. Site and username are plain
// metadata; only the password is encrypted, stored as a base64 blob in one
// of the two vault formats.
type SecretRecord struct {
	ID                string
	AccountID         string
	Site              string
	Username          string
	EncryptedPassword string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// DecryptedSecret pairs a record's metadata with its decrypted password
type DecryptedSecret struct {
	ID        string
	AccountID string
	Site      string
	Username  string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
