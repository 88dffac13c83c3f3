package authenticator

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/blogem/personal-site/config"
)

// maxHashedPasswordLength is the longest input bcrypt reads in full
const maxHashedPasswordLength = 72

// Authenticator checks login attempts against the single admin credential.
// The password is only ever held as a bcrypt hash.
type Authenticator struct {
	username     string
	passwordHash []byte
	// digest is set when the hash was made from the SHA-256 hex of the password
	digest bool
}

// NewAuthenticator creates an authenticator from the admin configuration.
// A configured PasswordHash is a bcrypt hash of the raw password and is used
// as-is; otherwise Password is hashed.
func NewAuthenticator(cfg config.AdminConfig) (*Authenticator, error) {
	return newAuthenticator(cfg, bcrypt.DefaultCost)
}

func newAuthenticator(cfg config.AdminConfig, cost int) (*Authenticator, error) {
	if cfg.Username == "" {
		return nil, errors.New("admin username is required")
	}

	if cfg.PasswordHash != "" {
		if _, err := bcrypt.Cost([]byte(cfg.PasswordHash)); err != nil {
			return nil, fmt.Errorf("invalid admin password hash: %w", err)
		}
		return &Authenticator{username: cfg.Username, passwordHash: []byte(cfg.PasswordHash)}, nil
	}

	if cfg.Password == "" {
		return nil, errors.New("admin password is required")
	}

	// bcrypt ignores input past 72 bytes, so hash a fixed-length digest instead
	hash, err := bcrypt.GenerateFromPassword(passwordDigest(cfg.Password), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}

	return &Authenticator{username: cfg.Username, passwordHash: hash, digest: true}, nil
}

// Verify reports whether username and password exactly match the admin
// credential. Both comparisons are case-sensitive.
func (a *Authenticator) Verify(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1

	var passOK bool
	if a.digest {
		passOK = bcrypt.CompareHashAndPassword(a.passwordHash, passwordDigest(password)) == nil
	} else if len(password) <= maxHashedPasswordLength {
		passOK = bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)) == nil
	}

	return userOK && passOK
}

func passwordDigest(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(hex.EncodeToString(sum[:]))
}
