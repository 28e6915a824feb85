package aggregate

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"portfolio-server-go/internal/platform/errors"
)

// BCryptCost trades hash time for brute-force resistance. 12 keeps a
// login under ~300ms on commodity hardware.
const BCryptCost = 12

// AdminUser is the single site administrator. The row is created once
// at startup and never mutated by request handlers.
type AdminUser struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewAdminUser builds the admin account with a freshly hashed password.
func NewAdminUser(username, password string) (*AdminUser, error) {
	if username == "" {
		return nil, errors.New(errors.KindAuth, "admin.new", "username cannot be empty")
	}
	if password == "" {
		return nil, errors.New(errors.KindAuth, "admin.new", "password cannot be empty")
	}

	admin := &AdminUser{
		Username:  username,
		CreatedAt: time.Now(),
	}
	if err := admin.UpdatePasswordHash(password); err != nil {
		return nil, err
	}
	return admin, nil
}

// ValidatePassword checks the supplied password against the stored
// hash. bcrypt extracts the salt from the hash and compares in
// constant time per block.
func (u *AdminUser) ValidatePassword(password string) bool {
	if password == "" || u.PasswordHash == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// UpdatePasswordHash replaces the stored hash with one derived from
// the given plain-text password.
func (u *AdminUser) UpdatePasswordHash(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BCryptCost)
	if err != nil {
		return errors.Wrap(errors.KindAuth, "admin.hash_password", "failed to hash password", err)
	}
	u.PasswordHash = string(hash)
	return nil
}
