package domain

import (
	"crypto/md5"
	"fmt"
	"strings"
	"time"
)

// User represents a registered account. The ID is assigned on creation and
// never changes; Username and Email are unique across the system.
type User struct {
	ID           int64
	Username     string
	Email        string
	FirstName    string
	LastName     string
	AboutMe      string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastSeen     *time.Time
}

// AvatarURL returns the gravatar image URL for the user's email at the
// requested pixel size.
func (u *User) AvatarURL(size int) string {
	digest := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(u.Email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?d=identicon&s=%d", digest, size)
}
