package domain

import "time"

// User represents a user of the application in the domain.
// PasswordDigest holds the salted one-way hash of the password; the plaintext
// is never stored. RefreshToken and RefreshTokenExpiryTime are either both set
// or both nil: a user holds at most one live refresh token at a time.
type User struct {
	UserID                 int64      `json:"userID"`
	Username               string     `json:"username"`
	Email                  string     `json:"email"`
	PasswordDigest         string     `json:"-"`
	RefreshToken           *string    `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
	LastLoginTime          *time.Time `json:"lastLoginTime,omitempty"`
	CreatedDate            time.Time  `json:"createdDate"`
	ModifiedDate           time.Time  `json:"modifiedDate"`
	IsActive               bool       `json:"isActive"`
}
