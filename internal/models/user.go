package models

import "time"

// User mirrors a row of the users table.
type User struct {
	UserID                 int64      `db:"user_id"`
	Username               string     `db:"user_name"`
	Email                  string     `db:"email"`
	PasswordDigest         string     `db:"password_digest"`
	RefreshToken           *string    `db:"refresh_token"`
	RefreshTokenExpiryTime *time.Time `db:"refresh_token_expiry_time"`
	LastLoginTime          *time.Time `db:"last_login_time"`
	CreatedDate            time.Time  `db:"created_date"`
	ModifiedDate           time.Time  `db:"modified_date"`
	IsActive               bool       `db:"is_active"`
}
