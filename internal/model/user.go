package model

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is an account holder. Password holds the bcrypt hash, never plain
// text.
type User struct {
	ID                 string
	Name               string
	Email              string
	Password           string
	Avatar             string
	Role               Role
	ResetToken         string
	ResetTokenExpireAt *time.Time
	CreatedAt          time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanResetPassword reports whether a stored reset token is still usable.
func (u *User) CanResetPassword() bool {
	if u.ResetToken == "" || u.ResetTokenExpireAt == nil {
		return false
	}
	return time.Now().UTC().Before(*u.ResetTokenExpireAt)
}
