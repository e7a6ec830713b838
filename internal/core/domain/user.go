package domain

import "time"

// User models an account in the travel app.
//
// ResetOTP and ResetOTPExpires are only set while a password reset is in
// flight; they are always written and cleared together.
type User struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	PasswordHash    string     `json:"-"`
	ResetOTP        *int       `json:"-"`
	ResetOTPExpires *time.Time `json:"-"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ResetPending reports whether a password-reset OTP is currently stored.
func (u *User) ResetPending() bool {
	return u.ResetOTP != nil && u.ResetOTPExpires != nil
}
