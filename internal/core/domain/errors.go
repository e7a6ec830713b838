package domain

import "errors"

// Validation errors (HTTP 400).
var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrPasswordComplexity = errors.New("password must contain at least one digit and one special character")
	ErrWrongOldPassword   = errors.New("wrong old password")
	ErrSamePassword       = errors.New("new password must differ from the old one")
	ErrInvalidOTP         = errors.New("invalid otp")
	ErrOTPExpired         = errors.New("otp expired")
	ErrOTPThrottled       = errors.New("an otp was sent recently, try again later")
)

// Conflict errors (HTTP 400, mapped from unique-index violations too).
var (
	ErrNameTaken  = errors.New("name already taken")
	ErrEmailTaken = errors.New("email already in use")
)

// Auth and lookup errors.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)
