package entity

import "time"

// Account is a registered user of the booking app.
type Account struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	Role         Role
	PasswordHash string
	IsVerified   bool

	// OTP holds the signup or login challenge, ResetOTP the password reset one.
	// nil means no challenge is pending.
	OTP      *Challenge
	ResetOTP *Challenge

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Challenge is a pending one-time code. Only the digest is kept.
type Challenge struct {
	Digest    string
	ExpiresAt time.Time
}

// Active reports whether the challenge is set and not yet past its expiry.
func (c *Challenge) Active(now time.Time) bool {
	return c.Present() && !now.After(c.ExpiresAt)
}

// Present reports whether the challenge carries a digest and an expiry.
// Records written by older versions can hold one without the other.
func (c *Challenge) Present() bool {
	return c != nil && c.Digest != "" && !c.ExpiresAt.IsZero()
}

// Challenge returns the slot used by purpose p.
func (a *Account) Challenge(p Purpose) *Challenge {
	if p.Slot() == SlotReset {
		return a.ResetOTP
	}
	return a.OTP
}

// SetChallenge replaces the slot used by purpose p. Passing nil clears it.
func (a *Account) SetChallenge(p Purpose, c *Challenge) {
	if p.Slot() == SlotReset {
		a.ResetOTP = c
		return
	}
	a.OTP = c
}

// Profile is the public projection of an Account returned to clients.
type Profile struct {
	ID         string
	Name       string
	Email      string
	Phone      string
	Role       Role
	IsVerified bool
}

func (a *Account) Profile() Profile {
	return Profile{
		ID:         a.ID,
		Name:       a.Name,
		Email:      a.Email,
		Phone:      a.Phone,
		Role:       a.Role,
		IsVerified: a.IsVerified,
	}
}
