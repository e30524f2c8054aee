package auth

import "time"

// Member represents a registered chat participant.
// HashedPassword is never serialized; the password is only ever verifiable,
// not retrievable.
type Member struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// AuthToken is a persisted session token row. The raw token references
// exactly one member and stays valid until it is explicitly revoked; there
// is no expiry. A member may hold several concurrent tokens (multi-device).
type AuthToken struct {
	ID        int64     `json:"-"`
	MemberID  int64     `json:"-"`
	Token     string    `json:"-"`
	CreatedAt time.Time `json:"-"`
}
