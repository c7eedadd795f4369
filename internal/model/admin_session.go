package model

import (
	"time"
)

// AdminSession is a server-side record of a logged-in admin. The client holds
// the raw token in an httpOnly cookie; only its SHA-256 hash is stored.
type AdminSession struct {
	ID        string    `db:"id" json:"id"`
	TokenHash string    `db:"token_hash" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"expiresAt"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type CreateAdminSessionParams struct {
	TokenHash string
	ExpiresAt time.Time
}
