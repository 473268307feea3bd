package model

import (
	"time"
)

const (
	SubscriptionStarter  = "starter"
	SubscriptionPro      = "pro"
	SubscriptionBusiness = "business"
)

// Account is the persisted user record. Token holds the single currently
// valid bearer token; any previously issued token is stale once it is
// overwritten or cleared.
type Account struct {
	ID               string    `db:"id"`
	Email            string    `db:"email"`
	PasswordHash     string    `db:"password_hash"`
	Subscription     string    `db:"subscription"`
	AvatarURL        *string   `db:"avatar_url"`
	Token            *string   `db:"token"`
	Verified         bool      `db:"verified"`
	VerificationCode *string   `db:"verification_code"`
	CreatedAt        time.Time `db:"created_at"`
}

func (a *Account) HasActiveToken() bool {
	return a.Token != nil && *a.Token != ""
}

func ValidSubscription(tier string) bool {
	switch tier {
	case SubscriptionStarter, SubscriptionPro, SubscriptionBusiness:
		return true
	}
	return false
}
