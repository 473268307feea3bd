package model

import "time"

type Contact struct {
	ID        string    `db:"id" json:"id"`
	AccountID string    `db:"account_id" json:"-"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	Favorite  bool      `db:"favorite" json:"favorite"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
