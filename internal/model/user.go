// Package model defines domain entities for the application.
package model

import "time"

// User is an identity record. The token is the sole bearer credential:
// whoever presents it is the user, with no expiry or rotation.
//
// Password is stored verbatim and compared by equality: login is an exact
// match against the stored column, so the column must hold what the client
// sends.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	Token     string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
