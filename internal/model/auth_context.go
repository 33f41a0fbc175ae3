package model

// AuthContext is the resolved identity attached to a request after the auth
// middleware has matched the bearer token against a user row.
type AuthContext struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}
