package domain

import "time"

// Session is an authenticated shop session created by the install handshake.
// Before the callback completes only ID, Shop and State are set.
type Session struct {
	ID          string    `json:"id"`
	Shop        string    `json:"shop"`
	State       string    `json:"state"`
	AccessToken string    `json:"accessToken,omitempty"`
	Scope       string    `json:"scope,omitempty"`
	IsOnline    bool      `json:"isOnline"`
	ExpiresAt   time.Time `json:"expiresAt,omitzero"`
}

// Expired reports whether the session has a past expiry.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
