package models

// AuthStatus is the body of GET /api/auth/status.
type AuthStatus struct {
	IsAuthenticated bool  `json:"isAuthenticated"`
	User            *User `json:"user,omitempty"`
}
