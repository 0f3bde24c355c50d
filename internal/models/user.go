// internal/models/user.go
package models

// User is the signed-in account as reported by the session status call.
type User struct {
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
	Photo string `json:"photo" yaml:"photo"`
}
