package models

import "time"

// User is a preparer/operator identity. Forms reference users by name
// (soft reference); the record exists so the UI can offer call signs
// and track last activity, not for authentication.
type User struct {
	// ID is the internal unique identifier of the user.
	ID int64 `json:"id"`

	// Name is the display name of the responder.
	Name string `json:"name"`

	// CallSign is the unique radio call sign (e.g. "KI4ABC").
	CallSign string `json:"call_sign"`

	// LastLogin is the timestamp of the most recent session, if any.
	LastLogin *time.Time `json:"last_login,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
