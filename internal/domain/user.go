package domain

import "time"

// User represents a registered account. FirstName, LastName and Phone are
// optional and empty when never provided.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	CreatedAt    time.Time
}

// PublicUser is the response projection of a User. The password hash has no
// field here, so it cannot leak through any handler.
type PublicUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public returns the sanitized projection of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
	}
}

// Identity is the request-scoped projection attached to the context after a
// token has been verified and resolved to a live user. It is rebuilt on every
// request, never cached.
type Identity struct {
	ID    string
	Email string
}
