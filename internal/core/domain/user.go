package domain

import "time"

// User models a seller able to authenticate against the API.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"nombre"`
	Surname      string    `json:"apellido"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"creado"`
}

// Identity is the authenticated caller, decoded from a signed token.
type Identity struct {
	ID      string
	Email   string
	Name    string
	Surname string
}

// IdentityOf returns the token identity for u.
func IdentityOf(u *User) *Identity {
	return &Identity{ID: u.ID, Email: u.Email, Name: u.Name, Surname: u.Surname}
}
