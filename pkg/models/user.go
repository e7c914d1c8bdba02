package models

import "github.com/rmedina/stockroom-backend/pkg/enums"

// User is an entry in the bundled user directory. Credentials are compared
// in plaintext against this record; there is no hashing in this system.
type User struct {
	ID       string     `json:"id"`
	Username string     `json:"username"`
	Password string     `json:"password"`
	Role     enums.Role `json:"role"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
}
