package types

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity and credential record backing every account.
// Password always holds a bcrypt hash once persisted, never plaintext.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"password,omitempty"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Sanitized returns a copy safe to put on the wire, with the password hash
// withheld.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}
