package request

import (
	"encoding/json"

	"github.com/rs/zerolog"
)

// Register caps the password at 72 characters, bcrypt's input limit. Multibyte
// passwords can still exceed 72 bytes and are rejected when hashing.
type Register struct {
	Email    string `validate:"required,email,max=255" json:"email"`
	Password string `validate:"required,min=8,max=72"  json:"password"`
	FullName string `validate:"omitempty,max=255"      json:"full_name,omitempty"`
}

func (r Register) MarshalZerologObject(e *zerolog.Event) {
	e.Str("email", r.Email).Str("full_name", r.FullName).Str("password", "***")
}

func (r Register) MarshalJSON() ([]byte, error) {
	r.Password = "***"
	type R Register
	return json.Marshal(R(r))
}
