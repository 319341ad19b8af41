package password

import "errors"

var (
	ErrEmptyPassword = errors.New("empty password")
	ErrInvalidHash   = errors.New("invalid argon2id hash")
)
