package entity

import "errors"

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrChatNotFound       = errors.New("chat not found")
	ErrNotMember          = errors.New("user is not a chat member")
	ErrAlreadyMember      = errors.New("user is already a chat member")
)
