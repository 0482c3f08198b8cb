package config

import (
	"fmt"
)

type SessionKeyStruct struct{}

func NewSessionKeyStruct() *SessionKeyStruct {
	return &SessionKeyStruct{}
}

// SessionKey returns the Redis key holding the active session JTI
// for an authenticated identity.
func (r *SessionKeyStruct) SessionKey(identity string) string {
	return fmt.Sprintf("session:%s", identity)
}

// StudentViewKey returns the Redis key holding the admin-only
// "viewing as student" flag for an identity. Deleted on every fresh
// login so the flag never survives a sign-out/sign-in cycle.
func (r *SessionKeyStruct) StudentViewKey(identity string) string {
	return fmt.Sprintf("studentview:%s", identity)
}

var SessionKey = NewSessionKeyStruct()
