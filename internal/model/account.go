package model

import "time"

// Account is a local-credential login, used when the identity provider
// popup is not available. Google sign-ins need no account row.
type Account struct {
	Email        string    `json:"email"`
	Nome         string    `json:"nome"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// LocalLoginRequest is the payload for local-credential authentication.
type LocalLoginRequest struct {
	Email string `json:"email" binding:"required,email,max=255"`
	Senha string `json:"senha" binding:"required,min=4,max=128"`
}

// GoogleLoginRequest carries the identity-provider ID token obtained by
// the sign-in popup.
type GoogleLoginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}
