package model

import "time"

// RoleAdmin is the only role the grants registry stores.
const RoleAdmin = "admin"

// AdminGrant maps a lower-cased institutional login to the admin role.
// Bootstrap grants come from fixed configuration, are merged into every
// listing and can never be revoked through the registry.
type AdminGrant struct {
	Login     string    `json:"login"`
	Role      string    `json:"role"`
	Bootstrap bool      `json:"bootstrap"`
	CreatedAt time.Time `json:"createdAt"`
}

// AddGrantRequest is the payload for granting admin to a login.
type AddGrantRequest struct {
	Login string `json:"login" binding:"required,email,max=255"`
}
