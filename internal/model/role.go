package model

import "github.com/google/uuid"

// UserWithRole is the admin listing shape. A user without a user_roles row
// surfaces as a plain "user".
type UserWithRole struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName *string   `json:"display_name,omitempty"`
	Role        string    `json:"role"`
}
