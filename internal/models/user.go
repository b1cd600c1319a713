package models

import (
	"time"

	"github.com/google/uuid"
)

// Plan type constants
const (
	PlanFree = "free"
	PlanPro  = "pro"
)

// User represents a user authenticated via the OIDC provider.
type User struct {
	ID          uuid.UUID `json:"id"`
	Sub         string    `json:"sub"` // OIDC subject identifier
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	Picture     string    `json:"picture"`
	PlanType    string    `json:"plan_type"` // free, pro
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsPro returns true if the user is on a paid plan.
func (u *User) IsPro() bool {
	return u.PlanType == PlanPro
}
