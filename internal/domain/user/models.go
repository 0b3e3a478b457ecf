package user

import "time"

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User is immutable after creation except for its role.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
