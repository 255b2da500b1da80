package models

import "time"

// User ids are plain text so the fixed demo identity ("demo-user")
// round-trips through query params without parsing.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

const (
	DemoUserID    = "demo-user"
	DemoUserEmail = "demo@example.com"
	DemoUserName  = "Demo User"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}
