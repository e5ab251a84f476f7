package user

import "time"

// User represents a user in the system
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// GroupRef is a lightweight reference to a group the user belongs to
type GroupRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
