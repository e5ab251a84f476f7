package user

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Username  string  `json:"username" validate:"required,min=3,max=50"`
	Email     string  `json:"email" validate:"required,email"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// UpdateUserRequest represents the request body for updating a user
type UpdateUserRequest struct {
	Username  *string `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// UserResponse represents the response for a single user
type UserResponse struct {
	ID        int64   `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// GroupBalanceResponse is the user's standing within a single group
type GroupBalanceResponse struct {
	GroupID   int64   `json:"group_id"`
	GroupName string  `json:"group_name"`
	Net       float64 `json:"net"`
}

// SummaryResponse aggregates a user's balances across all their groups
type SummaryResponse struct {
	UserID       int64                  `json:"user_id"`
	TotalOwe     float64                `json:"total_owe"`
	TotalGetBack float64                `json:"total_get_back"`
	Net          float64                `json:"net"`
	Groups       []GroupBalanceResponse `json:"groups"`
}

// ToResponse converts a User model to a UserResponse DTO
func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
