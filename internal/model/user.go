package model

// User is the single stored account record. Password is kept as entered.
type User struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	SignupDate string `json:"signupDate,omitempty"`
}

// SignupRequest represents a signup form submission.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a login form submission.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest represents a profile name edit.
type UpdateProfileRequest struct {
	Name string `json:"name"`
}

// UserResponse represents user data safe for API responses (no password).
type UserResponse struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	SignupDate string `json:"signup_date"`
}

// SessionResponse is returned by login and the current-user endpoint.
type SessionResponse struct {
	Token     string       `json:"token,omitempty"`
	User      UserResponse `json:"user"`
	LastLogin string       `json:"last_login,omitempty"`
}

// ToResponse strips the password from the record.
func (u User) ToResponse() UserResponse {
	return UserResponse{
		Name:       u.Name,
		Email:      u.Email,
		SignupDate: u.SignupDate,
	}
}
