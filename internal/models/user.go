package models

import "time"

type User struct {
	ID         string `json:"_id"`
	Name       string `json:"name,omitempty"`
	Email      string `json:"email"`
	ProfilePic string `json:"profilePic,omitempty"`
	Instagram  string `json:"instagram,omitempty"`
	Facebook   string `json:"facebook,omitempty"`
	Twitter    string `json:"twitter,omitempty"`
	LinkedIn   string `json:"linkedin,omitempty"`
	Website    string `json:"website,omitempty"`
	Followers  int    `json:"followers"`
	Following  int    `json:"following"`
	Bookings   int    `json:"bookings"`
}

// Account is a stored user together with its credentials.
type Account struct {
	User
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,contact_email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type Notification struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	IsRead    bool      `json:"isRead,omitempty"`
}
