package entities

import "encoding/json"

// AuthPayload is the JSON body sent to the login endpoint
type AuthPayload struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

// AuthResponse is the successful login response
type AuthResponse struct {
	Token    string          `json:"token"`
	Email    string          `json:"email"`
	FullName string          `json:"fullName"`
	ID       json.RawMessage `json:"id,omitempty"`
	Type     string          `json:"type"`
	Role     string          `json:"role"`
}
