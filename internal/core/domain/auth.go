package domain

import "time"

// Session represents an authenticated patient session
type Session struct {
	ID           string    `json:"id"`
	PatientName  string    `json:"patient_name"`
	Token        string    `json:"token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
	UserAgent    string    `json:"user_agent,omitempty"`
	IPAddress    string    `json:"ip_address,omitempty"`
}

// Expired reports whether the session is past its expiry
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// TokenClaims are the claims embedded in an access token
type TokenClaims struct {
	PatientName string `json:"patient_name"`
	SessionID   string `json:"session_id"`
	IssuedAt    int64  `json:"issued_at"`
	ExpiresAt   int64  `json:"expires_at"`
}

// AuthContext is the validated identity attached to a request
type AuthContext struct {
	PatientName string `json:"patient_name"`
	SessionID   string `json:"session_id"`
}

// LoginRequest is a patient login payload
// @Description Patient login credentials
type LoginRequest struct {
	Name string `json:"name" example:"Rajesh Kumar"`
	PIN  string `json:"pin,omitempty" example:"4821"`
}

// LoginResponse is returned on successful login
// @Description Successful login response with tokens
type LoginResponse struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	Patient      *Profile  `json:"patient"`
}

// RefreshRequest exchanges a refresh token for a new access token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}
