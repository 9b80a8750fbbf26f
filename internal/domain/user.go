package domain

// User is the profile record returned by GET /auth/me. It is never
// cached across restarts; a persisted token is always revalidated.
type User struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	Age      *int   `json:"age,omitempty"`
}

// LoginRequest is the credential payload for POST /auth/login.
// @Description Login credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"ada@example.com"`
	Password string `json:"password" validate:"required,min=6" example:"hunter22"`
}

// RegisterRequest is the payload for POST /auth/register.
// @Description Registration payload; full name and age are optional.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email" example:"ada@example.com"`
	Password string `json:"password" validate:"required,min=6" example:"hunter22"`
	FullName string `json:"full_name,omitempty" validate:"omitempty,max=120" example:"Ada Lovelace"`
	Age      *int   `json:"age,omitempty" validate:"omitempty,min=15,max=50" example:"28"`
}

// AuthResponse is what the backend returns from login/register.
type AuthResponse struct {
	Message string `json:"message,omitempty"`
	Token   string `json:"token"`
	User    *User  `json:"user,omitempty"`
}

// SessionState names a phase of the auth lifecycle.
type SessionState string

const (
	SessionUnauthenticated SessionState = "unauthenticated"
	SessionValidating      SessionState = "validating"
	SessionAuthenticated   SessionState = "authenticated"
)

// SessionResponse is the read-only snapshot exposed to consumers.
// @Description Current session state; user is set only when authenticated.
type SessionResponse struct {
	State SessionState `json:"state" example:"authenticated"`
	User  *User        `json:"user,omitempty"`
}
