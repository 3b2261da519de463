package contracts

// User is a platform account.
type User struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
	CreatedAt   int64  `json:"created_at"`
}

// Organization owns agents and their audit streams.
type Organization struct {
	OrgID     string `json:"org_id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"`
}

// RegisterRequest is the body of POST /v1/auth/register.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name,omitempty"`
	OrgName     string `json:"org_name,omitempty"`
}

// RegisterResponse is returned on successful account creation.
type RegisterResponse struct {
	User         User         `json:"user"`
	Organization Organization `json:"organization"`
	Token        string       `json:"token"`
}

// LoginRequest is the body of POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries a fresh bearer token.
type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
