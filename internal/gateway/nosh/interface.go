package nosh

import "context"

// Credentials carries a register request.
type Credentials struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Account is the user payload the server returns.
type Account struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at,omitempty"`
}

// AuthResult pairs a session token with the account it belongs to.
type AuthResult struct {
	Token string  `json:"token"`
	User  Account `json:"user"`
}

// ChatMessage is one role/content turn forwarded to the server.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// API describes the server operations the CLI uses.
type API interface {
	Register(ctx context.Context, creds Credentials) (AuthResult, error)
	Login(ctx context.Context, login, password string) (AuthResult, error)
	Me(ctx context.Context, token string) (Account, error)
	Chat(ctx context.Context, token string, messages []ChatMessage) (string, error)
}
