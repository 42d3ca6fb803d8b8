package auth

import "time"

// User is the stored account entity. Hash is the bcrypt password hash
// and never leaves the server.
type User struct {
	ID        string
	Name      string
	Username  string
	Email     string
	Hash      string
	CreatedAt time.Time
}
