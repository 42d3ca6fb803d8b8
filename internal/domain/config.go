package domain

// Profile stores local defaults for one named user.
type Profile struct {
	Name      string `json:"name"`
	IsDefault bool   `json:"is_default"`
	ServerURL string `json:"server_url,omitempty"`
	Token     string `json:"token,omitempty"`
}

// Config stores all local profiles.
type Config struct {
	Profiles []Profile `json:"profiles"`
}
