package types

// User is the authenticated identity as reported by the session endpoint.
type User struct {
	ID        string `json:"id"`
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url,omitempty"`
}
