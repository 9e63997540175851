package domain

// User is the profile returned by the identity service for the single
// pre-provisioned account.
type User struct {
	ID           string `json:"$id"`
	CreatedAt    string `json:"$createdAt"`
	UpdatedAt    string `json:"$updatedAt"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Registration string `json:"registration,omitempty"`
	Status       bool   `json:"status"`
}

// Session is one authenticated session on the identity service. Secret
// is only present in the create-session response and is sent back on
// every subsequent request.
type Session struct {
	ID         string `json:"$id"`
	UserID     string `json:"userId"`
	CreatedAt  string `json:"$createdAt"`
	ExpiresAt  string `json:"expire,omitempty"`
	Provider   string `json:"provider,omitempty"`
	ClientName string `json:"clientName,omitempty"`
	OSName     string `json:"osName,omitempty"`
	Current    bool   `json:"current,omitempty"`
	Secret     string `json:"secret,omitempty"`
}
