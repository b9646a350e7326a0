package model

// UserRecord is synthesized from the request path; there is no user store.
type UserRecord struct {
	Username  string `json:"username"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

const UserStatusActive = "active"
