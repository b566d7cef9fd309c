package model

// Roles carried by backend API keys
const (
	RoleReader = "reader"
	RoleEditor = "editor"
)

type APIKeyClaims struct {
	Role    string `json:"role"`
	Subject string `json:"sub"`
}
