package domain

const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)
