package session

import "github.com/golang-jwt/jwt/v5"

// Claims is the signed session token body. The session ID travels in the
// registered ID claim so revocation can key off it.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

type Role string

const (
	RoleViewer Role = "viewer"
	RolePlayer Role = "player"
	RoleAdmin  Role = "admin"
)
