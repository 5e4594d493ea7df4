package models

import "github.com/golang-jwt/jwt/v5"

// UserRole enumerates the roles carried by externally issued tokens.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleFaculty UserRole = "FACULTY"
	RoleStudent UserRole = "STUDENT"
)

// JWTClaims is the claim set this service verifies. Tokens are minted by
// the institution's identity provider.
type JWTClaims struct {
	UserID string   `json:"uid"`
	Role   UserRole `json:"role"`
	jwt.RegisteredClaims
}
