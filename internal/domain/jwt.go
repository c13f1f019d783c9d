package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// AdminClaims represents custom JWT claims for admin panel sessions
type AdminClaims struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}
