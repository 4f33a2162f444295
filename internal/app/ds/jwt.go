package ds

import (
	"tms/internal/app/role"

	"github.com/golang-jwt/jwt"
)

type JWTClaims struct {
	jwt.StandardClaims
	UserID   uint      `json:"user_id"`
	UserName string    `json:"user_name"`
	Role     role.Role `json:"role"`
	TeamID   *uint     `json:"team_id,omitempty"`
}
