package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"disasterreport/model"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// TokenIssuer signs access tokens handed out at login.
type TokenIssuer struct {
	Secret  []byte
	TTL     time.Duration
	IsAdmin func(mobile string) bool
}

func (t *TokenIssuer) CreateAccessToken(mobile string) (string, error) {
	role := RoleUser
	if t.IsAdmin != nil && t.IsAdmin(mobile) {
		role = RoleAdmin
	}
	ttl := t.TTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	claims := &model.AccessClaims{
		MobileNumber: mobile,
		Role:         role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "disasterreport",
			Subject:   mobile,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.Secret)
}
