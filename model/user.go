package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	MobileNumber string    `gorm:"column:mobile_number;primaryKey;size:32"`
	Name         string    `gorm:"column:name;not null"`
	Email        string    `gorm:"column:email"`
	PasswordHash string    `gorm:"column:password_hash;size:64;not null"`
	MpinHash     string    `gorm:"column:mpin_hash;not null"`
	WalletAmount float64   `gorm:"column:wallet_amount;not null;default:0"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}

// PublicUser is the profile returned to clients. Credential digests never leave the server.
type PublicUser struct {
	MobileNumber string  `json:"mobile_number"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	WalletAmount float64 `json:"wallet_amount"`
}

type Contact struct {
	MobileNumber string `json:"mobile_number"`
	Name         string `json:"name"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		MobileNumber: u.MobileNumber,
		Name:         u.Name,
		Email:        u.Email,
		WalletAmount: u.WalletAmount,
	}
}

func (u *User) Contact() Contact {
	return Contact{MobileNumber: u.MobileNumber, Name: u.Name}
}

type AccessClaims struct {
	MobileNumber string `json:"mobileNumber"`
	Role         string `json:"role"`
	jwt.RegisteredClaims
}
