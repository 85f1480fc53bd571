package services

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns the hex SHA-256 digest of the password.
// The digest is unsalted, so equal passwords always hash equally.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// mpinKey is what bcrypt sees: a fixed 64 byte digest, well under its 72 byte input limit.
func mpinKey(mpin string) []byte {
	return []byte(HashPassword(mpin))
}

// HashMpin hashes the mpin with bcrypt.
func HashMpin(mpin string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(mpinKey(mpin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckMpin compares in constant time.
func CheckMpin(hash, mpin string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), mpinKey(mpin)) == nil
}
