package auth

import (
	"crypto/subtle"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"

	"github.com/gideonadjei94/KnowMateBackend/domain"
)

// BcryptCodeEncoder stores OTP codes as one-way bcrypt hashes. Used
// for registration sessions, where the stored form must not reveal
// the code.
type BcryptCodeEncoder struct {
	cost int
}

// NewBcryptCodeEncoder creates the one-way OTP encoder
func NewBcryptCodeEncoder() domain.CodeEncoder {
	return &BcryptCodeEncoder{cost: bcrypt.DefaultCost}
}

// Encode implements domain.CodeEncoder
func (e *BcryptCodeEncoder) Encode(code string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(code), e.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify implements domain.CodeEncoder
func (e *BcryptCodeEncoder) Verify(code, encoded string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(code)) == nil
}

// Base64CodeEncoder stores OTP codes base64-encoded. The password
// reset flow stores codes in this reversible form rather than
// hashing them, matching the historical on-disk format.
type Base64CodeEncoder struct{}

// NewBase64CodeEncoder creates the reversible OTP encoder
func NewBase64CodeEncoder() domain.CodeEncoder {
	return &Base64CodeEncoder{}
}

// Encode implements domain.CodeEncoder
func (e *Base64CodeEncoder) Encode(code string) (string, error) {
	return base64.StdEncoding.EncodeToString([]byte(code)), nil
}

// Verify implements domain.CodeEncoder
func (e *Base64CodeEncoder) Verify(code, encoded string) bool {
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(decoded, []byte(code)) == 1
}
