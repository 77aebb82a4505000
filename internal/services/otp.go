package services

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// MockOTPCode is the only code the mocked verification accepts by default.
const MockOTPCode = "000000"

// OTPVerifier decides whether a submitted one-time code is accepted.
type OTPVerifier interface {
	Verify(code string) bool
}

// HashedOTP keeps only a bcrypt hash of the accepted code in memory.
// bcrypt reads at most 72 bytes and stops at NUL, so the code length is
// kept alongside the hash and checked first.
type HashedOTP struct {
	hash []byte
	size int
}

// NewHashedOTP hashes code; an empty or NUL-bearing code is rejected.
func NewHashedOTP(code string) (*HashedOTP, error) {
	if code == "" || strings.ContainsRune(code, 0) {
		return nil, NewInvalidError("otp code required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	return &HashedOTP{hash: hash, size: len(code)}, nil
}

func (h *HashedOTP) Verify(code string) bool {
	if len(code) != h.size || strings.ContainsRune(code, 0) {
		return false
	}
	return bcrypt.CompareHashAndPassword(h.hash, []byte(code)) == nil
}

var _ OTPVerifier = (*HashedOTP)(nil)
