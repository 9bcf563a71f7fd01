package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const (
	// OTPLifetime is how long a verification code stays valid.
	OTPLifetime = 10 * time.Minute

	// OTPMaxAttempts failed attempts lock the code until a new one is requested.
	OTPMaxAttempts = 5

	// OTPResendInterval is the minimum gap between code requests per account.
	OTPResendInterval = 60 * time.Second
)

// GenerateOTP returns a 6-digit numeric one-time code.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
