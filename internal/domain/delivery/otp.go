package delivery

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
)

// OTP error codes
const (
	CodeOTPRequired   = "OTP_REQUIRED"
	CodeOTPMismatch   = "OTP_MISMATCH"
	CodeNoOTPRequired = "NO_OTP_REQUIRED"
	CodeInvalidOTP    = "INVALID_OTP"
)

var (
	ErrOTPRequired   = shared.NewDomainError(CodeOTPRequired, "DeliveryOTP is required to complete this delivery")
	ErrOTPMismatch   = shared.NewDomainError(CodeOTPMismatch, "Invalid DeliveryOTP")
	ErrNoOTPRequired = shared.NewDomainError(CodeNoOTPRequired, "No OTP is required for this stop")
	ErrInvalidOTP    = shared.NewDomainError(CodeInvalidOTP, "Invalid OTP")
)

// OTPLength is the number of digits in a generated delivery OTP
const OTPLength = 4

// GenerateOTP returns a random zero-padded numeric passcode
func GenerateOTP() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < OTPLength; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%0*d", OTPLength, n.Int64()), nil
}

func otpEqual(expected, supplied string) bool {
	return subtle.ConstantTimeCompare([]byte(expected), []byte(supplied)) == 1
}
