package security

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// VerifyCodeTTL is how long an emailed verification code stays valid.
const VerifyCodeTTL = 24 * time.Hour

// MakeVerifyCode returns a 6-digit numeric code for email ownership
// proof. Leading digit is never zero so the code survives clients that
// treat it as a number.
func MakeVerifyCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
