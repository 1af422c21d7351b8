package attendance

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"strconv"
)

// generateOTP returns a 4-digit code drawn uniformly from [1000, 9999].
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+1000, 10), nil
}

// generateQRToken returns an opaque 32-char hex token. 16 random bytes keep
// the collision odds across concurrently active sessions negligible.
func generateQRToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
