package utils

import (
	"crypto/rand"
	"math/big"
)

const passwordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// TemporaryPasswordLength matches the length of the credential issued when an
// administrator creates an account.
const TemporaryPasswordLength = 20

// RandomString returns a cryptographically random alphanumeric string of the
// given length.
func RandomString(length int) (string, error) {
	out := make([]byte, length)
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = passwordAlphabet[n.Int64()]
	}
	return string(out), nil
}

// TemporaryPassword generates the random temporary credential issued on user
// creation.
func TemporaryPassword() (string, error) {
	return RandomString(TemporaryPasswordLength)
}
