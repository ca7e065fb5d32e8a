package utils // package utils provides hashing and random token helpers

import (
	"crypto/rand" // secure random number generation
	"math/big"    // uniform index selection without modulo bias
)

const alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomString returns a string of n characters drawn uniformly from
// [a-zA-Z0-9] using crypto/rand. It is used for account activation tokens.
func RandomString(n int) (string, error) {
	if n <= 0 {
		return "", nil
	}
	max := big.NewInt(int64(len(alphanumeric)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = alphanumeric[idx.Int64()]
	}
	return string(out), nil
}
