package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// GetMessageDigestOrSignature returns the hex encoded HMAC-SHA256 of msg using key.
func GetMessageDigestOrSignature(msg, key []byte) (string, error) {
	mac := hmac.New(sha256.New, key)
	if _, err := mac.Write(msg); err != nil {
		return "", err
	}
	return hex.EncodeToString(mac.Sum(nil)), nil
}
